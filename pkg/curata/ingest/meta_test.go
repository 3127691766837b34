package ingest

import (
	"errors"
	"testing"

	"github.com/curata-io/curata/pkg/curata/internalerr"
)

func TestPackageMetaValidate(t *testing.T) {
	meta := PackageMeta{
		Name:        "plotkit",
		Description: "A plotting library for dataframes.",
		Downloads:   1000,
	}
	if err := meta.Validate(); err != nil {
		t.Fatalf("valid meta should pass: %v", err)
	}
}

func TestPackageMetaValidateRejects(t *testing.T) {
	cases := []struct {
		name string
		meta PackageMeta
	}{
		{"missing name", PackageMeta{Description: "text"}},
		{"missing description", PackageMeta{Name: "plotkit"}},
		{"negative downloads", PackageMeta{Name: "plotkit", Description: "text", Downloads: -1}},
	}

	for _, tc := range cases {
		if err := tc.meta.Validate(); !errors.Is(err, internalerr.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

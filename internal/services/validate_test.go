package services

import (
	"testing"

	"github.com/google/uuid"
)

func TestReferencedIDPrefersIDColumn(t *testing.T) {
	col := uuid.New()
	nested := uuid.New()

	got := referencedID(&col, func() uuid.UUID { return nested })
	if got == nil || *got != col {
		t.Fatal("id column must win over nested id")
	}
}

func TestReferencedIDFallsBackToNested(t *testing.T) {
	nested := uuid.New()

	got := referencedID(nil, func() uuid.UUID { return nested })
	if got == nil || *got != nested {
		t.Fatal("nested id must be used when the column is unset")
	}

	nilID := uuid.Nil
	got = referencedID(&nilID, func() uuid.UUID { return nested })
	if got == nil || *got != nested {
		t.Fatal("zero id column must fall through to nested id")
	}
}

func TestReferencedIDNoneSupplied(t *testing.T) {
	if got := referencedID(nil, func() uuid.UUID { return uuid.Nil }); got != nil {
		t.Fatal("expected nil when neither reference is set")
	}
}

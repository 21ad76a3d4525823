package sync

import (
	"errors"
	"reflect"
	"testing"
)

type namedAdapter struct {
	fakeAdapter
	name string
}

func (a *namedAdapter) Name() string { return a.name }

func TestNewRegistry_RejectsDuplicateNames(t *testing.T) {
	_, err := NewRegistry(
		&namedAdapter{name: "products"},
		&namedAdapter{name: "products"},
	)
	if !errors.Is(err, ErrDuplicateAdapter) {
		t.Fatalf("expected ErrDuplicateAdapter, got %v", err)
	}
}

func TestRegistry_LookupUnknownName(t *testing.T) {
	r, err := NewRegistry(&namedAdapter{name: "products"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := r.Lookup("expenses"); !errors.Is(err, ErrUnknownEntity) {
		t.Fatalf("expected ErrUnknownEntity, got %v", err)
	}
}

func TestRegistry_NamesAreSorted(t *testing.T) {
	r, err := NewRegistry(
		&namedAdapter{name: "sales"},
		&namedAdapter{name: "categories"},
		&namedAdapter{name: "products"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"categories", "products", "sales"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

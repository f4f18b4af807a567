package syntax

import (
	"errors"
	"testing"
)

func TestErrorList(t *testing.T) {
	list := NewErrorList()
	if list.HasErrors() || list.Err() != nil || list.First() != nil {
		t.Fatal("new list should be empty")
	}

	list.AddErrorf(Position{File: "a.nix", Line: 1, Column: 2}, "first %d", 1)
	list.Add(NewError(Position{Line: 3, Column: 4}, "second"))

	if list.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", list.Len())
	}
	if got := list.First().Error(); got != "a.nix:1:2: error: first 1" {
		t.Errorf("First() = %q", got)
	}
	want := "a.nix:1:2: error: first 1\n3:4: error: second"
	if got := list.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	var list2 *ErrorList
	if !errors.As(list.Err(), &list2) || list2 != list {
		t.Error("Err() should return the list itself")
	}
}

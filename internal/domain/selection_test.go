package domain

import (
	"errors"
	"testing"
)

func TestSelectionStore_DefaultsToZero(t *testing.T) {
	store := NewSelectionStore()
	if got := store.Selected("unknown"); got != 0 {
		t.Errorf("expected default 0, got %d", got)
	}
	if store.Len() != 0 {
		t.Errorf("expected no entries, got %d", store.Len())
	}
}

func TestSelectionStore_SelectMirror(t *testing.T) {
	options := Resolve(
		[]string{"https://a.example/feed"},
		[]string{"https://b.example/feed", "https://c.example/feed"},
	)
	store := NewSelectionStore()

	if err := store.SelectMirror("idx1", 2, options); err != nil {
		t.Fatalf("SelectMirror failed: %v", err)
	}
	if got := store.Selected("idx1"); got != 2 {
		t.Errorf("expected idx1 selection 2, got %d", got)
	}
	if got := store.Selected("idx2"); got != 0 {
		t.Errorf("expected idx2 untouched, got %d", got)
	}

	current, ok := store.Current("idx1", options)
	if !ok || current.Source != SourceLegacy || current.OriginalIndex != 1 {
		t.Errorf("unexpected current option %+v", current)
	}
}

func TestSelectionStore_RejectsOutOfRange(t *testing.T) {
	options := Resolve([]string{"https://a.example", "https://b.example"}, nil)
	store := NewSelectionStore()

	if err := store.SelectMirror("idx1", 1, options); err != nil {
		t.Fatalf("SelectMirror failed: %v", err)
	}

	for _, idx := range []int{-1, 2, 99} {
		err := store.SelectMirror("idx1", idx, options)
		if !errors.Is(err, ErrMirrorOutOfRange) {
			t.Errorf("index %d: expected ErrMirrorOutOfRange, got %v", idx, err)
		}
	}
	if got := store.Selected("idx1"); got != 1 {
		t.Errorf("rejected selection changed the store: got %d", got)
	}
}

func TestSelectionStore_CurrentFallsBackWhenListsChange(t *testing.T) {
	store := NewSelectionStore()
	before := Resolve([]string{"https://a.example"}, []string{"https://b.example", "https://c.example"})
	if err := store.SelectMirror("idx1", 2, before); err != nil {
		t.Fatal(err)
	}

	after := Resolve([]string{"https://a.example", "https://d.example"}, []string{"https://b.example"})
	current, ok := store.Current("idx1", after)
	if !ok {
		t.Fatal("expected an option")
	}
	if current.GlobalIndex != 0 {
		t.Errorf("expected fallback to default, got %+v", current)
	}

	if _, ok := store.Current("idx1", nil); ok {
		t.Error("expected no option for empty set")
	}
}

func TestSelectionStore_CurrentIgnoresInvalidEntries(t *testing.T) {
	options := Resolve([]string{"https://a.example"}, []string{"https://b.example"})

	tests := []struct {
		name   string
		stored MirrorOption
	}{
		{"negative index", MirrorOption{GlobalIndex: -1, URL: "https://a.example"}},
		{"index past end", MirrorOption{GlobalIndex: 2, URL: "https://z.example"}},
		{"mismatched url", MirrorOption{GlobalIndex: 1, URL: "https://z.example", Source: options[1].Source}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewSelectionStore()
			store.selected["idx1"] = tt.stored

			current, ok := store.Current("idx1", options)
			if !ok || current != options[0] {
				t.Errorf("expected default option, got %+v (ok=%v)", current, ok)
			}
		})
	}
}

func TestSelectionStore_Forget(t *testing.T) {
	store := NewSelectionStore()
	options := Resolve([]string{"https://a.example", "https://b.example"}, nil)
	if err := store.SelectMirror("idx1", 1, options); err != nil {
		t.Fatal(err)
	}

	store.Forget("idx1")
	if got := store.Selected("idx1"); got != 0 {
		t.Errorf("expected default after Forget, got %d", got)
	}
}

package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseItemID(t *testing.T) {
	cases := []struct {
		id       string
		category string
		word     string
		wantErr  bool
	}{
		{id: "animals-cat", category: "animals", word: "cat"},
		{id: "animals-ice-cream", category: "animals", word: "ice-cream"},
		{id: "justaword", wantErr: true},
		{id: "-cat", wantErr: true},
		{id: "animals-", wantErr: true},
	}
	for _, tc := range cases {
		category, word, err := ParseItemID(tc.id)
		if tc.wantErr {
			if !errors.Is(err, ErrMalformedItemID) {
				t.Fatalf("%q: expected malformed id error, got %v", tc.id, err)
			}
			continue
		}
		if err != nil || category != tc.category || word != tc.word {
			t.Fatalf("%q: got (%q, %q, %v)", tc.id, category, word, err)
		}
	}
}

func TestCatalogDedupesAndListsWords(t *testing.T) {
	var items []Item
	for _, id := range []string{"animals-cat", "toys-cat", "animals-dog", "animals-cat"} {
		item, err := NewItem(id, id+".png")
		if err != nil {
			t.Fatalf("new item: %v", err)
		}
		items = append(items, item)
	}
	catalog := NewCatalog(items)

	if catalog.Len() != 3 {
		t.Fatalf("expected duplicate id dropped, got %d items", catalog.Len())
	}
	if got := catalog.Words(); !reflect.DeepEqual(got, []string{"cat", "dog"}) {
		t.Fatalf("unexpected words %v", got)
	}
	counts := catalog.CountByCategory()
	if counts["animals"] != 2 || counts["toys"] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestDifficultyParsing(t *testing.T) {
	for in, want := range map[string]Difficulty{"easy": Easy, "Medium": Medium, " hard ": Hard, "0": Easy, "2": Hard} {
		got, err := ParseDifficultyName(in)
		if err != nil || got != want {
			t.Fatalf("%q: got %v, %v", in, got, err)
		}
	}
	for _, in := range []string{"", "expert", "3", "-1"} {
		if _, err := ParseDifficultyName(in); !errors.Is(err, ErrInvalidDifficulty) {
			t.Fatalf("%q: expected invalid difficulty, got %v", in, err)
		}
	}
	if Easy.ChoiceCount() != 2 || Medium.ChoiceCount() != 4 || Hard.ChoiceCount() != 6 {
		t.Fatal("unexpected choice counts")
	}
}

func TestAccuracy(t *testing.T) {
	if got := Accuracy(5, 5); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
	if got := Accuracy(5, 7); got < 71.42 || got > 71.43 {
		t.Fatalf("expected ~71.43, got %v", got)
	}
	if got := Accuracy(0, 0); got != 0 {
		t.Fatalf("expected 0 without guesses, got %v", got)
	}
}

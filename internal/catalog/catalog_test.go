package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestEmbeddedCatalogIntegrity(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	cats := c.Categories()
	if len(cats) != 5 {
		t.Fatalf("got %d categories, want 5", len(cats))
	}
	for _, cat := range cats {
		levels := c.Levels(cat.Key)
		if len(levels) != 3 {
			t.Errorf("category %s covers levels %v, want 1..3", cat.Key, levels)
		}
		for _, lvl := range []int{1, 2, 3} {
			if n := len(c.Targets(cat.Key, lvl)); n < 2 {
				t.Errorf("category %s level %d has %d targets, want at least 2", cat.Key, lvl, n)
			}
		}
	}

	counts := c.CountByKind()
	if counts[KindWord] != 24 {
		t.Errorf("got %d words, want 24", counts[KindWord])
	}
	if counts[KindQuestion] != 10 {
		t.Errorf("got %d questions, want 10", counts[KindQuestion])
	}
}

func TestEmbeddedTextIsNFC(t *testing.T) {
	c := MustLoad()
	for _, cat := range c.Categories() {
		for _, it := range c.Items(cat.Key) {
			if !norm.NFC.IsNormalString(it.Text) {
				t.Errorf("item %s text is not NFC", it.ID)
			}
		}
	}
}

func TestDistractorsExcludeOwnCategoryAndQuestions(t *testing.T) {
	c := MustLoad()
	for _, key := range []string{"internet", "safety"} {
		for _, d := range c.Distractors(key) {
			if d.Category == key {
				t.Errorf("Distractors(%s) returned own item %s", key, d.ID)
			}
			if d.Kind != KindWord {
				t.Errorf("Distractors(%s) returned %s item %s", key, d.Kind, d.ID)
			}
		}
	}
	if n := len(c.Distractors("internet")); n != 18 {
		t.Errorf("Distractors(internet) = %d items, want 18", n)
	}
	if n := len(c.Distractors("safety")); n != 24 {
		t.Errorf("Distractors(safety) = %d items, want 24", n)
	}
}

func TestItemCheck(t *testing.T) {
	c := MustLoad()
	q, ok := c.Item("safety-02")
	if !ok {
		t.Fatal("safety-02 missing")
	}
	cases := map[string]bool{"a": false, "b": false, "c": true, "d": false, "z": false}
	for choice, want := range cases {
		if got := q.Check(choice); got != want {
			t.Errorf("Check(%q) = %v, want %v", choice, got, want)
		}
	}

	w, _ := c.Item("internet-01")
	if w.Check("a") {
		t.Error("word item should never match a choice")
	}
}

func TestNewValidation(t *testing.T) {
	words := []Category{{Key: "food", Name: "الطعام", Kind: KindWord}}
	quiz := []Category{{Key: "safety", Name: "أمان", Kind: KindQuestion}}

	cases := []struct {
		name  string
		cats  []Category
		items []Item
		want  error
	}{
		{"no categories", nil, nil, ErrNoCategories},
		{"duplicate id", words, []Item{
			{ID: "x", Kind: KindWord, Text: "خبز", Category: "food", Level: 1},
			{ID: "x", Kind: KindWord, Text: "لحم", Category: "food", Level: 1},
		}, ErrDuplicateID},
		{"blank text", words, []Item{{ID: "x", Kind: KindWord, Text: "  ", Category: "food", Level: 1}}, ErrEmptyText},
		{"unknown category", words, []Item{{ID: "x", Kind: KindWord, Text: "خبز", Category: "toys", Level: 1}}, ErrUnknownCategory},
		{"kind mismatch", words, []Item{{ID: "x", Kind: KindQuestion, Text: "خبز", Category: "food", Level: 1}}, ErrUnknownKind},
		{"zero level", words, []Item{{ID: "x", Kind: KindWord, Text: "خبز", Category: "food"}}, ErrBadLevel},
		{"two correct choices", quiz, []Item{{ID: "q", Kind: KindQuestion, Text: "؟", Category: "safety", Level: 1,
			Choices: []Choice{{ID: "a", Text: "نعم", Correct: true}, {ID: "b", Text: "لا", Correct: true}}}}, ErrBadQuestion},
		{"duplicate choice id", quiz, []Item{{ID: "q", Kind: KindQuestion, Text: "؟", Category: "safety", Level: 1,
			Choices: []Choice{{ID: "a", Text: "نعم", Correct: true}, {ID: "a", Text: "لا"}}}}, ErrBadQuestion},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cats, tc.items)
			if !errors.Is(err, tc.want) {
				t.Errorf("New() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestNewClampsDifficulty(t *testing.T) {
	c, err := New(
		[]Category{{Key: "food", Kind: KindWord}},
		[]Item{{ID: "x", Kind: KindWord, Text: " خبز ", Category: "food", Level: 1, Difficulty: 9}},
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	it, _ := c.Item("x")
	if it.Difficulty != 1 {
		t.Errorf("Difficulty = %d, want 1", it.Difficulty)
	}
	if it.Text != "خبز" {
		t.Errorf("Text = %q, want trimmed", it.Text)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	words := `{"categories":[{"key":"food","name":"الطعام","words":[{"id":"f1","text":"خبز","level":1,"difficulty":1}]}]}`
	questions := `{"category":{},"questions":[]}`
	if err := os.WriteFile(filepath.Join(dir, "data", "words.json"), []byte(words), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "data", "questions.json"), []byte(questions), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error: %v", err)
	}
	if c.Len() != 1 || !c.Has("food") || c.Has("safety") {
		t.Errorf("unexpected catalog: len=%d categories=%v", c.Len(), c.Categories())
	}

	if _, err := LoadDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("LoadDir on a missing dir should fail")
	}
}

// Package catalog holds the static game content: Arabic vocabulary grouped by
// category and level, and the online-safety question bank.
//
// A Catalog is immutable once built and safe for concurrent readers.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/unicode/norm"
)

// Kind distinguishes draggable words from multiple-choice questions.
type Kind string

const (
	KindWord     Kind = "word"
	KindQuestion Kind = "question"
)

var (
	ErrDuplicateID     = errors.New("duplicate item id")
	ErrEmptyText       = errors.New("empty item text")
	ErrUnknownKind     = errors.New("unknown item kind")
	ErrUnknownCategory = errors.New("unknown category")
	ErrBadLevel        = errors.New("level must be positive")
	ErrBadQuestion     = errors.New("question must have exactly one correct choice")
	ErrNoCategories    = errors.New("catalog has no categories")
)

// Category is a drop zone the player sorts items into.
type Category struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Choice is one option of a question.
type Choice struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct,omitempty"`
}

// Item is a word or a question.
type Item struct {
	ID         string   `json:"id"`
	Kind       Kind     `json:"kind"`
	Text       string   `json:"text"`
	Category   string   `json:"category"`
	Level      int      `json:"level"`
	Difficulty int      `json:"difficulty"`
	Tip        string   `json:"tip,omitempty"`
	Choices    []Choice `json:"choices,omitempty"`
}

// Check reports whether choiceID names the correct option of a question.
// Unknown choices and non-question items are never correct.
func (it Item) Check(choiceID string) bool {
	c, ok := lo.Find(it.Choices, func(c Choice) bool { return c.ID == choiceID })
	return ok && c.Correct
}

// Catalog is the validated, normalized content set.
type Catalog struct {
	categories []Category
	items      []Item
	byID       map[string]int
	byCategory map[string][]Item
}

// New normalizes and validates the given content.
func New(categories []Category, items []Item) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}

	c := &Catalog{
		categories: make([]Category, 0, len(categories)),
		items:      make([]Item, 0, len(items)),
		byID:       make(map[string]int, len(items)),
	}

	known := make(map[string]Kind, len(categories))
	for _, cat := range categories {
		cat.Key = strings.TrimSpace(cat.Key)
		cat.Name = normalize(cat.Name)
		if cat.Key == "" {
			return nil, fmt.Errorf("%w: empty key", ErrUnknownCategory)
		}
		if cat.Kind != KindWord && cat.Kind != KindQuestion {
			return nil, fmt.Errorf("category %s: %w %q", cat.Key, ErrUnknownKind, cat.Kind)
		}
		known[cat.Key] = cat.Kind
		c.categories = append(c.categories, cat)
	}

	for _, it := range items {
		it = normalizeItem(it)
		if err := validateItem(it, known); err != nil {
			return nil, err
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, it.ID)
		}
		c.byID[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}

	c.byCategory = lo.GroupBy(c.items, func(it Item) string { return it.Category })
	return c, nil
}

func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func normalizeItem(it Item) Item {
	it.ID = strings.TrimSpace(it.ID)
	it.Text = normalize(it.Text)
	it.Tip = normalize(it.Tip)
	if it.Difficulty < 1 || it.Difficulty > 3 {
		it.Difficulty = 1
	}
	it.Choices = lo.Map(it.Choices, func(ch Choice, _ int) Choice {
		ch.ID = strings.TrimSpace(ch.ID)
		ch.Text = normalize(ch.Text)
		return ch
	})
	return it
}

func validateItem(it Item, known map[string]Kind) error {
	if it.ID == "" {
		return fmt.Errorf("%w: empty id", ErrEmptyText)
	}
	if it.Text == "" {
		return fmt.Errorf("item %s: %w", it.ID, ErrEmptyText)
	}
	kind, ok := known[it.Category]
	if !ok {
		return fmt.Errorf("item %s: %w %q", it.ID, ErrUnknownCategory, it.Category)
	}
	if it.Kind != kind {
		return fmt.Errorf("item %s: %w %q in %s category", it.ID, ErrUnknownKind, it.Kind, kind)
	}
	if it.Level < 1 {
		return fmt.Errorf("item %s: %w", it.ID, ErrBadLevel)
	}
	if it.Kind == KindQuestion {
		correct := lo.CountBy(it.Choices, func(ch Choice) bool { return ch.Correct })
		if correct != 1 {
			return fmt.Errorf("item %s: %w (got %d)", it.ID, ErrBadQuestion, correct)
		}
		if len(lo.UniqBy(it.Choices, func(ch Choice) string { return ch.ID })) != len(it.Choices) {
			return fmt.Errorf("item %s: %w: duplicate choice id", it.ID, ErrBadQuestion)
		}
	}
	return nil
}

// Categories returns the categories in catalog order.
func (c *Catalog) Categories() []Category {
	return slices.Clone(c.categories)
}

// Category looks up a category by key.
func (c *Catalog) Category(key string) (Category, bool) {
	return lo.Find(c.categories, func(cat Category) bool { return cat.Key == key })
}

// Has reports whether key names a category.
func (c *Catalog) Has(key string) bool {
	_, ok := c.Category(key)
	return ok
}

// Item looks up an item by id.
func (c *Catalog) Item(id string) (Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// CountByKind returns how many items of each kind the catalog holds.
func (c *Catalog) CountByKind() map[Kind]int {
	return lo.CountValuesBy(c.items, func(it Item) Kind { return it.Kind })
}

// Targets returns the items a player must place into category at level.
func (c *Catalog) Targets(category string, level int) []Item {
	return lo.Filter(c.byCategory[category], func(it Item, _ int) bool { return it.Level == level })
}

// Items returns every item of a category.
func (c *Catalog) Items(category string) []Item {
	return slices.Clone(c.byCategory[category])
}

// Distractors returns the word items of every other category. Questions are
// never used as distractors.
func (c *Catalog) Distractors(category string) []Item {
	return lo.Filter(c.items, func(it Item, _ int) bool {
		return it.Category != category && it.Kind == KindWord
	})
}

// Levels returns the sorted distinct levels a category has targets for.
func (c *Catalog) Levels(category string) []int {
	levels := lo.Uniq(lo.Map(c.byCategory[category], func(it Item, _ int) int { return it.Level }))
	slices.Sort(levels)
	return levels
}

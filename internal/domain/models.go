package domain

import (
	"fmt"
	"strings"
)

// ItemSeparator splits an item identifier into category and word.
const ItemSeparator = "-"

// Item is one quiz-eligible picture: the word it shows and where the image lives.
type Item struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Word     string `json:"word"`
	ImageRef string `json:"imageRef"`
}

// NewItem builds an Item from a "category-word" identifier.
func NewItem(id, imageRef string) (Item, error) {
	category, word, err := ParseItemID(id)
	if err != nil {
		return Item{}, err
	}
	return Item{ID: id, Category: category, Word: word, ImageRef: imageRef}, nil
}

// ParseItemID splits an identifier at the first separator. Both halves must be non-empty.
func ParseItemID(id string) (category, word string, err error) {
	category, word, ok := strings.Cut(id, ItemSeparator)
	if !ok || category == "" || word == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedItemID, id)
	}
	return category, word, nil
}

// WordOf returns the word part of an item identifier.
func WordOf(id string) (string, error) {
	_, word, err := ParseItemID(id)
	return word, err
}

// Catalog is the ordered, read-only set of items available to a session.
type Catalog struct {
	items []Item
}

// NewCatalog copies items into a catalog, dropping repeated IDs (first one wins).
func NewCatalog(items []Item) Catalog {
	seen := make(map[string]struct{}, len(items))
	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		kept = append(kept, item)
	}
	return Catalog{items: kept}
}

func (c Catalog) Len() int { return len(c.items) }

// Item returns the i-th item in load order.
func (c Catalog) Item(i int) Item { return c.items[i] }

// Items returns a copy of the catalog contents.
func (c Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Words returns the distinct words of the catalog in first-seen order.
func (c Catalog) Words() []string {
	seen := make(map[string]struct{}, len(c.items))
	words := make([]string, 0, len(c.items))
	for _, item := range c.items {
		if _, ok := seen[item.Word]; ok {
			continue
		}
		seen[item.Word] = struct{}{}
		words = append(words, item.Word)
	}
	return words
}

// CountByCategory reports how many items each category contributed.
func (c Catalog) CountByCategory() map[string]int {
	counts := make(map[string]int)
	for _, item := range c.items {
		counts[item.Category]++
	}
	return counts
}

// Question is what the player sees; it never carries the answer word.
type Question struct {
	Number   int      `json:"number"`
	Total    int      `json:"total"`
	Category string   `json:"category"`
	ImageRef string   `json:"imageRef"`
	Choices  []string `json:"choices"`
}

// GuessResult summarizes one submitted guess.
type GuessResult struct {
	Word         string  `json:"word"`
	Correct      bool    `json:"correct"`
	State        State   `json:"state"`
	Score        int     `json:"score"`
	TotalGuesses int     `json:"totalGuesses"`
	Completed    bool    `json:"completed"`
	Accuracy     float64 `json:"accuracy,omitempty"`
}

// Summary is the end-of-game report.
type Summary struct {
	Questions    int          `json:"questions"`
	TotalGuesses int          `json:"totalGuesses"`
	Accuracy     float64      `json:"accuracy"`
	Difficulty   Difficulty   `json:"difficulty"`
	Record       *ScoreRecord `json:"record,omitempty"`
}

// ScoreRecord is one persisted high-score row.
type ScoreRecord struct {
	ID         int64      `json:"id"`
	Score      float64    `json:"score"`
	Difficulty Difficulty `json:"difficulty"`
}

// Accuracy is the percentage of guesses that were correct.
func Accuracy(questions, totalGuesses int) float64 {
	if totalGuesses == 0 {
		return 0
	}
	return float64(100*questions) / float64(totalGuesses)
}

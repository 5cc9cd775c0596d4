package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// wordsDoc is the on-disk shape of words.json.
type wordsDoc struct {
	Categories []struct {
		Key   string `json:"key"`
		Name  string `json:"name"`
		Words []struct {
			ID         string `json:"id"`
			Text       string `json:"text"`
			Level      int    `json:"level"`
			Difficulty int    `json:"difficulty"`
		} `json:"words"`
	} `json:"categories"`
}

// questionsDoc is the on-disk shape of questions.json.
type questionsDoc struct {
	Category struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"category"`
	Questions []struct {
		ID         string   `json:"id"`
		Level      int      `json:"level"`
		Difficulty int      `json:"difficulty"`
		Tip        string   `json:"tip"`
		Question   string   `json:"question"`
		Choices    []Choice `json:"choices"`
	} `json:"questions"`
}

// decode reads and unmarshals a JSON file from fsys.
func decode[T any](fsys fs.FS, name string) (T, error) {
	var result T

	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return result, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("parse %s: %w", name, err)
	}
	return result, nil
}

// Load builds the catalog shipped inside the binary.
func Load() (*Catalog, error) {
	return LoadFS(dataFS)
}

// MustLoad is Load for callers that cannot run without content.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadDir builds a catalog from a directory laid out like the embedded one
// (data/words.json and data/questions.json).
func LoadDir(dir string) (*Catalog, error) {
	if _, err := os.Stat(path.Join(dir, wordsFile)); err != nil {
		return nil, fmt.Errorf("catalog dir %s: %w", dir, err)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS builds and validates a catalog from fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	words, err := decode[wordsDoc](fsys, wordsFile)
	if err != nil {
		return nil, err
	}
	questions, err := decode[questionsDoc](fsys, questionsFile)
	if err != nil {
		return nil, err
	}

	var (
		cats  []Category
		items []Item
	)
	for _, c := range words.Categories {
		cats = append(cats, Category{Key: c.Key, Name: c.Name, Kind: KindWord})
		for _, w := range c.Words {
			items = append(items, Item{
				ID:         w.ID,
				Kind:       KindWord,
				Text:       w.Text,
				Category:   c.Key,
				Level:      w.Level,
				Difficulty: w.Difficulty,
			})
		}
	}

	if qc := questions.Category; qc.Key != "" {
		cats = append(cats, Category{Key: qc.Key, Name: qc.Name, Kind: KindQuestion})
		for _, q := range questions.Questions {
			items = append(items, Item{
				ID:         q.ID,
				Kind:       KindQuestion,
				Text:       q.Question,
				Category:   qc.Key,
				Level:      q.Level,
				Difficulty: q.Difficulty,
				Tip:        q.Tip,
				Choices:    q.Choices,
			})
		}
	}

	return New(cats, items)
}

package catalog

import "embed"

//go:embed data/*.json
var dataFS embed.FS

const (
	wordsFile     = "data/words.json"
	questionsFile = "data/questions.json"
)

package server

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Suggestions is the page copy served to the chat UI: the about blurb and the
// starter queries shown over an empty transcript.
type Suggestions struct {
	About   string   `yaml:"about"`
	Queries []string `yaml:"queries"`
}

// LoadSuggestions reads the suggestions file. Callers fall back to
// defaultSuggestions on error.
func LoadSuggestions(path string) (Suggestions, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Suggestions{}, err
	}
	var s Suggestions
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Suggestions{}, err
	}
	return s, nil
}

func defaultSuggestions() Suggestions {
	return Suggestions{
		About: "You can search for products that are active, their cost and the stock information.",
		Queries: []string{
			"Are there emergency lights available in stock?",
			"What is the price of IC sensors and how many units are available?",
		},
	}
}

package quiz

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultBank []byte

type Question struct {
	ID       string   `yaml:"id" json:"id"`
	Category string   `yaml:"category" json:"category"`
	Text     string   `yaml:"text" json:"text"`
	Options  []string `yaml:"options" json:"options"`
}

func (q Question) HasOption(choice string) bool {
	for _, o := range q.Options {
		if o == choice {
			return true
		}
	}
	return false
}

type Bank struct {
	Questions []Question `yaml:"questions" json:"questions"`
}

// LoadBank parses and validates a YAML question bank.
func LoadBank(data []byte) (*Bank, error) {
	var b Bank
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if len(b.Questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}
	seen := make(map[string]bool, len(b.Questions))
	for i, q := range b.Questions {
		id := strings.TrimSpace(q.ID)
		if id == "" {
			return nil, fmt.Errorf("question %d has no id", i+1)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate question id %q", id)
		}
		seen[id] = true
		if strings.TrimSpace(q.Text) == "" {
			return nil, fmt.Errorf("question %q has no text", id)
		}
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("question %q needs at least two options", id)
		}
	}
	return &b, nil
}

// DefaultBank returns the embedded question set.
func DefaultBank() *Bank {
	b, err := LoadBank(defaultBank)
	if err != nil {
		panic(err)
	}
	return b
}

package service

import (
	"fmt"
	"os"

	"github.com/rhysv96/discord-r9k/internal/model"

	"gopkg.in/yaml.v3"
)

// Rule is a per-message moderation check. Every matching rule sends its
// reply before the message is persisted.
type Rule interface {
	Name() string
	Matches(msg model.IncomingMessage) bool
	Reply(msg model.IncomingMessage) string
}

// AuthorRule replies with a fixed text to messages from any of AuthorIDs.
type AuthorRule struct {
	RuleName  string
	AuthorIDs []string
	Text      string
}

func (r AuthorRule) Name() string { return r.RuleName }

func (r AuthorRule) Matches(msg model.IncomingMessage) bool {
	for _, id := range r.AuthorIDs {
		if id == msg.AuthorID {
			return true
		}
	}
	return false
}

func (r AuthorRule) Reply(model.IncomingMessage) string { return r.Text }

type rulesFile struct {
	Rules []struct {
		Name    string   `yaml:"name"`
		Authors []string `yaml:"authors"`
		Reply   string   `yaml:"reply"`
	} `yaml:"rules"`
}

// LoadRules reads author rules from a YAML file:
//
//	rules:
//	  - name: greeter
//	    authors: ["141320575132893184"]
//	    reply: "hello again"
//
// An empty path yields no rules.
func LoadRules(path string) ([]Rule, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes the YAML rules document.
func ParseRules(data []byte) ([]Rule, error) {
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	rules := make([]Rule, 0, len(f.Rules))
	seen := make(map[string]bool)
	for i, r := range f.Rules {
		switch {
		case r.Name == "":
			return nil, fmt.Errorf("rule %d: name is required", i)
		case seen[r.Name]:
			return nil, fmt.Errorf("rule %q: duplicate name", r.Name)
		case len(r.Authors) == 0:
			return nil, fmt.Errorf("rule %q: at least one author is required", r.Name)
		case r.Reply == "":
			return nil, fmt.Errorf("rule %q: reply is required", r.Name)
		}
		seen[r.Name] = true
		rules = append(rules, AuthorRule{RuleName: r.Name, AuthorIDs: r.Authors, Text: r.Reply})
	}
	return rules, nil
}

package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/rhysv96/discord-r9k/internal/model"
)

// MinContentLength is the shortest content, in characters, that is checked
// for duplicates. Greetings and emoji repeat too often to be worth flagging.
const MinContentLength = 8

// ContentFinder is the read side of the message store the detector needs.
type ContentFinder interface {
	FindByContent(ctx context.Context, content string) ([]model.StoredMessage, error)
}

type Detector struct {
	finder ContentFinder
}

func NewDetector(finder ContentFinder) *Detector {
	return &Detector{finder: finder}
}

// FindDuplicate returns the oldest stored message with exactly the same
// content, or nil when there is none or the content is too short to check.
// Store errors are returned, never treated as "no duplicate".
func (d *Detector) FindDuplicate(ctx context.Context, content string) (*model.StoredMessage, error) {
	if utf8.RuneCountInString(content) < MinContentLength {
		return nil, nil
	}

	matches, err := d.finder.FindByContent(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("find duplicate: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}

	oldest := matches[0]
	for _, m := range matches[1:] {
		if m.ID < oldest.ID {
			oldest = m
		}
	}
	return &oldest, nil
}

package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rhysv96/discord-r9k/internal/model"
)

var errStoreDown = errors.New("store unreachable")

// memStore is an in-memory MessageStore.
type memStore struct {
	mu        sync.Mutex
	rows      []model.StoredMessage
	findErr   error
	insertErr error
	finds     int
}

func (s *memStore) FindByContent(_ context.Context, content string) ([]model.StoredMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finds++
	if s.findErr != nil {
		return nil, s.findErr
	}
	var out []model.StoredMessage
	for _, r := range s.rows {
		if r.Content == content {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) Insert(_ context.Context, msg model.NewMessage) (*model.StoredMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	m := model.StoredMessage{
		ID:        int64(len(s.rows) + 1),
		GuildID:   msg.GuildID,
		ChannelID: msg.ChannelID,
		MessageID: msg.MessageID,
		AuthorID:  msg.AuthorID,
		Content:   msg.Content,
	}
	s.rows = append(s.rows, m)
	return &m, nil
}

func (s *memStore) seed(contents ...string) {
	for _, c := range contents {
		_, _ = s.Insert(context.Background(), model.NewMessage{
			GuildID: "g1", ChannelID: "100", MessageID: "seed", AuthorID: "u0", Content: c,
		})
	}
}

type sentReply struct {
	MessageID string
	Text      string
}

// recordingReplier captures replies and optionally fails them.
type recordingReplier struct {
	mu      sync.Mutex
	replies []sentReply
	err     error
}

func (r *recordingReplier) Reply(_ context.Context, msg model.IncomingMessage, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = append(r.replies, sentReply{MessageID: msg.MessageID, Text: text})
	return r.err
}

package service

import (
	"context"
	"testing"

	"github.com/rhysv96/discord-r9k/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDuplicateSkipsShortContent(t *testing.T) {
	store := &memStore{}
	store.seed("hi", "hi", "1234567", "😀😀😀")
	d := NewDetector(store)

	for _, content := range []string{"", "hi", "1234567", "😀😀😀"} {
		dup, err := d.FindDuplicate(context.Background(), content)
		require.NoError(t, err)
		assert.Nil(t, dup, content)
	}
	assert.Zero(t, store.finds, "short content must not hit the store")
}

func TestFindDuplicateReturnsOldest(t *testing.T) {
	store := &memStore{}
	store.seed("hello world!", "other thing", "hello world!", "hello world!")
	d := NewDetector(store)

	dup, err := d.FindDuplicate(context.Background(), "hello world!")
	require.NoError(t, err)
	require.NotNil(t, dup)
	assert.Equal(t, int64(1), dup.ID)
}

func TestFindDuplicateOldestRegardlessOfOrder(t *testing.T) {
	finder := finderFunc(func(context.Context, string) ([]model.StoredMessage, error) {
		return []model.StoredMessage{{ID: 9}, {ID: 3}, {ID: 5}}, nil
	})

	dup, err := NewDetector(finder).FindDuplicate(context.Background(), "exactly eight")
	require.NoError(t, err)
	assert.Equal(t, int64(3), dup.ID)
}

func TestFindDuplicateNoMatch(t *testing.T) {
	store := &memStore{}
	store.seed("hello world!")

	for _, content := range []string{"Hello world!", "hello world! ", "hello world"} {
		dup, err := NewDetector(store).FindDuplicate(context.Background(), content)
		require.NoError(t, err)
		assert.Nil(t, dup, "%q must not match", content)
	}
}

func TestFindDuplicateThresholdIsInclusive(t *testing.T) {
	store := &memStore{}
	store.seed("12345678")

	dup, err := NewDetector(store).FindDuplicate(context.Background(), "12345678")
	require.NoError(t, err)
	assert.NotNil(t, dup)
}

func TestFindDuplicatePropagatesStoreErrors(t *testing.T) {
	store := &memStore{findErr: errStoreDown}

	dup, err := NewDetector(store).FindDuplicate(context.Background(), "hello world!")
	require.ErrorIs(t, err, errStoreDown)
	assert.Nil(t, dup)
}

type finderFunc func(context.Context, string) ([]model.StoredMessage, error)

func (f finderFunc) FindByContent(ctx context.Context, content string) ([]model.StoredMessage, error) {
	return f(ctx, content)
}

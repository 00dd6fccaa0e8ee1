package services

import (
	"context"
	"testing"
	"time"

	"orcado_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNonceStore struct {
	entries map[string]fakeNonceEntry
	setErr  error
	getErr  error
}

type fakeNonceEntry struct {
	value     string
	expiresAt time.Time
}

func newFakeNonceStore() *fakeNonceStore {
	return &fakeNonceStore{entries: make(map[string]fakeNonceEntry)}
}

func (f *fakeNonceStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[key] = fakeNonceEntry{
		value:     value.(string),
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (f *fakeNonceStore) GetDel(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	entry, ok := f.entries[key]
	delete(f.entries, key)
	if !ok || time.Now().After(entry.expiresAt) {
		return "", nil
	}
	return entry.value, nil
}

func newStateService(store nonceStore, ttl time.Duration) *StateService {
	cfg := &structs.Config{Bling: &structs.BlingConfig{StateTTL: ttl}}
	return NewStateService(gecho.NewDefaultLogger(), cfg, store)
}

func TestStateServiceIssueAndConsume(t *testing.T) {
	store := newFakeNonceStore()
	ss := newStateService(store, 10*time.Minute)
	ctx := context.Background()

	state, err := ss.Issue(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, state)

	valid, err := ss.Consume(ctx, state)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestStateServiceConsumeIsSingleUse(t *testing.T) {
	store := newFakeNonceStore()
	ss := newStateService(store, 10*time.Minute)
	ctx := context.Background()

	state, err := ss.Issue(ctx)
	require.NoError(t, err)

	valid, err := ss.Consume(ctx, state)
	require.NoError(t, err)
	require.True(t, valid)

	valid, err = ss.Consume(ctx, state)
	require.NoError(t, err)
	assert.False(t, valid, "a nonce must not be consumable twice")
}

func TestStateServiceConsumeUnknownState(t *testing.T) {
	ss := newStateService(newFakeNonceStore(), 10*time.Minute)

	valid, err := ss.Consume(context.Background(), "deadbeefdeadbeefdeadbeefdeadbeef")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestStateServiceConsumeEmptyState(t *testing.T) {
	ss := newStateService(newFakeNonceStore(), 10*time.Minute)

	valid, err := ss.Consume(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestStateServiceConsumeExpiredState(t *testing.T) {
	store := newFakeNonceStore()
	ss := newStateService(store, -time.Second)
	ctx := context.Background()

	state, err := ss.Issue(ctx)
	require.NoError(t, err)

	valid, err := ss.Consume(ctx, state)
	require.NoError(t, err)
	assert.False(t, valid, "an expired nonce must be rejected")
}

func TestStateServiceIssuesDistinctStates(t *testing.T) {
	store := newFakeNonceStore()
	ss := newStateService(store, 10*time.Minute)
	ctx := context.Background()

	first, err := ss.Issue(ctx)
	require.NoError(t, err)
	second, err := ss.Issue(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

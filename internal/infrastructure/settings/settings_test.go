package settings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	items map[string][]byte
	err   error
}

func newMemStore() *memStore {
	return &memStore{items: make(map[string][]byte)}
}

func (m *memStore) LoadItem(key string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.items[key], nil
}

func (m *memStore) SaveItem(key string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.items[key] = data
	return nil
}

func TestLoad_Empty(t *testing.T) {
	s, err := Load(newMemStore())
	require.NoError(t, err)
	assert.Equal(t, Settings{}, s)
}

func TestSaveAndLoad(t *testing.T) {
	store := newMemStore()
	want := Settings{Muted: true, ShowHitboxes: true}

	require.NoError(t, Save(store, want))
	got, err := Load(store)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.JSONEq(t, `{"muted":true,"showHitboxes":true}`, string(store.items[settingsKey]))
}

func TestLoad_Corrupt(t *testing.T) {
	store := newMemStore()
	store.items[settingsKey] = []byte("{not json")

	_, err := Load(store)
	assert.ErrorContains(t, err, "parse settings")
}

func TestStoreErrors(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("disk full")

	_, err := Load(store)
	assert.ErrorIs(t, err, store.err)
	assert.ErrorIs(t, Save(store, Settings{}), store.err)
}

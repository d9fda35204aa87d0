package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustguard/pkg/logger"
)

func newTestStore(t *testing.T) *ContactStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "trusted_contacts.json")
	return NewContactStore(path, logger.NewDefault())
}

func TestHashSafeWord(t *testing.T) {
	testCases := []struct {
		name string
		a    string
		b    string
		same bool
	}{
		{name: "trim and case are normalized", a: "  Pineapple  ", b: "pineapple", same: true},
		{name: "different words differ", a: "pineapple", b: "mango", same: false},
		{name: "empty word is stable", a: "", b: "   ", same: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ha, hb := HashSafeWord(tc.a), HashSafeWord(tc.b)
			assert.Len(t, ha, 64)
			if tc.same {
				assert.Equal(t, ha, hb)
			} else {
				assert.NotEqual(t, ha, hb)
			}
		})
	}
}

func TestContactStoreListMissingFile(t *testing.T) {
	store := newTestStore(t)

	contacts, err := store.List()
	require.NoError(t, err)

	assert.NotNil(t, contacts)
	assert.Empty(t, contacts)
}

func TestContactStoreListCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trusted_contacts.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewContactStore(path, logger.NewDefault())

	contacts, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestContactStoreAddAndList(t *testing.T) {
	store := newTestStore(t)

	added, err := store.Add("Grandma Rose", "grandmother", "555-0100", "pineapple")
	require.NoError(t, err)

	assert.NotEqual(t, "", added.ID.String())
	assert.Equal(t, "Grandma Rose", added.Name)
	assert.Equal(t, HashSafeWord("pineapple"), added.SafeWordHash)
	assert.False(t, added.CreatedAt.IsZero())

	contacts, err := store.List()
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, added.Name, contacts[0].Name)
}

func TestContactStoreAddDuplicateName(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Add("Sam", "", "", "blue")
	require.NoError(t, err)

	_, err = store.Add("sam", "", "", "green")
	assert.ErrorIs(t, err, ErrContactExists)
}

func TestContactStoreAddEmptyName(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Add("   ", "", "", "word")
	assert.Error(t, err)
}

func TestContactStoreRemove(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Add("Sam", "", "", "blue")
	require.NoError(t, err)

	require.NoError(t, store.Remove("SAM"))

	contacts, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, contacts)

	assert.ErrorIs(t, store.Remove("Sam"), ErrContactNotFound)
}

func TestContactStoreVerifySafeWord(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Add("Sam", "son", "555-0111", "River Stone")
	require.NoError(t, err)

	ok, err := store.VerifySafeWord("Sam", "  river stone ")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.VerifySafeWord("Sam", "wrong word")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.VerifySafeWord("Nobody", "anything")
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestContactStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trusted_contacts.json")

	first := NewContactStore(path, logger.NewDefault())
	_, err := first.Add("Sam", "", "", "blue")
	require.NoError(t, err)

	second := NewContactStore(path, logger.NewDefault())
	contacts, err := second.List()
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Sam", contacts[0].Name)

	ok, err := second.VerifySafeWord("Sam", "BLUE")
	require.NoError(t, err)
	assert.True(t, ok)
}

package services

import (
	"chatstat/internal/models"
	"chatstat/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityResolver_ResolveFallback(t *testing.T) {
	store := &testutil.MockNamesStore{Files: map[string]models.NameTable{testNamesPath: {42: "Alice"}}}
	r := NewIdentityResolver(testConfig(), store, &testutil.MockLogger{})

	names, err := r.LoadNames()
	require.NoError(t, err)

	assert.Equal(t, "Alice", r.Resolve(42, names))
	assert.Equal(t, "User_7", r.Resolve(7, names))
}

func TestIdentityResolver_MergeAndPersist(t *testing.T) {
	store := &testutil.MockNamesStore{}
	r := NewIdentityResolver(testConfig(), store, &testutil.MockLogger{})

	names, added, err := r.MergeAndPersist(nil, models.NameTable{42: "Alice", 7: "Bob"})
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, models.NameTable{42: "Alice", 7: "Bob"}, names)
	assert.Equal(t, names, store.Files[testNamesPath])

	names, added, err = r.MergeAndPersist(names, models.NameTable{42: "Alicia", 9: "Carol"})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, "Alice", names[42])
	assert.Equal(t, 2, store.Saves)
}

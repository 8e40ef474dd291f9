package images

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	storage, err := NewLocalStorage(t.TempDir(), common.GetLogger())
	require.NoError(t, err)
	return storage
}

func TestLocalStorage_SaveLoadDelete(t *testing.T) {
	storage := newTestStorage(t)
	payload := []byte("png-bytes")

	ref, err := storage.Save(payload, "design-1", "tenant-a", "generated")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("tenant-a", "generated", "design-1.png"), ref)

	loaded, err := storage.Load(ref)
	require.NoError(t, err)
	assert.Equal(t, payload, loaded)

	deleted, err := storage.Delete(ref)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = storage.Load(ref)
	assert.Error(t, err)

	deleted, err = storage.Delete(ref)
	require.NoError(t, err)
	assert.False(t, deleted, "second delete reports the reference was gone")
}

func TestLocalStorage_DefaultsForTenantAndSubfolder(t *testing.T) {
	storage := newTestStorage(t)

	ref, err := storage.Save([]byte("x"), "design-2", "", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("global", "generated", "design-2.png"), ref)
}

func TestLocalStorage_RequiresID(t *testing.T) {
	storage := newTestStorage(t)
	_, err := storage.Save([]byte("x"), "", "t", "generated")
	assert.Error(t, err)
}

func TestLocalStorage_RejectsEscapingReferences(t *testing.T) {
	storage := newTestStorage(t)

	for _, ref := range []string{
		"",
		"../outside.png",
		"a/../../outside.png",
		"/etc/passwd",
	} {
		_, err := storage.Load(ref)
		assert.Error(t, err, "reference %q must not resolve", ref)

		_, err = storage.Delete(ref)
		assert.Error(t, err, "reference %q must not resolve", ref)
	}
}

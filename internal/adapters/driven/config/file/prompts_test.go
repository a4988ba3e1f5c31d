package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/ports/driven"
)

func TestNewPromptStore_WithCustomDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewPromptStore(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
}

func TestNewPromptStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewPromptStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".ration", "prompts"), store.Dir())
}

func TestPromptStore_Load_CreatesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptForagingHTML)
	require.NoError(t, err)

	for _, f := range []string{"foraging_html.txt", "foraging_text.txt", "README.md"} {
		assert.FileExists(t, filepath.Join(dir, f))
	}
}

func TestPromptStore_Load_ReturnsDefaultContent(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	html, err := store.Load(driven.PromptForagingHTML)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(domain.ForagingPromptHTML), html)

	text, err := store.Load(driven.PromptForagingText)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(domain.ForagingPromptText), text)
}

func TestPromptStore_Load_ReturnsCustomContent(t *testing.T) {
	dir := t.TempDir()
	custom := "Forage near %[6]v for a %[5]v year old."
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foraging_html.txt"), []byte("\n"+custom+"\n\n"), 0600))
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptForagingHTML)

	require.NoError(t, err)
	assert.Equal(t, custom, prompt)

	// Existing files are never overwritten by defaults.
	data, err := os.ReadFile(filepath.Join(dir, "foraging_html.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), custom)
}

func TestPromptStore_Load_FallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)
	_, err = store.Load(driven.PromptForagingText)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "foraging_text.txt")))
	store.Reload()

	prompt, err := store.Load(driven.PromptForagingText)
	require.NoError(t, err)
	assert.Equal(t, domain.ForagingPromptText, prompt)
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("does_not_exist")

	assert.Error(t, err)
}

func TestPromptStore_Load_InitFailureUsesDefaults(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))
	store, err := NewPromptStore(filepath.Join(blocker, "prompts"))
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptForagingHTML)
	require.NoError(t, err)
	assert.Equal(t, domain.ForagingPromptHTML, prompt)

	_, err = store.Load("does_not_exist")
	assert.Error(t, err)
}

func TestPromptStore_CachesUntilReload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	first, err := store.Load(driven.PromptForagingHTML)
	require.NoError(t, err)

	path := filepath.Join(dir, "foraging_html.txt")
	require.NoError(t, os.WriteFile(path, []byte("changed"), 0600))

	cached, err := store.Load(driven.PromptForagingHTML)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	store.Reload()
	fresh, err := store.Load(driven.PromptForagingHTML)
	require.NoError(t, err)
	assert.Equal(t, "changed", fresh)
}

func TestPromptStore_Load_ConcurrentAccess(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := store.Load(driven.PromptForagingHTML)
			errs <- err
		}()
		go func() {
			defer wg.Done()
			store.Reload()
			_, err := store.Load(driven.PromptForagingText)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

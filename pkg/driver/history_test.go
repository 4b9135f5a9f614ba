package driver

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryHistory struct {
	items []string
}

func (m *memoryHistory) ReadHistory(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		m.items = append(m.items, scanner.Text())
		n++
	}
	return n, scanner.Err()
}

func (m *memoryHistory) WriteHistory(w io.Writer) (int, error) {
	n, err := io.WriteString(w, strings.Join(m.items, "\n")+"\n")
	if err != nil {
		return 0, err
	}
	_ = n
	return len(m.items), nil
}

func TestHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history")
	store := NewHistoryStore(path)
	assert.Equal(t, path, store.Path())

	n, err := store.Load(&memoryHistory{})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = store.Save(&memoryHistory{items: []string{"assign x = 1", "x"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	loaded := &memoryHistory{}
	n, err = store.Load(loaded)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"assign x = 1", "x"}, loaded.items)
}

func TestHistoryDisabled(t *testing.T) {
	store := NewHistoryStore("")
	assert.Nil(t, store)
	n, err := store.Save(&memoryHistory{items: []string{"x"}})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, "", store.Path())
}

package driver

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto"
	"github.com/pkg/errors"

	"github.com/minhtribui153/xlang/pkg/ast"
)

// ProgramCache keeps parsed programs keyed by file name and source hash, so
// re-running unchanged input skips lexing and parsing.
type ProgramCache struct {
	cache *ristretto.Cache
}

// NewProgramCache creates a cache holding up to maxPrograms parsed programs.
func NewProgramCache(maxPrograms int) (*ProgramCache, error) {
	if maxPrograms <= 0 {
		maxPrograms = 256
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(maxPrograms * 10),
		MaxCost:     int64(maxPrograms),
		BufferItems: 64,
	})
	if err != nil {
		return nil, errors.Wrap(err, "program cache")
	}
	return &ProgramCache{cache: cache}, nil
}

func cacheKey(name, text string) string {
	return name + "#" + strconv.FormatUint(xxhash.Sum64String(text), 16)
}

// Get returns the cached program for (name, text).
func (c *ProgramCache) Get(name, text string) (*ast.Block, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.cache.Get(cacheKey(name, text))
	if !ok {
		return nil, false
	}
	block, ok := v.(*ast.Block)
	return block, ok
}

// Put stores a parsed program and waits for the write to become visible.
func (c *ProgramCache) Put(name, text string, program *ast.Block) {
	if c == nil {
		return
	}
	c.cache.Set(cacheKey(name, text), program, 1)
	c.cache.Wait()
}

// Close releases the cache's background goroutines.
func (c *ProgramCache) Close() {
	if c != nil {
		c.cache.Close()
	}
}

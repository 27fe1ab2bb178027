package fetch

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/signadot/docref/debug"
	"github.com/signadot/docref/pointer"
)

var ErrUnavailable = errors.New("document unavailable")

// Fetcher returns the raw text of a document.
type Fetcher interface {
	Fetch(ctx context.Context, id pointer.Identity) ([]byte, error)
}

// Func adapts a function to a Fetcher.
type Func func(ctx context.Context, id pointer.Identity) ([]byte, error)

func (f Func) Fetch(ctx context.Context, id pointer.Identity) ([]byte, error) {
	return f(ctx, id)
}

func unavailable(id pointer.Identity, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, id, err)
}

// File reads documents with file identities from the local file system.
type File struct{}

func (File) Fetch(ctx context.Context, id pointer.Identity) ([]byte, error) {
	p, ok := id.FilePath()
	if !ok {
		return nil, unavailable(id, errors.New("not a file location"))
	}
	if err := ctx.Err(); err != nil {
		return nil, unavailable(id, err)
	}
	if debug.Fetch() {
		debug.Logf("fetch file %s\n", p)
	}
	d, err := os.ReadFile(p)
	if err != nil {
		return nil, unavailable(id, err)
	}
	return d, nil
}

// Memory serves documents from a map keyed by identity string.
type Memory map[string][]byte

func (m Memory) Fetch(_ context.Context, id pointer.Identity) ([]byte, error) {
	d, ok := m[id.String()]
	if !ok {
		return nil, unavailable(id, os.ErrNotExist)
	}
	return slices.Clone(d), nil
}

// Schemes dispatches to a Fetcher by the URL scheme of the identity.
type Schemes map[string]Fetcher

func (s Schemes) Fetch(ctx context.Context, id pointer.Identity) ([]byte, error) {
	f, ok := s[id.Scheme()]
	if !ok {
		return nil, unavailable(id, fmt.Errorf("no fetcher for scheme %q", id.Scheme()))
	}
	return f.Fetch(ctx, id)
}

// Default returns a fetcher for local files and http(s) URLs.
func Default() Schemes {
	h := &HTTP{}
	return Schemes{
		"file":  File{},
		"http":  h,
		"https": h,
	}
}

// Counting wraps a Fetcher and counts the calls made per identity.
type Counting struct {
	Fetcher Fetcher

	mu     sync.Mutex
	counts map[pointer.Identity]int
}

func NewCounting(f Fetcher) *Counting {
	return &Counting{Fetcher: f, counts: map[pointer.Identity]int{}}
}

func (c *Counting) Fetch(ctx context.Context, id pointer.Identity) ([]byte, error) {
	c.mu.Lock()
	c.counts[id]++
	c.mu.Unlock()
	return c.Fetcher.Fetch(ctx, id)
}

// Count returns how many times id was fetched.
func (c *Counting) Count(id pointer.Identity) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[id]
}

// Total returns the number of fetches made.
func (c *Counting) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

// Counts returns a copy of the per identity counts.
func (c *Counting) Counts() map[pointer.Identity]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.counts)
}

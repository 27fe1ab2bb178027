package codec

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/signadot/docref/format"
)

var ErrUnsupportedEncoding = errors.New("unsupported encoding")

var (
	mu       sync.RWMutex
	registry = map[string]Codec{}
)

func init() {
	for _, f := range format.AllFormats() {
		Register(f.String(), New(f))
	}
	Register("yml", YAML())
	Register("j", JSON())
	Register("y", YAML())
}

// Register makes c available under name, replacing any codec registered
// under that name.
func Register(name string, c Codec) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(name)] = c
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Codec, error) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}
	return c, nil
}

// For returns the registered codec for a format.
func For(f format.Format) (Codec, error) {
	return Lookup(f.String())
}

// Names returns the registered codec names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]string, 0, len(registry))
	for k := range registry {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

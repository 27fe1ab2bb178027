package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/signadot/docref/debug"
	"github.com/signadot/docref/pointer"
)

const (
	DefaultTimeout  = 10 * time.Second
	DefaultMaxBytes = 64 << 20
)

// HTTP fetches http and https documents.  Each fetch is bounded by Timeout.
type HTTP struct {
	Client   *http.Client
	Timeout  time.Duration
	Header   http.Header
	MaxBytes int64
}

func (h *HTTP) Fetch(ctx context.Context, id pointer.Identity) ([]byte, error) {
	timeout := h.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, id.String(), nil)
	if err != nil {
		return nil, unavailable(id, err)
	}
	for k, vs := range h.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	if debug.Fetch() {
		debug.Logf("fetch url %s\n", id)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, unavailable(id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, unavailable(id, fmt.Errorf("gave %d/%s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}
	maxBytes := h.MaxBytes
	if maxBytes == 0 {
		maxBytes = DefaultMaxBytes
	}
	d, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, unavailable(id, err)
	}
	if int64(len(d)) > maxBytes {
		return nil, unavailable(id, fmt.Errorf("document exceeds %d bytes", maxBytes))
	}
	return d, nil
}

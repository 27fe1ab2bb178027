package docref

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/signadot/docref/codec"
	"github.com/signadot/docref/debug"
	"github.com/signadot/docref/fetch"
	"github.com/signadot/docref/pointer"
)

// Session is a registry of the documents involved in resolving references,
// keyed by identity.  Each document is fetched and parsed at most once per
// session, whatever the number of references to it.
//
// Loading documents is safe for concurrent use.  Resolution is serialized
// per session.
type Session struct {
	id       string
	policy   Policy
	fetcher  fetch.Fetcher
	codec    codec.Codec
	out      codec.Codec
	log      *slog.Logger
	marker   string
	prefetch int

	mu    sync.Mutex
	docs  map[pointer.Identity]*Document
	order []*Document
	group singleflight.Group

	// resolveMu serializes resolution passes; visiting is only accessed
	// with it held.
	resolveMu sync.Mutex
	visiting  map[string]bool
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		policy:   Inline(),
		fetcher:  fetch.Default(),
		codec:    codec.Auto(),
		out:      codec.JSON(),
		marker:   DefaultMarkerKey,
		docs:     map[pointer.Identity]*Document{},
		visiting: map[string]bool{},
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.log = s.log.With("session", s.id)
	return s
}

// Open loads the document at loc in a new session.
func Open(ctx context.Context, loc string, opts ...Option) (*Document, error) {
	return NewSession(opts...).Load(ctx, loc)
}

func (s *Session) ID() string { return s.id }

func (s *Session) Policy() Policy { return s.policy }

// Codec returns the codec parsing the documents of the session.
func (s *Session) Codec() codec.Codec { return s.codec }

func (s *Session) OutputCodec() codec.Codec { return s.out }

// Load returns the document at loc, a URL or a file system path, fetching
// it if it is not yet in the session.  Documents returned by Load are the
// roots of resolution: policies see references found in them as Root.
func (s *Session) Load(ctx context.Context, loc string) (*Document, error) {
	id, err := pointer.NewIdentity(loc)
	if err != nil {
		return nil, err
	}
	return s.LoadIdentity(ctx, id)
}

func (s *Session) LoadIdentity(ctx context.Context, id pointer.Identity) (*Document, error) {
	d, err := s.document(ctx, id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	d.root = true
	s.mu.Unlock()
	return d, nil
}

// Lookup returns the document with identity id if the session holds it.
func (s *Session) Lookup(id pointer.Identity) (*Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	return d, ok
}

// Documents returns the documents of the session in the order they were
// loaded.
func (s *Session) Documents() []*Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Document(nil), s.order...)
}

func (s *Session) document(ctx context.Context, id pointer.Identity) (*Document, error) {
	if d, ok := s.Lookup(id); ok {
		return d, nil
	}
	v, err, _ := s.group.Do(id.String(), func() (any, error) {
		if d, ok := s.Lookup(id); ok {
			return d, nil
		}
		d, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.docs[id] = d
		s.order = append(s.order, d)
		s.mu.Unlock()
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Document), nil
}

func (s *Session) load(ctx context.Context, id pointer.Identity) (*Document, error) {
	raw, err := s.fetcher.Fetch(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrDocumentUnavailable) {
			err = fmt.Errorf("%w: %s: %w", ErrDocumentUnavailable, id, err)
		}
		return nil, err
	}
	if debug.Fetch() {
		debug.Logf("fetched %s (%d bytes)\n", id, len(raw))
	}
	t, err := s.codec.Parse(raw, id.String())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	s.log.Debug("loaded document", "doc", id.String(), "bytes", len(raw))
	return &Document{sess: s, id: id, original: raw, tree: t}, nil
}

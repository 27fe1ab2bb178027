package docref

import (
	"log/slog"

	"github.com/signadot/docref/codec"
	"github.com/signadot/docref/fetch"
)

const DefaultMarkerKey = "$ref"

type Option func(*Session)

// WithPolicy sets the policy deciding which references are resolved and how
// they are spliced.  The default is Inline().
func WithPolicy(p Policy) Option {
	return func(s *Session) { s.policy = p }
}

// WithFetcher sets how documents are retrieved.  The default is
// fetch.Default().
func WithFetcher(f fetch.Fetcher) Option {
	return func(s *Session) { s.fetcher = f }
}

// WithCodec sets the codec parsing the documents of the session.  The
// default is codec.Auto().
func WithCodec(c codec.Codec) Option {
	return func(s *Session) { s.codec = c }
}

// WithOutputCodec sets the codec used by Document.Text.  The default is JSON.
func WithOutputCodec(c codec.Codec) Option {
	return func(s *Session) { s.out = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithMarkerKey sets the name of reference properties.
func WithMarkerKey(k string) Option {
	return func(s *Session) { s.marker = k }
}

// WithPrefetch enables fetching the external documents reachable from a
// document concurrently, with at most n fetches in flight, before the
// document is resolved.
func WithPrefetch(n int) Option {
	return func(s *Session) { s.prefetch = n }
}

package pointer

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Identity is the normalized absolute location of a document together with
// the location of its containing folder.  Identities are comparable and two
// identities are equal iff they name the same normalized location, so they
// serve directly as map keys.
type Identity struct {
	uri    string
	folder string
}

// NewIdentity returns the identity of the document at loc, which is either
// an absolute URL (file, http, https, ...) or a file system path.  Relative
// file system paths are made absolute against the working directory.
func NewIdentity(loc string) (Identity, error) {
	if loc == "" {
		return Identity{}, fmt.Errorf("%w: empty location", ErrLocation)
	}
	if u, err := url.Parse(loc); err == nil && isURL(u) {
		return fromURL(u)
	}
	abs, err := filepath.Abs(loc)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %q: %w", ErrLocation, loc, err)
	}
	return fromURL(FileURL(abs))
}

// MustIdentity is like NewIdentity but panics on error.
func MustIdentity(loc string) Identity {
	id, err := NewIdentity(loc)
	if err != nil {
		panic(err)
	}
	return id
}

// FileURL returns the file URL of the absolute file system path p.
func FileURL(p string) *url.URL {
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(p)}
}

// isURL distinguishes URLs from file paths; single letter schemes are
// windows drive letters.
func isURL(u *url.URL) bool {
	return len(u.Scheme) > 1
}

func fromURL(u *url.URL) (Identity, error) {
	n := normalize(u)
	folder := n.ResolveReference(&url.URL{Path: "./"})
	return Identity{uri: n.String(), folder: folder.String()}, nil
}

func normalize(u *url.URL) *url.URL {
	n := *u
	n.Scheme = strings.ToLower(n.Scheme)
	n.Host = strings.ToLower(n.Host)
	switch {
	case n.Scheme == "http" && strings.HasSuffix(n.Host, ":80"):
		n.Host = strings.TrimSuffix(n.Host, ":80")
	case n.Scheme == "https" && strings.HasSuffix(n.Host, ":443"):
		n.Host = strings.TrimSuffix(n.Host, ":443")
	}
	n.Fragment = ""
	n.RawFragment = ""
	if n.Path != "" {
		n.Path = path.Clean(n.Path)
		n.RawPath = ""
	}
	if n.Scheme == "file" && n.Host == "localhost" {
		n.Host = ""
	}
	return &n
}

// Resolve returns the identity of loc interpreted relative to the folder of
// id.  Absolute URLs are returned as is, normalized.
func (id Identity) Resolve(loc string) (Identity, error) {
	if id.IsZero() {
		return NewIdentity(loc)
	}
	ref, err := url.Parse(loc)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %q: %w", ErrLocation, loc, err)
	}
	if isURL(ref) {
		return fromURL(ref)
	}
	base, err := url.Parse(id.folder)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %q: %w", ErrLocation, id.folder, err)
	}
	return fromURL(base.ResolveReference(ref))
}

func (id Identity) String() string { return id.uri }

// Folder returns the location of the folder containing the document, with a
// trailing slash.
func (id Identity) Folder() string { return id.folder }

func (id Identity) IsZero() bool { return id.uri == "" }

// URL returns the identity as a parsed URL.
func (id Identity) URL() *url.URL {
	u, err := url.Parse(id.uri)
	if err != nil {
		return &url.URL{}
	}
	return u
}

func (id Identity) Scheme() string {
	return id.URL().Scheme
}

// FilePath returns the file system path of a file identity.
func (id Identity) FilePath() (string, bool) {
	u := id.URL()
	if u.Scheme != "file" {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}

// Rel returns a location for target relative to the folder of id, or the
// absolute location of target when the two do not share scheme and host.
func (id Identity) Rel(target Identity) string {
	if id == target {
		return path.Base(id.URL().Path)
	}
	from, to := id.URL(), target.URL()
	if from.Scheme != to.Scheme || from.Host != to.Host || to.RawQuery != "" {
		return target.uri
	}
	rel := relPath(path.Dir(from.Path), to.Path)
	return (&url.URL{Path: rel}).String()
}

func relPath(fromDir, to string) string {
	fromParts := splitPath(fromDir)
	toParts := splitPath(to)
	i := 0
	for i < len(fromParts) && i < len(toParts)-1 && fromParts[i] == toParts[i] {
		i++
	}
	var b strings.Builder
	for range fromParts[i:] {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(toParts[i:], "/"))
	return b.String()
}

func splitPath(p string) []string {
	var res []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}

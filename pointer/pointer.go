package pointer

import (
	"fmt"
	"net/url"
	"strings"
)

// Pointer is a parsed reference: a target document and a path of segments
// within it.
type Pointer struct {
	// Ref is the reference string as written.
	Ref string
	// Base is the document the reference was read from.
	Base Identity
	// Document is the absolute identity of the target document.
	Document Identity
	// Nested is set when the reference has no document part and so
	// targets Base itself.
	Nested bool
	// Path holds the segments leading from the target document's root to
	// the target node.  It is empty for the root.
	Path []string
}

// Parse parses ref, of the form <document-part>#<in-document-path>, found in
// the document base.
//
// An empty document part makes the pointer nested in base.  The path is
// split on "/" with empty segments dropped, so "#//a//b" addresses the same
// node as "#/a/b".  Segments are percent-decoded and "~1" and "~0" stand for
// "/" and "~".
func Parse(base Identity, ref string) (Pointer, error) {
	if ref == "" {
		return Pointer{}, fmt.Errorf("%w: empty reference", ErrInvalid)
	}
	docPart, frag, _ := strings.Cut(ref, "#")
	p := Pointer{Ref: ref, Base: base, Path: SplitFragment(frag)}
	if docPart == "" {
		p.Nested = true
		p.Document = base
		return p, nil
	}
	doc, err := base.Resolve(docPart)
	if err != nil {
		return Pointer{}, fmt.Errorf("%w: %q: %w", ErrInvalid, ref, err)
	}
	p.Document = doc
	return p, nil
}

// SplitFragment splits an in-document path into its non-empty segments.
func SplitFragment(frag string) []string {
	var res []string
	for _, s := range strings.Split(frag, "/") {
		if s == "" {
			continue
		}
		res = append(res, unescape(s))
	}
	return res
}

func unescape(s string) string {
	if u, err := url.PathUnescape(s); err == nil {
		s = u
	}
	if strings.Contains(s, "~") {
		s = strings.ReplaceAll(s, "~1", "/")
		s = strings.ReplaceAll(s, "~0", "~")
	}
	return s
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// Fragment renders segments as an in-document path, "/a/b".
func Fragment(segs []string) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteByte('/')
		b.WriteString(escape(s))
	}
	return b.String()
}

// Fragment returns the in-document path of p.
func (p Pointer) Fragment() string {
	return Fragment(p.Path)
}

// String returns the absolute form of p.
func (p Pointer) String() string {
	return p.Document.String() + "#" + p.Fragment()
}

// Key identifies the target of p independently of where p was written.
func (p Pointer) Key() string {
	return p.String()
}

// RelativeTo renders p as a reference string valid in the document host.
func (p Pointer) RelativeTo(host Identity) string {
	frag := p.Fragment()
	if p.Document == host {
		return "#" + frag
	}
	loc := host.Rel(p.Document)
	if frag == "" {
		return loc
	}
	return loc + "#" + frag
}

// Local returns a nested pointer to segs within doc.
func Local(doc Identity, segs ...string) Pointer {
	p := Pointer{Base: doc, Document: doc, Nested: true, Path: segs}
	p.Ref = "#" + p.Fragment()
	return p
}

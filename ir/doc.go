// Package ir provides the in-memory tree representation of JSON and YAML
// style documents.
//
// # Overview
//
// A document is an ir.Tree: an arena of ir.Node values addressed by ir.ID.
// Nodes are one of
//
//   - Atomic types: null, boolean, number, string
//   - Composite types: object (ordered key-value pairs), array (ordered list)
//
// and are created unattached by the New* constructors, then linked into the
// tree with SetRoot, Set, Append or Replace.
//
//	t := ir.New()
//	obj := t.NewObject()
//	t.Set(obj, "kind", t.NewString("widget"))
//	t.SetRoot(obj)
//
// # Identity and Detachment
//
// IDs are stable: replacing a child swaps the ID held in the parent's slot
// and never renumbers other nodes.  The replaced node and all its
// descendants are marked detached, which lets code holding IDs collected
// before a mutation ask whether they still belong to the document:
//
//	if t.Detached(id) {
//		// id was subsumed by an earlier replacement
//	}
//
// Detached nodes stay in the arena; they are never reused.
//
// # Structure Constraints
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i].
// Keys occur once.  Parent, ParentIndex and ParentField describe where a
// node sits in its container and are maintained by the mutators; callers
// should not set them directly.
//
// Numbers read from text keep their source text under Number, along with
// Int64 or Float64 when the text fits.
//
// # Conversions
//
// AsString, AsInt, AsFloat, AsBool, AsArray and AsObject convert nodes to
// Go values and fail with a *TypeError (matching ErrWrongType) on a type
// mismatch.  ToAny and FromAny convert whole subtrees to and from plain Go
// values.
//
// # Copying
//
// Copy deep copies a subtree, possibly from another tree, into a tree's
// arena.  Copies share nothing with their source.
//
// # Thread Safety
//
// Trees are not safe for concurrent mutation.  Concurrent readers are safe
// once no goroutine mutates the tree.
package ir

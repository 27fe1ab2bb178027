// Package pointer parses reference strings, such as the values of "$ref"
// properties in OpenAPI and JSON Schema documents, into a target document
// identity and an in-document path.
//
//	base := pointer.MustIdentity("/specs/main.json")
//	p, err := pointer.Parse(base, "common.json#/components/Widget")
//	// p.Document is file:///specs/common.json
//	// p.Path is ["components", "Widget"]
//
// Identities are normalized absolute URLs; file system paths are turned
// into file URLs.  Relative document parts are resolved against the folder
// of the document the reference appears in.
package pointer

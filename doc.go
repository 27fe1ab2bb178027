// Package docref resolves "$ref" references in JSON and YAML documents.
//
// A reference is an object with a string "$ref" property of the form
// <document>#<path>, such as
//
//	{"$ref": "common/types.yaml#/definitions/Address"}
//
// where the document part is resolved relative to the folder of the
// document containing the reference and an empty document part designates
// that document itself.  Resolution replaces each reference object by a
// copy of its target, recursively, across any number of documents:
//
//	d, err := docref.Open(ctx, "api/openapi.yaml")
//	if err != nil {
//		return err
//	}
//	out, err := d.Text(ctx)
//
// Documents are fetched and parsed once per Session.  A Policy decides
// which references get resolved, what happens on cycles and how each
// replacement is put in place; see Inline, ExternalOnly, Bundle and When.
package docref

// Package encode writes ir trees as JSON or YAML text.
//
//	err := encode.Encode(tree, os.Stdout, encode.EncodeFormat(format.YAMLFormat))
//
// Object fields are written in tree order.  Colors, compact ("wire")
// output and indentation are chosen with EncodeOption values.
//
// # Related Packages
//
//   - github.com/signadot/docref/parse - Parse text to IR
//   - github.com/signadot/docref/ir - The tree representation
package encode

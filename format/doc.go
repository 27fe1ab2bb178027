// Package format names the text encodings documents may be read from and
// written to.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	if f.IsJSON() {
//		// ...
//	}
//
// # Related Packages
//
//   - github.com/signadot/docref/parse - Parse text to IR
//   - github.com/signadot/docref/encode - Encode IR to text
package format

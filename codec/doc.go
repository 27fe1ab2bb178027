// Package codec provides the conversions between document text and ir
// trees used when loading and emitting documents.
//
// Codecs are selected by the caller, either directly (codec.JSON(),
// codec.YAML()) or by name through the registration table:
//
//	c, err := codec.Lookup("yaml")
//	if errors.Is(err, codec.ErrUnsupportedEncoding) {
//		// ...
//	}
//
// The table is filled at program start for the built in formats; programs
// may Register further codecs under their own names.
package codec

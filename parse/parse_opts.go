package parse

import "github.com/signadot/docref/format"

type parseOpts struct {
	format format.Format
	source string
	strict bool
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParseSource names the document being parsed in error messages.
func ParseSource(name string) ParseOption {
	return func(o *parseOpts) { o.source = name }
}

// StrictJSON rejects comments and trailing commas in JSON input.
func StrictJSON(v bool) ParseOption {
	return func(o *parseOpts) { o.strict = v }
}

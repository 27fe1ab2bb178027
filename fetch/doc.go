// Package fetch retrieves the raw text of documents by identity.
//
// Default returns a Fetcher for local files and http(s) URLs.  Fetch
// failures wrap ErrUnavailable.  Fetchers perform no retries and no
// authentication beyond fixed request headers.
package fetch

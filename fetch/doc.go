// Package fetch retrieves remote marker and camera assets.
//
// The ingestion pipeline consumes the Fetcher interface; HTTPFetcher is the
// production implementation. Responses are handled strictly as binary data.
// A failed fetch reports the transport status through the structured errors
// package and is never retried above the transport layer.
package fetch

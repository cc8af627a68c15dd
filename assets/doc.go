// Package assets converts external byte sources into native-module files and
// native handles.
//
// All four asset kinds share one sub-protocol: acquire bytes, write them into
// the module's storage at a counter-derived path, then invoke the matching
// native registration entry point. The counter scheme guarantees no two
// registrations of the same kind ever share a path, so an in-flight load can
// never clobber a live asset.
//
// Multi-marker configurations pull in dependency pattern files; those are
// fetched strictly in list order, each stored before the next fetch starts,
// and all of them before the primary file is registered. NFT triplets have no
// ordering requirement between their three parts and are fetched
// concurrently, joining before registration.
//
// Failures propagate to the caller unchanged and nothing is retried here;
// retry policy belongs to the caller or to the fetcher's transport.
package assets

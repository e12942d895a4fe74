// Package filestore persists typed collections as pretty-printed JSON arrays,
// one document per file.
//
// # Overview
//
// Every entity kind in spacebook lives in its own shard file. Load and Save
// operate on a whole shard. Update is the read-modify-write primitive: it
// holds the shard's lock (see Locks) for the full load, mutate and save cycle,
// so concurrent writers to the same path never lose each other's changes.
//
// # Failure modes
//
//   - absent file: empty collection; the file is seeded with "[]"
//   - blank file: empty collection
//   - malformed JSON: empty collection and a *ParseError (errors.Is ErrorParse)
//   - any other I/O failure: an error wrapping common.ErrorIO
//
// Saves go through a temp file in the same directory followed by a rename,
// so a failed write never leaves a truncated shard behind.
package filestore

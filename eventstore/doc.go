// Package eventstore defines the storage-agnostic surface of the event-sourced
// substrate: the Filter describing one dynamic event stream (here: all events
// of one book's inventory), the StorableEvent DTO, and the shared error values.
//
// The inventory features treat this package as given infrastructure: they
// Query a stream, decide, and Append with the expected max sequence number.
// A conflicting writer makes Append fail with ErrConcurrencyConflict, which
// the shell retries - this is what serializes all writers of one book.
package eventstore

// Package bindpath parses and manipulates binding paths.
//
// A binding path is a sequence of segments separated by a separator
// character (a dot by default). Segments wrapped in brackets are indexed
// segments; they may contain separators and nested brackets:
//
//	server.hosts[0].name
//	log[org.example.core].level
//
// Parsing never fails. Unbalanced brackets produce a segment flagged as
// Corrupted that still carries well-defined offsets, so every derived
// operation (Append, Slice, ToOriginal) stays total.
//
// Paths are immutable values: every operation returns a new Path.
package bindpath

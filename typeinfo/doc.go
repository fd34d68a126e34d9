// Package typeinfo describes Go types for the binder.
//
// A Descriptor classifies a reflect.Type into one binding shape (scalar,
// array, list, set, map, record, bean or pointer) and exposes what the
// binder needs to populate it: element and key types, bean properties
// with their accessors, and the canonical constructor of record types.
//
// Descriptors are cached per type and safe for concurrent use.
// Record registration is a setup-time operation.
package typeinfo

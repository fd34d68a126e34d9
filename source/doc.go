// Package source provides read-only navigation over the data a value is
// bound from.
//
// A Source wraps exactly one backing value and is navigated by name or by
// index. Navigation never returns a nil Source: a missing key, property or
// index yields the Null sentinel. The sentinel is a hard stop: every
// accessor except IsNull fails with ErrNullSource, so callers check IsNull
// before going further. Get does that for whole paths.
//
// Realizations:
//   - Of wraps Go maps, slices, arrays, container/list values and scalars
//   - Bean wraps structs and reads their properties
//   - Node wraps a YAML (or JSON) document tree
//   - Flat resolves whole dotted keys through a KeyResolver
//     (MapResolver, EnvResolver, SQLResolver)
package source

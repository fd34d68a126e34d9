// Package binder materializes typed Go values from a source.Source.
//
// A Binder walks a binding path over the source and delegates to the
// strategy registered for the target type. Strategies recurse back through
// the Session they receive:
//
//	b := binder.New()
//	src, _ := source.LoadFile("config.yaml")
//	port, ok, err := binder.Get[int](b, "server.hosts[0].port", src)
//
// A missing key, index or property is never an error: it yields an absent
// Result. Anything else that goes wrong unwinds the whole bind.
//
// The Registry must be fully set up before a Binder is used concurrently.
package binder

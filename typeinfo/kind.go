package typeinfo

import (
	"container/list"
	"reflect"

	"struct-binder/primitive"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

type Kind int

const (
	KindUnsupported Kind = iota // functions, channels, unsafe pointers
	KindScalar                  // primitive.IsScalar types and interfaces
	KindArray                   // Go slices and fixed-size arrays
	KindList                    // container/list.List
	KindSet                     // map[K]struct{}
	KindMap                     // any other map
	KindRecord                  // struct with a registered constructor
	KindBean                    // any other struct
	KindPointer                 // pointer to any of the above

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

var listType = reflect.TypeFor[list.List]()

func classify(t reflect.Type) Kind {
	if t == nil {
		return KindUnsupported
	}

	switch t.Kind() {
	case reflect.Pointer:
		return KindPointer
	case reflect.Interface:
		return KindScalar
	}

	if primitive.IsScalar(t) {
		return KindScalar
	}

	switch t.Kind() {
	default:
		return KindUnsupported

	case reflect.Slice, reflect.Array:
		return KindArray

	case reflect.Map:
		if isEmptyStruct(t.Elem()) {
			return KindSet
		}

		return KindMap

	case reflect.Struct:
		if t == listType {
			return KindList
		}

		if _, ok := lookupRecord(t); ok {
			return KindRecord
		}

		return KindBean
	}
}

func isEmptyStruct(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.NumField() == 0
}

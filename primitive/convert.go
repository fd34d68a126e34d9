package primitive

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
)

var ErrNotConvertible = errors.New("value is not convertible")

// ConversionError describes a failed or forbidden scalar conversion.
type ConversionError struct {
	From, To reflect.Type
	Err      error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %v to %v: %v", e.From, e.To, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Convert converts src into a value of type dst.
//
// Values assignable to dst are returned unchanged whatever allowed says.
// Any other pair is converted only when one of the allowed categories
// contains it; CategoryNone therefore means strict pass-through.
// The result is always assignable to dst.
func Convert(src reflect.Value, dst reflect.Type, allowed CategoryEnum) (reflect.Value, error) {
	if !src.IsValid() {
		return reflect.Value{}, &ConversionError{To: dst, Err: ErrNotConvertible}
	}

	if src.Type().AssignableTo(dst) {
		return src, nil
	}

	pair := ConversionPair{FromReflectType(src.Type()), FromReflectType(dst)}
	if _, ok := allowedSet(allowed)[pair]; !ok {
		return reflect.Value{}, &ConversionError{From: src.Type(), To: dst, Err: ErrNotConvertible}
	}

	conv, ok := converters[pair]
	if !ok {
		return reflect.Value{}, &ConversionError{From: src.Type(), To: dst, Err: ErrNotConvertible}
	}

	out, err := conv(src, dst)
	if err != nil {
		return reflect.Value{}, &ConversionError{From: src.Type(), To: dst, Err: err}
	}

	return out, nil
}

// CanConvert reports whether the pair of types is covered by allowed.
func CanConvert(src, dst reflect.Type, allowed CategoryEnum) bool {
	if src == nil || dst == nil {
		return false
	}

	if src.AssignableTo(dst) {
		return true
	}

	_, ok := allowedSet(allowed)[ConversionPair{FromReflectType(src), FromReflectType(dst)}]

	return ok
}

func allowedSet(allowed CategoryEnum) map[ConversionPair]struct{} {
	res := map[ConversionPair]struct{}{}

	for category := CategoryEnum(1); category&CategoryAll > 0; category <<= 1 {
		if allowed&category == 0 {
			continue
		}

		maps.Copy(res, conversionPairs[category])
	}

	return res
}

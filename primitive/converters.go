package primitive

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type convertFunc func(src reflect.Value, dst reflect.Type) (reflect.Value, error)

var (
	conversionPairs = map[CategoryEnum]map[ConversionPair]struct{}{}
	converters      = map[ConversionPair]convertFunc{}
)

// register adds the pair from -> to to category, converted by fn.
// Every pair belongs to exactly one category.
func register(category CategoryEnum, from, to KindEnum, fn convertFunc) {
	pairs, ok := conversionPairs[category]
	if !ok {
		pairs = map[ConversionPair]struct{}{}
		conversionPairs[category] = pairs
	}

	pair := ConversionPair{from, to}
	pairs[pair] = struct{}{}
	converters[pair] = fn
}

func kinds(match func(KindEnum) bool) []KindEnum {
	var res []KindEnum
	for k := KindEnum(1); int(k) < KindTotal; k++ {
		if match(k) {
			res = append(res, k)
		}
	}

	return res
}

func init() {
	safe := safeNumberConversionPairs()

	for _, from := range kinds(KindEnum.IsNumber) {
		for _, to := range kinds(KindEnum.IsNumber) {
			if _, ok := safe[ConversionPair{from, to}]; ok {
				register(CategorySafeNumber, from, to, convertNumber)
			} else {
				register(CategoryUnsafeNumber, from, to, convertNumber)
			}
		}

		register(CategoryTextNumber, from, KindString, formatNumber)
		register(CategoryTextNumber, KindString, from, parseNumber(from))
	}

	for _, n := range kinds(KindEnum.IsInteger) {
		register(CategoryNumericBool, n, KindBool, integerToBool)
		register(CategoryNumericBool, KindBool, n, boolToInteger)

		// uint64 does not fit Unix seconds nor nanoseconds
		if n == KindUint64 {
			continue
		}

		register(CategoryTimestamp, n, KindTime, unixToTime)
		register(CategoryTimestamp, KindTime, n, timeToUnix)
		register(CategoryNanoseconds, n, KindDuration, nanosecondsToDuration)
		register(CategoryNanoseconds, KindDuration, n, durationToNanoseconds)
	}

	for _, f := range kinds(KindEnum.IsFloat) {
		register(CategorySeconds, f, KindDuration, secondsToDuration)
		register(CategorySeconds, KindDuration, f, durationToSeconds)
	}

	register(CategoryTextualBool, KindString, KindBool, parseBool)
	register(CategoryTextualBool, KindBool, KindString, formatBool)

	register(CategoryDatetime, KindString, KindTime, parseTime)
	register(CategoryDatetime, KindTime, KindString, formatTime)

	register(CategoryDuration, KindString, KindDuration, parseDuration)
	register(CategoryDuration, KindDuration, KindString, formatDuration)

	register(CategoryEnumString, KindString, KindPrimitiveEnum, toEnum)
	register(CategoryEnumString, KindPrimitiveEnum, KindPrimitiveEnum, toEnum)
	register(CategoryEnumString, KindPrimitiveEnum, KindString, formatEnum)

	register(CategoryUUID, KindString, KindUUID, parseUUID)
	register(CategoryUUID, KindUUID, KindString, formatUUID)

	register(CategoryText, KindString, KindText, unmarshalText)
	register(CategoryText, KindText, KindString, marshalText)
}

func convertNumber(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	return src.Convert(dst), nil
}

func formatNumber(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	var s string

	switch kind := FromReflectType(src.Type()); {
	case kind.IsSigned():
		s = strconv.FormatInt(src.Int(), 10)
	case kind.IsUnsigned():
		s = strconv.FormatUint(src.Uint(), 10)
	default:
		s = strconv.FormatFloat(src.Float(), 'f', -1, kind.Bits())
	}

	return reflect.ValueOf(s).Convert(dst), nil
}

func parseNumber(kind KindEnum) convertFunc {
	return func(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
		text := strings.TrimSpace(src.String())

		switch {
		case kind.IsSigned():
			n, err := strconv.ParseInt(text, 10, kind.Bits())
			if err != nil {
				return reflect.Value{}, err
			}

			return reflect.ValueOf(n).Convert(dst), nil
		case kind.IsUnsigned():
			n, err := strconv.ParseUint(text, 10, kind.Bits())
			if err != nil {
				return reflect.Value{}, err
			}

			return reflect.ValueOf(n).Convert(dst), nil
		default:
			f, err := strconv.ParseFloat(text, kind.Bits())
			if err != nil {
				return reflect.Value{}, err
			}

			return reflect.ValueOf(f).Convert(dst), nil
		}
	}
}

// integerToBool accepts 0 and 1 only.
func integerToBool(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	switch integerOf(src) {
	case 0:
		return reflect.ValueOf(false).Convert(dst), nil
	case 1:
		return reflect.ValueOf(true).Convert(dst), nil
	default:
		return reflect.Value{}, fmt.Errorf("only numbers 0 and 1 are allowed for bool, got: %v", src)
	}
}

func boolToInteger(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	n := 0
	if src.Bool() {
		n = 1
	}

	return reflect.ValueOf(n).Convert(dst), nil
}

func parseBool(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	switch strings.ToLower(strings.TrimSpace(src.String())) {
	case "true", "yes", "on":
		return reflect.ValueOf(true).Convert(dst), nil
	case "false", "no", "off":
		return reflect.ValueOf(false).Convert(dst), nil
	default:
		return reflect.Value{}, fmt.Errorf("only strings true/false, yes/no, on/off are allowed for bool, got: %s", src.String())
	}
}

func formatBool(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	return reflect.ValueOf(strconv.FormatBool(src.Bool())).Convert(dst), nil
}

// parseTime reads RFC 3339 text with optional fractional seconds.
func parseTime(src reflect.Value, _ reflect.Type) (reflect.Value, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(src.String()))
	if err != nil {
		return reflect.Value{}, err
	}

	return reflect.ValueOf(t), nil
}

func formatTime(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	t := src.Interface().(time.Time)
	return reflect.ValueOf(t.Format(time.RFC3339Nano)).Convert(dst), nil
}

func unixToTime(src reflect.Value, _ reflect.Type) (reflect.Value, error) {
	return reflect.ValueOf(time.Unix(integerOf(src), 0)), nil
}

func timeToUnix(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	t := src.Interface().(time.Time)
	return reflect.ValueOf(t.Unix()).Convert(dst), nil
}

func parseDuration(src reflect.Value, _ reflect.Type) (reflect.Value, error) {
	d, err := time.ParseDuration(strings.TrimSpace(src.String()))
	if err != nil {
		return reflect.Value{}, err
	}

	return reflect.ValueOf(d), nil
}

func formatDuration(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	return reflect.ValueOf(time.Duration(src.Int()).String()).Convert(dst), nil
}

func nanosecondsToDuration(src reflect.Value, _ reflect.Type) (reflect.Value, error) {
	return reflect.ValueOf(time.Duration(integerOf(src))), nil
}

func durationToNanoseconds(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	return reflect.ValueOf(src.Int()).Convert(dst), nil
}

func secondsToDuration(src reflect.Value, _ reflect.Type) (reflect.Value, error) {
	return reflect.ValueOf(time.Duration(src.Float() * float64(time.Second))), nil
}

func durationToSeconds(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	return reflect.ValueOf(time.Duration(src.Int()).Seconds()).Convert(dst), nil
}

// toEnum converts a string or an enum into an enum type.
// String-kinded enums are converted directly and validated with IsValid
// when the target provides it; other enums must decode themselves from text.
func toEnum(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	var out reflect.Value

	switch {
	case src.Kind() == dst.Kind() && src.Type().ConvertibleTo(dst):
		out = src.Convert(dst)
	case dst.Kind() == reflect.String:
		out = reflect.ValueOf(textOf(src)).Convert(dst)
	case reflect.PointerTo(dst).Implements(textUnmarshalerType):
		return unmarshalText(reflect.ValueOf(textOf(src)), dst)
	default:
		return reflect.Value{}, fmt.Errorf("%v cannot be decoded from %v", dst, src.Type())
	}

	if v, ok := out.Interface().(interface{ IsValid() bool }); ok && !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("%v is not a valid value for %v", src, dst)
	}

	return out, nil
}

func formatEnum(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	return reflect.ValueOf(textOf(src)).Convert(dst), nil
}

func parseUUID(src reflect.Value, _ reflect.Type) (reflect.Value, error) {
	id, err := uuid.Parse(strings.TrimSpace(src.String()))
	if err != nil {
		return reflect.Value{}, err
	}

	return reflect.ValueOf(id), nil
}

func formatUUID(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	return reflect.ValueOf(src.Interface().(uuid.UUID).String()).Convert(dst), nil
}

func unmarshalText(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	ptr := reflect.New(dst)

	u, ok := ptr.Interface().(encoding.TextUnmarshaler)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%v does not implement encoding.TextUnmarshaler", dst)
	}

	if err := u.UnmarshalText([]byte(src.String())); err != nil {
		return reflect.Value{}, err
	}

	return ptr.Elem(), nil
}

func marshalText(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	m, ok := src.Interface().(encoding.TextMarshaler)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%v does not implement encoding.TextMarshaler", src.Type())
	}

	text, err := m.MarshalText()
	if err != nil {
		return reflect.Value{}, err
	}

	return reflect.ValueOf(string(text)).Convert(dst), nil
}

// textOf renders an enum through its String method when present.
func textOf(src reflect.Value) string {
	if s, ok := src.Interface().(fmt.Stringer); ok {
		return s.String()
	}

	if src.Kind() == reflect.String {
		return src.String()
	}

	return fmt.Sprint(src.Interface())
}

func integerOf(src reflect.Value) int64 {
	if FromReflectType(src.Type()).IsUnsigned() {
		return int64(src.Uint())
	}

	return src.Int()
}

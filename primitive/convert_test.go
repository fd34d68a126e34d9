package primitive_test

import (
	"errors"
	"net/netip"
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"struct-binder/primitive"
)

type Level string

func (l Level) IsValid() bool {
	switch l {
	case "debug", "info", "warn":
		return true
	default:
		return false
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("6f1c7c8e-2b7a-4b8e-9a51-5d1c0f6c2a10")

	tests := []struct {
		name    string
		src     any
		dst     reflect.Type
		allowed primitive.CategoryEnum
		want    any
	}{
		{"assignable passes through", 42, reflect.TypeOf(0), primitive.CategoryNone, 42},
		{"any target passes through", "x", reflect.TypeFor[any](), primitive.CategoryNone, "x"},
		{"safe widening", int8(7), reflect.TypeOf(int64(0)), primitive.CategorySafeNumber, int64(7)},
		{"unsafe narrowing", 3.9, reflect.TypeOf(0), primitive.CategoryUnsafeNumber, 3},
		{"text to number", " 12 ", reflect.TypeOf(uint16(0)), primitive.CategoryTextNumber, uint16(12)},
		{"number to text", 2.5, reflect.TypeOf(""), primitive.CategoryTextNumber, "2.5"},
		{"numeric bool", 1, reflect.TypeOf(false), primitive.CategoryNumericBool, true},
		{"textual bool", "off", reflect.TypeOf(false), primitive.CategoryTextualBool, false},
		{"duration", "1m30s", reflect.TypeOf(time.Duration(0)), primitive.CategoryDuration, 90 * time.Second},
		{"seconds", 1.5, reflect.TypeOf(time.Duration(0)), primitive.CategorySeconds, 1500 * time.Millisecond},
		{"nanoseconds", int64(10), reflect.TypeOf(time.Duration(0)), primitive.CategoryNanoseconds, time.Duration(10)},
		{"timestamp", 0, reflect.TypeOf(time.Time{}), primitive.CategoryTimestamp, time.Unix(0, 0)},
		{"enum from string", "info", reflect.TypeOf(Level("")), primitive.CategoryEnumString, Level("info")},
		{"uuid", id.String(), reflect.TypeOf(uuid.UUID{}), primitive.CategoryUUID, id},
		{"text unmarshaler", "10.0.0.1", reflect.TypeOf(netip.Addr{}), primitive.CategoryText, netip.MustParseAddr("10.0.0.1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := primitive.Convert(reflect.ValueOf(tt.src), tt.dst, tt.allowed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Interface(), spew.Sdump(got.Interface()))
		})
	}
}

func TestConvert_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     any
		dst     reflect.Type
		allowed primitive.CategoryEnum
	}{
		{"strict by default", "12", reflect.TypeOf(0), primitive.CategoryNone},
		{"category not allowed", "12", reflect.TypeOf(0), primitive.CategoryTextualBool},
		{"bad number text", "twelve", reflect.TypeOf(0), primitive.CategoryTextNumber},
		{"numeric bool out of range", 2, reflect.TypeOf(false), primitive.CategoryNumericBool},
		{"invalid enum", "trace", reflect.TypeOf(Level("")), primitive.CategoryEnumString},
		{"bad uuid", "not-a-uuid", reflect.TypeOf(uuid.UUID{}), primitive.CategoryUUID},
		{"struct target", 1, reflect.TypeOf(struct{}{}), primitive.CategoryAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := primitive.Convert(reflect.ValueOf(tt.src), tt.dst, tt.allowed)
			require.Error(t, err)

			var convErr *primitive.ConversionError
			require.ErrorAs(t, err, &convErr)
			assert.Equal(t, tt.dst, convErr.To)
		})
	}

	_, err := primitive.Convert(reflect.Value{}, reflect.TypeOf(0), primitive.CategoryAll)
	assert.True(t, errors.Is(err, primitive.ErrNotConvertible))
}

func TestCanConvert(t *testing.T) {
	t.Parallel()

	assert.True(t, primitive.CanConvert(reflect.TypeOf(0), reflect.TypeOf(0), primitive.CategoryNone))
	assert.False(t, primitive.CanConvert(reflect.TypeOf(""), reflect.TypeOf(0), primitive.CategoryNone))
	assert.True(t, primitive.CanConvert(reflect.TypeOf(""), reflect.TypeOf(0), primitive.CategoryTextNumber))
	assert.False(t, primitive.CanConvert(nil, reflect.TypeOf(0), primitive.CategoryAll))
}

func TestParseCategories(t *testing.T) {
	t.Parallel()

	got, err := primitive.ParseCategories("text_number", "duration")
	require.NoError(t, err)
	assert.Equal(t, primitive.CategoryTextNumber|primitive.CategoryDuration, got)

	got, err = primitive.ParseCategories("all")
	require.NoError(t, err)
	assert.Equal(t, primitive.CategoryEnum(primitive.CategoryAll), got)

	got, err = primitive.ParseCategories()
	require.NoError(t, err)
	assert.Equal(t, primitive.CategoryEnum(primitive.CategoryNone), got)

	_, err = primitive.ParseCategories("bogus")
	assert.Error(t, err)
}

package config

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoZeroFields(t *testing.T) {
	for _, field := range zeroFields(reflect.ValueOf(*Default()), "Config", false) {
		assert.Fail(t, "zero-value field", field)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	require.False(t, cfg.Table.CaseInsensitive)
	require.False(t, cfg.Invocation.Caching)
	require.True(t, cfg.Dispatch.ReflectFallback)
	require.Greater(t, cfg.Table.MaxKeyLength, 0)
}

func TestDefaultIsFresh(t *testing.T) {
	a, b := Default(), Default()
	a.Table.MaxKeyLength = 1
	require.NotEqual(t, a.Table.MaxKeyLength, b.Table.MaxKeyLength)
}

// zeroFields walks nested structs and reports every leaf field left at its zero value,
// except those tagged `test:"nullable"`. Each entry reads as "Config.Table.Field (type)".
func zeroFields(value reflect.Value, path string, nullable bool) (fields []string) {
	if value.Kind() != reflect.Struct {
		if value.IsZero() && !nullable {
			return []string{fmt.Sprintf("%s (%s)", path, value.Type())}
		}

		return nil
	}

	typ := value.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		fields = append(fields, zeroFields(
			value.Field(i), path+"."+field.Name, field.Tag.Get("test") == "nullable",
		)...)
	}

	return fields
}

func TestZeroFieldsReport(t *testing.T) {
	cfg := Default()
	cfg.Table.MaxKeyLength = 0
	cfg.Dispatch.LoggerName = ""
	cfg.Table.CaseInsensitive = false

	require.Equal(t, []string{
		"Config.Table.MaxKeyLength (int)",
		"Config.Dispatch.LoggerName (string)",
	}, zeroFields(reflect.ValueOf(*cfg), "Config", false))
}

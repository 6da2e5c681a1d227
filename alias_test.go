package querykit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAlias(t *testing.T) {
	tests := []struct {
		name      string
		in        any
		wantAlias string
		wantValue any
	}{
		{"bare string", "users", "", "users"},
		{"bare number", 42, "", 42},
		{"one-entry map", map[string]any{"c": "id"}, "c", "id"},
		{"one-entry string map", map[string]string{"u": "users"}, "u", "users"},
		{"aliased value", As("o", "orders"), "o", "orders"},
		{"aliased value without alias", AliasedValue{Value: "x"}, "", "x"},
		{"literal", Raw("NOW()"), "", Raw("NOW()")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAlias(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAlias, got.Alias)
			assert.Equal(t, tt.wantValue, got.Value)
		})
	}
}

func TestResolveAlias_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"multi-entry map", map[string]any{"a": "x", "b": "y"}},
		{"empty map", map[string]any{}},
		{"numeric alias", map[string]any{"0": "users"}},
		{"decimal alias", As("1.5", "users")},
		{"alias with space", As("u s", "users")},
		{"alias with quote", map[string]string{"u`": "users"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveAlias(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestArgumentError_Message(t *testing.T) {
	err := withOp("From", invalidArgument("", "", "derived table requires an alias"))
	assert.EqualError(t, err, "querykit: From: invalid argument: derived table requires an alias")

	err = &ArgumentError{Arg: "0", Reason: "malformed alias"}
	assert.EqualError(t, err, "querykit: invalid argument '0': malformed alias")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

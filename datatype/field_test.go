package datatype

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeEqual(t *testing.T) {
	t.Run("Leaf types", func(t *testing.T) {
		require.True(t, TypeEqual(Int32, Int32))
		require.False(t, TypeEqual(Int32, Int64))
		require.False(t, TypeEqual(String, LargeString))
	})

	t.Run("List element field", func(t *testing.T) {
		a := NewListType(NewField("item", Int32, true))
		b := NewListType(NewField("item", Int32, true))
		c := NewListType(NewField("item", Int32, false))
		d := NewListType(NewField("other", Int32, true))

		require.True(t, TypeEqual(a, b))
		require.False(t, TypeEqual(a, c))
		require.False(t, TypeEqual(a, d))
	})

	t.Run("Struct fields", func(t *testing.T) {
		a := NewStructType(NewField("x", Int64, false), NewField("y", String, true))
		b := NewStructType(NewField("x", Int64, false), NewField("y", String, true))
		c := NewStructType(NewField("x", Int64, false))

		require.True(t, TypeEqual(a, b))
		require.False(t, TypeEqual(a, c))
	})

	t.Run("Dictionary", func(t *testing.T) {
		a := NewDictionaryType(Int32, String)
		b := NewDictionaryType(Int32, String)
		c := NewDictionaryType(Int8, String)

		require.True(t, TypeEqual(a, b))
		require.False(t, TypeEqual(a, c))
	})

	t.Run("Nested", func(t *testing.T) {
		a := NewListType(NewField("item", NewStructType(NewField("v", Float64, true)), true))
		b := NewListType(NewField("item", NewStructType(NewField("v", Float64, true)), true))
		c := NewListType(NewField("item", NewStructType(NewField("v", Float32, true)), true))

		require.True(t, TypeEqual(a, b))
		require.False(t, TypeEqual(a, c))
	})
}

func TestSchemaDictionaryValueType(t *testing.T) {
	schema := NewSchema(
		NewField("id", Int64, false),
		NewDictField("tag", NewDictionaryType(Int32, String), true, 3),
		NewField("nested", NewListType(
			NewDictField("inner", NewDictionaryType(Int8, Bytes), true, 7),
		), true),
		NewField("deep", NewStructType(
			NewDictField("leaf", NewDictionaryType(Uint16, Float64), true, 11),
		), false),
	)

	t.Run("Top level", func(t *testing.T) {
		vt, ok := schema.DictionaryValueType(3)
		require.True(t, ok)
		require.True(t, TypeEqual(String, vt))
	})

	t.Run("Inside list", func(t *testing.T) {
		vt, ok := schema.DictionaryValueType(7)
		require.True(t, ok)
		require.True(t, TypeEqual(Bytes, vt))
	})

	t.Run("Inside struct", func(t *testing.T) {
		vt, ok := schema.DictionaryValueType(11)
		require.True(t, ok)
		require.True(t, TypeEqual(Float64, vt))
	})

	t.Run("Unknown id", func(t *testing.T) {
		_, ok := schema.DictionaryValueType(99)
		require.False(t, ok)
	})
}

func TestIsInteger(t *testing.T) {
	require.True(t, IsInteger(Int8))
	require.True(t, IsInteger(Uint64))
	require.False(t, IsInteger(Float32))
	require.False(t, IsInteger(Boolean))
	require.False(t, IsInteger(String))
}

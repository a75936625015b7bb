// Copyright (c) 2025 JordanRO2
// SPDX-License-Identifier: MIT

package ct

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeCodeNames(t *testing.T) {
	tests := []struct {
		code TypeCode
		name string
	}{
		{TypeByte, "BYTE"},
		{TypeShort, "SHORT"},
		{TypeWord, "WORD"},
		{TypeInt, "INT"},
		{TypeDword, "DWORD"},
		{TypeDwordHex, "DWORD_HEX"},
		{TypeString, "STRING"},
		{TypeFloat, "FLOAT"},
		{TypeInt64, "INT64"},
		{TypeBool, "BOOL"},
		{TypeCode(13), "UNKNOWN_13"},
		{TypeCode(0), "UNKNOWN_0"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.name, tc.code.Name())

		code, err := TypeCodeFromName(tc.name)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.code, code, tc.name)
	}

	_, err := TypeCodeFromName("NOT_A_TYPE")
	assert.Error(t, err)
	_, err = TypeCodeFromName("UNKNOWN_x")
	assert.Error(t, err)
}

// encodeDecodeValue pushes a value through one wire round trip.
func encodeDecodeValue(t *testing.T, code TypeCode, value string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, encodeValue(&buf, code, value))

	got, err := decodeValue(&buf, code)
	require.NoError(t, err)
	assert.Zero(t, buf.Len(), "trailing bytes after decode")
	return got
}

func TestValueRoundTrips(t *testing.T) {
	tests := []struct {
		code  TypeCode
		value string
	}{
		{TypeByte, "0"},
		{TypeByte, "255"},
		{TypeBool, "1"},
		{TypeShort, "-32768"},
		{TypeShort, "32767"},
		{TypeWord, "65535"},
		{TypeInt, "-2147483648"},
		{TypeInt, "2147483647"},
		{TypeDword, "4294967295"},
		{TypeDwordHex, "0xFFFFFFFF"},
		{TypeDwordHex, "0x0"},
		{TypeFloat, "2.5"},
		{TypeFloat, "-0.125"},
		{TypeFloat, "0"},
		{TypeInt64, "-9223372036854775808"},
		{TypeInt64, "9223372036854775807"},
		{TypeString, ""},
		{TypeString, "alpha"},
		{TypeString, "한글 값"},
		{TypeCode(42), "-7"},
	}

	for _, tc := range tests {
		got := encodeDecodeValue(t, tc.code, tc.value)
		assert.Equal(t, tc.value, got, "%s %q", tc.code.Name(), tc.value)
	}
}

func TestValueWireSizes(t *testing.T) {
	tests := []struct {
		code TypeCode
		size int
	}{
		{TypeByte, 1},
		{TypeBool, 1},
		{TypeShort, 2},
		{TypeWord, 2},
		{TypeInt, 4},
		{TypeDword, 4},
		{TypeDwordHex, 4},
		{TypeFloat, 4},
		{TypeInt64, 8},
		{TypeCode(99), 4},
	}

	for _, tc := range tests {
		var buf bytes.Buffer
		require.NoError(t, encodeValue(&buf, tc.code, "1"))
		assert.Equal(t, tc.size, buf.Len(), tc.code.Name())
	}
}

func TestStringValueIsCharCountPrefixed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, encodeValue(&buf, TypeString, "hi"))

	// u32 count of UTF-16 code units, not bytes.
	assert.Equal(t, []byte{2, 0, 0, 0, 'h', 0, 'i', 0}, buf.Bytes())
}

func TestEncodeValueRange(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, encodeValue(&buf, TypeByte, "256"))
	assert.Error(t, encodeValue(&buf, TypeShort, "40000"))
	assert.Error(t, encodeValue(&buf, TypeWord, "-1"))
	assert.Error(t, encodeValue(&buf, TypeDword, "hello"))
	assert.Error(t, encodeValue(&buf, TypeFloat, "1.2.3"))
}

func TestFloatDecodeUsesShortestForm(t *testing.T) {
	// 1/3 as float32 must format with just enough digits to round-trip.
	got := encodeDecodeValue(t, TypeFloat, "0.33333334")
	assert.Equal(t, "0.33333334", got)
}

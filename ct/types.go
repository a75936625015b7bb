// Copyright (c) 2025 JordanRO2
// SPDX-License-Identifier: MIT

package ct

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/JordanRO2/RO2-Toolkit/internal/codec"
)

// TypeCode is a column type code as stored on the wire.
type TypeCode uint32

const (
	TypeByte     TypeCode = 2
	TypeShort    TypeCode = 3
	TypeWord     TypeCode = 4
	TypeInt      TypeCode = 5
	TypeDword    TypeCode = 6
	TypeDwordHex TypeCode = 7
	TypeString   TypeCode = 8
	TypeFloat    TypeCode = 9
	TypeInt64    TypeCode = 11
	TypeBool     TypeCode = 12
)

var typeNames = map[TypeCode]string{
	TypeByte:     "BYTE",
	TypeShort:    "SHORT",
	TypeWord:     "WORD",
	TypeInt:      "INT",
	TypeDword:    "DWORD",
	TypeDwordHex: "DWORD_HEX",
	TypeString:   "STRING",
	TypeFloat:    "FLOAT",
	TypeInt64:    "INT64",
	TypeBool:     "BOOL",
}

var typeCodes = func() map[string]TypeCode {
	m := make(map[string]TypeCode, len(typeNames))
	for code, name := range typeNames {
		m[name] = code
	}
	return m
}()

const unknownTypePrefix = "UNKNOWN_"

// Name returns the type's name. Codes without a known mapping become
// "UNKNOWN_<n>" and are decoded as i32.
func (c TypeCode) Name() string {
	if name, ok := typeNames[c]; ok {
		return name
	}
	return unknownTypePrefix + strconv.FormatUint(uint64(c), 10)
}

// TypeCodeFromName maps a type name back to its code, including the
// "UNKNOWN_<n>" passthrough form.
func TypeCodeFromName(name string) (TypeCode, error) {
	if code, ok := typeCodes[name]; ok {
		return code, nil
	}
	if n, ok := strings.CutPrefix(name, unknownTypePrefix); ok {
		code, err := strconv.ParseUint(n, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("unrecognized type name %q", name)
		}
		return TypeCode(code), nil
	}
	return 0, fmt.Errorf("unrecognized type name %q", name)
}

// decodeValue reads one wire value of the given type and formats it as
// text: decimal for integers, "0x"-prefixed uppercase hex for DWORD_HEX,
// the shortest round-trip form for FLOAT, the raw string for STRING.
func decodeValue(r io.Reader, c TypeCode) (string, error) {
	switch c {
	case TypeByte, TypeBool:
		var v uint8
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return "", err
		}
		return strconv.FormatUint(uint64(v), 10), nil

	case TypeShort:
		var v int16
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return "", err
		}
		return strconv.FormatInt(int64(v), 10), nil

	case TypeWord:
		var v uint16
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return "", err
		}
		return strconv.FormatUint(uint64(v), 10), nil

	case TypeInt:
		var v int32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return "", err
		}
		return strconv.FormatInt(int64(v), 10), nil

	case TypeDword:
		var v uint32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return "", err
		}
		return strconv.FormatUint(uint64(v), 10), nil

	case TypeDwordHex:
		var v uint32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return "", err
		}
		return "0x" + strings.ToUpper(strconv.FormatUint(uint64(v), 16)), nil

	case TypeFloat:
		var bits uint32
		if err := binary.Read(r, binary.LittleEndian, &bits); err != nil {
			return "", err
		}
		f := math.Float32frombits(bits)
		return strconv.FormatFloat(float64(f), 'g', -1, 32), nil

	case TypeInt64:
		var v int64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return "", err
		}
		return strconv.FormatInt(v, 10), nil

	case TypeString:
		return codec.ReadUTF16String(r)

	default:
		// Unknown codes read as i32.
		var v int32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return "", err
		}
		return strconv.FormatInt(int64(v), 10), nil
	}
}

// encodeValue parses a text value as the given type and writes its wire
// form. An empty cell counts as "0", or the empty string for STRING.
func encodeValue(w io.Writer, c TypeCode, value string) error {
	if value == "" && c != TypeString {
		value = "0"
	}

	switch c {
	case TypeByte, TypeBool:
		v, err := strconv.ParseUint(value, 10, 8)
		if err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, uint8(v))

	case TypeShort:
		v, err := strconv.ParseInt(value, 10, 16)
		if err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, int16(v))

	case TypeWord:
		v, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, uint16(v))

	case TypeInt:
		v, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, int32(v))

	case TypeDword:
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, uint32(v))

	case TypeDwordHex:
		v, err := parseDwordHex(value)
		if err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, v)

	case TypeFloat:
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, math.Float32bits(float32(f)))

	case TypeInt64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, v)

	case TypeString:
		return codec.WriteUTF16String(w, value)

	default:
		// Unknown codes write as i32.
		v, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, int32(v))
	}
}

// parseDwordHex accepts a "0x"-prefixed hex value in either case, or a
// plain decimal.
func parseDwordHex(value string) (uint32, error) {
	if len(value) > 2 && (value[:2] == "0x" || value[:2] == "0X") {
		v, err := strconv.ParseUint(value[2:], 16, 32)
		return uint32(v), err
	}
	v, err := strconv.ParseUint(value, 10, 32)
	return uint32(v), err
}

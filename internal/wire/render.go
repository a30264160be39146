package wire

import (
	"fmt"
	"strings"
)

// Hex возвращает шестнадцатеричное представление байт: "0a 03 66 6f 6f".
func Hex(data []byte) string {
	var sb strings.Builder
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", b)
	}
	return sb.String()
}

// GoLiteral возвращает байты как литерал Go среза:
// []byte{0x0a, 0x03, 0x66, 0x6f, 0x6f}.
func GoLiteral(data []byte) string {
	if len(data) == 0 {
		return "[]byte{}"
	}
	var sb strings.Builder
	sb.WriteString("[]byte{")
	for i, b := range data {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "0x%02x", b)
	}
	sb.WriteByte('}')
	return sb.String()
}

// DebugText возвращает построчную расшифровку wire формата: номер поля,
// wire тип и сырое значение. Остаток, который не разбирается как wire
// формат, печатается одной строкой в hex виде.
func DebugText(data []byte) string {
	var sb strings.Builder
	b := data
	for len(b) > 0 {
		tag, wt, n := ReadTag(b)
		if n == 0 {
			fmt.Fprintf(&sb, "!malformed: % x\n", b)
			break
		}
		b = b[n:]

		switch wt {
		case TypeVarint:
			v, n := ReadVarint(b)
			if n == 0 {
				fmt.Fprintf(&sb, "!malformed varint (field %d): % x\n", tag, b)
				return sb.String()
			}
			b = b[n:]
			fmt.Fprintf(&sb, "field %d (varint) = %d\n", tag, v)
		case TypeFixed32:
			v, n := ReadFixed32(b)
			if n == 0 {
				fmt.Fprintf(&sb, "!malformed fixed32 (field %d): % x\n", tag, b)
				return sb.String()
			}
			b = b[n:]
			fmt.Fprintf(&sb, "field %d (fixed32) = 0x%08x\n", tag, v)
		case TypeFixed64:
			v, n := ReadFixed64(b)
			if n == 0 {
				fmt.Fprintf(&sb, "!malformed fixed64 (field %d): % x\n", tag, b)
				return sb.String()
			}
			b = b[n:]
			fmt.Fprintf(&sb, "field %d (fixed64) = 0x%016x\n", tag, v)
		case TypeBytes:
			v, n := ReadBytes(b)
			if n == 0 {
				fmt.Fprintf(&sb, "!malformed bytes (field %d): % x\n", tag, b)
				return sb.String()
			}
			b = b[n:]
			fmt.Fprintf(&sb, "field %d (bytes, %d) = %q\n", tag, len(v), v)
		default:
			fmt.Fprintf(&sb, "!unsupported wire type %d (field %d)\n", wt, tag)
			return sb.String()
		}
	}
	return sb.String()
}

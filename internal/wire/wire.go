// Package wire реализует минимальный кодек бинарного wire формата protobuf:
// varint, zigzag, fixed32/64, теги и length-delimited блоки.
//
// Один и тот же кодек используется и кодировщиком сообщений, и резервным
// сканером опций в экстракторе правил, чтобы разбор формата не дублировался.
package wire

import "math"

// Типы wire формата protobuf.
const (
	TypeVarint  = 0
	TypeFixed64 = 1
	TypeBytes   = 2
	TypeFixed32 = 5
)

// AppendVarint дописывает varint (little-endian base-128) к буферу.
func AppendVarint(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

// AppendTag дописывает ключ поля: (tag<<3)|wireType.
func AppendTag(b []byte, tag int32, wireType int) []byte {
	return AppendVarint(b, uint64(tag)<<3|uint64(wireType))
}

// AppendFixed32 дописывает 4 байта little-endian.
func AppendFixed32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// AppendFixed64 дописывает 8 байт little-endian.
func AppendFixed64(b []byte, v uint64) []byte {
	return append(b,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

// AppendBytes дописывает length-delimited блок: varint длины и сами байты.
func AppendBytes(b, data []byte) []byte {
	b = AppendVarint(b, uint64(len(data)))
	return append(b, data...)
}

// Zigzag32 отображает знаковое 32-битное число в беззнаковое так, чтобы
// малые по модулю отрицательные значения кодировались коротким varint.
func Zigzag32(v int32) uint64 {
	return uint64(uint32(v<<1) ^ uint32(v>>31))
}

// Zigzag64 аналогично Zigzag32 для 64-битных значений.
func Zigzag64(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// Unzigzag64 обратное преобразование к Zigzag64.
func Unzigzag64(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// ReadVarint читает varint из начала буфера.
// Возвращает значение и число прочитанных байт; n == 0 означает
// усеченный или переполненный varint.
func ReadVarint(b []byte) (uint64, int) {
	var v uint64
	for i := 0; i < len(b); i++ {
		if i >= 10 {
			return 0, 0
		}
		v |= uint64(b[i]&0x7f) << (7 * uint(i))
		if b[i] < 0x80 {
			return v, i + 1
		}
	}
	return 0, 0
}

// ReadTag читает ключ поля и разбивает его на номер поля и wire тип.
// n == 0 означает ошибку разбора.
func ReadTag(b []byte) (tag int32, wireType int, n int) {
	key, n := ReadVarint(b)
	if n == 0 {
		return 0, 0, 0
	}
	tag = int32(key >> 3)
	wireType = int(key & 7)
	if tag <= 0 {
		return 0, 0, 0
	}
	return tag, wireType, n
}

// ReadFixed32 читает 4 байта little-endian.
func ReadFixed32(b []byte) (uint32, int) {
	if len(b) < 4 {
		return 0, 0
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, 4
}

// ReadFixed64 читает 8 байт little-endian.
func ReadFixed64(b []byte) (uint64, int) {
	if len(b) < 8 {
		return 0, 0
	}
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56, 8
}

// ReadBytes читает length-delimited блок и возвращает его содержимое.
func ReadBytes(b []byte) ([]byte, int) {
	length, n := ReadVarint(b)
	if n == 0 || length > uint64(len(b)-n) {
		return nil, 0
	}
	return b[n : n+int(length)], n + int(length)
}

// Skip пропускает значение поля с учетом wire типа.
// Возвращает число пропущенных байт или 0, если пропустить нельзя
// (усеченный буфер или неподдерживаемый wire тип).
func Skip(b []byte, wireType int) int {
	switch wireType {
	case TypeVarint:
		_, n := ReadVarint(b)
		return n
	case TypeFixed64:
		if len(b) < 8 {
			return 0
		}
		return 8
	case TypeBytes:
		_, n := ReadBytes(b)
		return n
	case TypeFixed32:
		if len(b) < 4 {
			return 0
		}
		return 4
	}
	return 0
}

// Float32Bits и Float64Bits оборачивают math для симметрии с Read/Append.
func Float32Bits(f float32) uint32 { return math.Float32bits(f) }
func Float64Bits(f float64) uint64 { return math.Float64bits(f) }
func Float32From(v uint32) float32 { return math.Float32frombits(v) }
func Float64From(v uint64) float64 { return math.Float64frombits(v) }

package wire

import (
	"protodata-gen/internal/schema"
)

// AppendField кодирует одно значение поля: ключ (tag, wire тип) и полезную
// нагрузку в зависимости от скалярного типа. Чистая функция над буфером.
//
// Для KindMessage ожидаются уже закодированные байты вложенного сообщения.
// Неподдерживаемая комбинация типа и значения не дописывает ничего:
// документированный выбор в пользу частичного результата вместо ошибки.
func AppendField(b []byte, tag int32, kind schema.Kind, value any) []byte {
	switch kind {
	case schema.KindInt32, schema.KindInt64, schema.KindEnum:
		v, ok := toInt64(value)
		if !ok {
			return b
		}
		// Отрицательные значения кодируются как беззнаковые в 64-битном окне.
		b = AppendTag(b, tag, TypeVarint)
		return AppendVarint(b, uint64(v))

	case schema.KindUint32, schema.KindUint64:
		v, ok := toUint64(value)
		if !ok {
			return b
		}
		b = AppendTag(b, tag, TypeVarint)
		return AppendVarint(b, v)

	case schema.KindSint32:
		v, ok := toInt64(value)
		if !ok {
			return b
		}
		b = AppendTag(b, tag, TypeVarint)
		return AppendVarint(b, Zigzag32(int32(v)))

	case schema.KindSint64:
		v, ok := toInt64(value)
		if !ok {
			return b
		}
		b = AppendTag(b, tag, TypeVarint)
		return AppendVarint(b, Zigzag64(v))

	case schema.KindFixed32:
		v, ok := toUint64(value)
		if !ok {
			return b
		}
		b = AppendTag(b, tag, TypeFixed32)
		return AppendFixed32(b, uint32(v))

	case schema.KindSfixed32:
		v, ok := toInt64(value)
		if !ok {
			return b
		}
		b = AppendTag(b, tag, TypeFixed32)
		return AppendFixed32(b, uint32(int32(v)))

	case schema.KindFixed64:
		v, ok := toUint64(value)
		if !ok {
			return b
		}
		b = AppendTag(b, tag, TypeFixed64)
		return AppendFixed64(b, v)

	case schema.KindSfixed64:
		v, ok := toInt64(value)
		if !ok {
			return b
		}
		b = AppendTag(b, tag, TypeFixed64)
		return AppendFixed64(b, uint64(v))

	case schema.KindFloat:
		v, ok := toFloat64(value)
		if !ok {
			return b
		}
		b = AppendTag(b, tag, TypeFixed32)
		return AppendFixed32(b, Float32Bits(float32(v)))

	case schema.KindDouble:
		v, ok := toFloat64(value)
		if !ok {
			return b
		}
		b = AppendTag(b, tag, TypeFixed64)
		return AppendFixed64(b, Float64Bits(v))

	case schema.KindBool:
		v, ok := value.(bool)
		if !ok {
			return b
		}
		b = AppendTag(b, tag, TypeVarint)
		if v {
			return AppendVarint(b, 1)
		}
		return AppendVarint(b, 0)

	case schema.KindString:
		v, ok := value.(string)
		if !ok {
			return b
		}
		// Валидность UTF-8 не проверяется, кодировщик доверяет генератору.
		b = AppendTag(b, tag, TypeBytes)
		return AppendBytes(b, []byte(v))

	case schema.KindBytes, schema.KindMessage:
		v, ok := value.([]byte)
		if !ok {
			return b
		}
		b = AppendTag(b, tag, TypeBytes)
		return AppendBytes(b, v)
	}
	return b
}

// toInt64 приводит целочисленные значения генератора к int64.
func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	}
	return 0, false
}

// toUint64 приводит целочисленные значения генератора к uint64.
func toUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case int:
		return uint64(v), true
	case int32:
		return uint64(v), true
	case int64:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	}
	return 0, false
}

// toFloat64 приводит числа с плавающей точкой к float64.
func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

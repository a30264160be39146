package wire

import (
	"protodata-gen/internal/record"
	"protodata-gen/internal/schema"
)

// EncodeRecord кодирует запись генератора в бинарный wire формат.
//
// Поля обходятся в порядке объявления в сообщении; отсутствующие в записи
// поля пропускаются. Repeated поля кодируются повторением независимых
// групп тег+значение, без packed представления. Значение неподдерживаемого
// вида дает ноль байт для этого поля, не ошибку.
func EncodeRecord(set *schema.Set, message string, rec *record.Record) ([]byte, error) {
	m, err := set.Message(message)
	if err != nil {
		return nil, err
	}

	var out []byte
	for i := range m.Fields {
		f := &m.Fields[i]
		value, ok := rec.Get(f.Name)
		if !ok {
			continue
		}
		out = appendValue(out, set, f, value)
	}
	return out, nil
}

// appendValue кодирует значение поля с учетом кардинальности и вложенности.
func appendValue(b []byte, set *schema.Set, f *schema.Field, value any) []byte {
	if items, ok := value.([]any); ok {
		for _, item := range items {
			b = appendSingle(b, set, f, item)
		}
		return b
	}
	return appendSingle(b, set, f, value)
}

func appendSingle(b []byte, set *schema.Set, f *schema.Field, value any) []byte {
	if sub, ok := value.(*record.Record); ok {
		if f.MessageType == "" {
			return b
		}
		enc, err := EncodeRecord(set, f.MessageType, sub)
		if err != nil {
			return b
		}
		return AppendField(b, f.Tag, schema.KindMessage, enc)
	}
	return AppendField(b, f.Tag, f.Kind, value)
}

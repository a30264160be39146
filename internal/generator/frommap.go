package generator

import (
	"fmt"

	"protodata-gen/internal/record"
	"protodata-gen/internal/schema"
)

// RecordFromMap строит запись из обычного словаря (например, результата
// разбора JSON). Поля укладываются в порядке объявления в сообщении,
// числа приводятся к каноническому типу поля, вложенные словари
// рекурсивно превращаются в записи.
func RecordFromMap(set *schema.Set, message string, data map[string]any) (*record.Record, error) {
	m, err := set.Message(message)
	if err != nil {
		return nil, err
	}

	rec := record.New()
	for i := range m.Fields {
		f := &m.Fields[i]
		raw, ok := data[f.Name]
		if !ok {
			continue
		}

		value, err := convertValue(set, f, raw)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		rec.Set(f.Name, value)
	}
	return rec, nil
}

func convertValue(set *schema.Set, f *schema.Field, raw any) (any, error) {
	if items, ok := raw.([]any); ok {
		if !f.Repeated {
			return nil, fmt.Errorf("unexpected list for singular field")
		}
		out := make([]any, 0, len(items))
		for _, item := range items {
			v, err := convertSingle(set, f, item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	return convertSingle(set, f, raw)
}

func convertSingle(set *schema.Set, f *schema.Field, raw any) (any, error) {
	if sub, ok := raw.(map[string]any); ok {
		if f.Kind != schema.KindMessage || f.MessageType == "" {
			return nil, fmt.Errorf("unexpected object for %s field", f.Kind)
		}
		return RecordFromMap(set, f.MessageType, sub)
	}

	switch {
	case f.Kind == schema.KindBool:
		v, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", raw)
		}
		return v, nil

	case f.Kind == schema.KindString:
		v, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", raw)
		}
		return v, nil

	case f.Kind == schema.KindBytes:
		switch v := raw.(type) {
		case string:
			return []byte(v), nil
		case []byte:
			return v, nil
		}
		return nil, fmt.Errorf("expected bytes, got %T", raw)

	case f.Kind.Float():
		return toFloat64(numeric(raw)), nil

	case f.Kind.Unsigned():
		return toUint64(numeric(raw)), nil

	default:
		return toInt64(numeric(raw)), nil
	}
}

// numeric приводит числовые представления JSON к параметрическим типам
// генератора, чтобы to*64 хелперы их понимали.
func numeric(raw any) any {
	switch v := raw.(type) {
	case float64, int64, uint64:
		return v
	case int:
		return int64(v)
	case float32:
		return float64(v)
	}
	return int64(0)
}

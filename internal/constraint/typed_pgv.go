package constraint

import (
	validate "github.com/envoyproxy/protoc-gen-validate/validate"

	"protodata-gen/internal/schema"
)

// fromPGV извлекает правила из типизированного расширения validate.rules.
// Включаются только присутствующие подполя (presence, а не значение по
// умолчанию); порядок повторяет порядок объявления в validate.proto.
func fromPGV(f schema.Field, rules *validate.FieldRules) []Constraint {
	var out []Constraint
	name := f.Name

	appendNum := func(c, lt, lte, gt, gte any, in, notIn []any) {
		if c != nil {
			out = append(out, Constraint{name, RuleConst, c})
		}
		if lt != nil {
			out = append(out, Constraint{name, RuleLt, lt})
		}
		if lte != nil {
			out = append(out, Constraint{name, RuleLte, lte})
		}
		if gt != nil {
			out = append(out, Constraint{name, RuleGt, gt})
		}
		if gte != nil {
			out = append(out, Constraint{name, RuleGte, gte})
		}
		if len(in) > 0 {
			out = append(out, Constraint{name, RuleIn, in})
		}
		if len(notIn) > 0 {
			out = append(out, Constraint{name, RuleNotIn, notIn})
		}
	}

	switch {
	case rules.GetFloat() != nil:
		r := rules.GetFloat()
		appendNum(
			optFloat(r.Const), optFloat(r.Lt), optFloat(r.Lte), optFloat(r.Gt), optFloat(r.Gte),
			floatsToAny(r.In), floatsToAny(r.NotIn))

	case rules.GetDouble() != nil:
		r := rules.GetDouble()
		appendNum(
			optDouble(r.Const), optDouble(r.Lt), optDouble(r.Lte), optDouble(r.Gt), optDouble(r.Gte),
			doublesToAny(r.In), doublesToAny(r.NotIn))

	case rules.GetInt32() != nil:
		r := rules.GetInt32()
		appendNum(
			optInt32(r.Const), optInt32(r.Lt), optInt32(r.Lte), optInt32(r.Gt), optInt32(r.Gte),
			int32sToAny(r.In), int32sToAny(r.NotIn))

	case rules.GetInt64() != nil:
		r := rules.GetInt64()
		appendNum(
			optInt64(r.Const), optInt64(r.Lt), optInt64(r.Lte), optInt64(r.Gt), optInt64(r.Gte),
			int64sToAny(r.In), int64sToAny(r.NotIn))

	case rules.GetUint32() != nil:
		r := rules.GetUint32()
		appendNum(
			optUint32(r.Const), optUint32(r.Lt), optUint32(r.Lte), optUint32(r.Gt), optUint32(r.Gte),
			uint32sToAny(r.In), uint32sToAny(r.NotIn))

	case rules.GetUint64() != nil:
		r := rules.GetUint64()
		appendNum(
			optUint64(r.Const), optUint64(r.Lt), optUint64(r.Lte), optUint64(r.Gt), optUint64(r.Gte),
			uint64sToAny(r.In), uint64sToAny(r.NotIn))

	case rules.GetSint32() != nil:
		r := rules.GetSint32()
		appendNum(
			optInt32(r.Const), optInt32(r.Lt), optInt32(r.Lte), optInt32(r.Gt), optInt32(r.Gte),
			int32sToAny(r.In), int32sToAny(r.NotIn))

	case rules.GetSint64() != nil:
		r := rules.GetSint64()
		appendNum(
			optInt64(r.Const), optInt64(r.Lt), optInt64(r.Lte), optInt64(r.Gt), optInt64(r.Gte),
			int64sToAny(r.In), int64sToAny(r.NotIn))

	case rules.GetFixed32() != nil:
		r := rules.GetFixed32()
		appendNum(
			optUint32(r.Const), optUint32(r.Lt), optUint32(r.Lte), optUint32(r.Gt), optUint32(r.Gte),
			uint32sToAny(r.In), uint32sToAny(r.NotIn))

	case rules.GetFixed64() != nil:
		r := rules.GetFixed64()
		appendNum(
			optUint64(r.Const), optUint64(r.Lt), optUint64(r.Lte), optUint64(r.Gt), optUint64(r.Gte),
			uint64sToAny(r.In), uint64sToAny(r.NotIn))

	case rules.GetSfixed32() != nil:
		r := rules.GetSfixed32()
		appendNum(
			optInt32(r.Const), optInt32(r.Lt), optInt32(r.Lte), optInt32(r.Gt), optInt32(r.Gte),
			int32sToAny(r.In), int32sToAny(r.NotIn))

	case rules.GetSfixed64() != nil:
		r := rules.GetSfixed64()
		appendNum(
			optInt64(r.Const), optInt64(r.Lt), optInt64(r.Lte), optInt64(r.Gt), optInt64(r.Gte),
			int64sToAny(r.In), int64sToAny(r.NotIn))

	case rules.GetBool() != nil:
		r := rules.GetBool()
		if r.Const != nil {
			out = append(out, Constraint{name, RuleConst, r.GetConst()})
		}

	case rules.GetString_() != nil:
		out = append(out, pgvStringRules(name, rules.GetString_())...)

	case rules.GetBytes() != nil:
		out = append(out, pgvBytesRules(name, rules.GetBytes())...)

	case rules.GetEnum() != nil:
		r := rules.GetEnum()
		appendNum(optInt32(r.Const), nil, nil, nil, nil,
			int32sToAny(r.In), int32sToAny(r.NotIn))

	case rules.GetRepeated() != nil:
		r := rules.GetRepeated()
		if r.MinItems != nil {
			out = append(out, Constraint{name, RuleMinItems, r.GetMinItems()})
		}
		if r.MaxItems != nil {
			out = append(out, Constraint{name, RuleMaxItems, r.GetMaxItems()})
		}
		if r.GetUnique() {
			out = append(out, Constraint{name, RuleUnique, nil})
		}
		// Правила элементов раскрываются в общий список: генератор сам
		// отделяет правила уровня repeated от правил элементов.
		if items := r.GetItems(); items != nil {
			out = append(out, fromPGV(f, items)...)
		}
	}

	// Правила message уровня не входят в oneof type и проверяются отдельно.
	if mr := rules.GetMessage(); mr != nil && mr.GetRequired() {
		out = append(out, Constraint{name, RuleRequired, nil})
	}

	return out
}

func pgvStringRules(name string, r *validate.StringRules) []Constraint {
	var out []Constraint
	if r.Const != nil {
		out = append(out, Constraint{name, RuleConst, r.GetConst()})
	}
	if r.MinLen != nil {
		out = append(out, Constraint{name, RuleMinLen, r.GetMinLen()})
	}
	if r.MaxLen != nil {
		out = append(out, Constraint{name, RuleMaxLen, r.GetMaxLen()})
	}
	if r.Pattern != nil {
		out = append(out, Constraint{name, RulePattern, r.GetPattern()})
	}
	if r.Prefix != nil {
		out = append(out, Constraint{name, RulePrefix, r.GetPrefix()})
	}
	if r.Suffix != nil {
		out = append(out, Constraint{name, RuleSuffix, r.GetSuffix()})
	}
	if r.Contains != nil {
		out = append(out, Constraint{name, RuleContains, r.GetContains()})
	}
	if len(r.In) > 0 {
		out = append(out, Constraint{name, RuleIn, stringsToAny(r.In)})
	}
	if len(r.NotIn) > 0 {
		out = append(out, Constraint{name, RuleNotIn, stringsToAny(r.NotIn)})
	}
	switch {
	case r.GetEmail():
		out = append(out, Constraint{name, RuleEmail, nil})
	case r.GetHostname():
		out = append(out, Constraint{name, RuleHostname, nil})
	case r.GetIp():
		out = append(out, Constraint{name, RuleIP, nil})
	case r.GetIpv4():
		out = append(out, Constraint{name, RuleIPv4, nil})
	case r.GetIpv6():
		out = append(out, Constraint{name, RuleIPv6, nil})
	case r.GetUuid():
		out = append(out, Constraint{name, RuleUUID, nil})
	}
	return out
}

func pgvBytesRules(name string, r *validate.BytesRules) []Constraint {
	var out []Constraint
	if r.Const != nil {
		out = append(out, Constraint{name, RuleConst, r.GetConst()})
	}
	if r.MinLen != nil {
		out = append(out, Constraint{name, RuleMinLen, r.GetMinLen()})
	}
	if r.MaxLen != nil {
		out = append(out, Constraint{name, RuleMaxLen, r.GetMaxLen()})
	}
	if r.Prefix != nil {
		out = append(out, Constraint{name, RulePrefix, r.GetPrefix()})
	}
	if r.Suffix != nil {
		out = append(out, Constraint{name, RuleSuffix, r.GetSuffix()})
	}
	if r.Contains != nil {
		out = append(out, Constraint{name, RuleContains, r.GetContains()})
	}
	if len(r.In) > 0 {
		out = append(out, Constraint{name, RuleIn, bytesToAny(r.In)})
	}
	if len(r.NotIn) > 0 {
		out = append(out, Constraint{name, RuleNotIn, bytesToAny(r.NotIn)})
	}
	switch {
	case r.GetIp():
		out = append(out, Constraint{name, RuleIP, nil})
	case r.GetIpv4():
		out = append(out, Constraint{name, RuleIPv4, nil})
	case r.GetIpv6():
		out = append(out, Constraint{name, RuleIPv6, nil})
	}
	return out
}

// Параметры приводятся к каноническим типам: int64 для знаковых,
// uint64 для беззнаковых, float64 для плавающих.

func optInt32(v *int32) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func optInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func optUint32(v *uint32) any {
	if v == nil {
		return nil
	}
	return uint64(*v)
}

func optUint64(v *uint64) any {
	if v == nil {
		return nil
	}
	return *v
}

func optFloat(v *float32) any {
	if v == nil {
		return nil
	}
	return float64(*v)
}

func optDouble(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func int32sToAny(vs []int32) []any {
	out := make([]any, 0, len(vs))
	for _, v := range vs {
		out = append(out, int64(v))
	}
	return out
}

func int64sToAny(vs []int64) []any {
	out := make([]any, 0, len(vs))
	for _, v := range vs {
		out = append(out, v)
	}
	return out
}

func uint32sToAny(vs []uint32) []any {
	out := make([]any, 0, len(vs))
	for _, v := range vs {
		out = append(out, uint64(v))
	}
	return out
}

func uint64sToAny(vs []uint64) []any {
	out := make([]any, 0, len(vs))
	for _, v := range vs {
		out = append(out, v)
	}
	return out
}

func floatsToAny(vs []float32) []any {
	out := make([]any, 0, len(vs))
	for _, v := range vs {
		out = append(out, float64(v))
	}
	return out
}

func doublesToAny(vs []float64) []any {
	out := make([]any, 0, len(vs))
	for _, v := range vs {
		out = append(out, v)
	}
	return out
}

func stringsToAny(vs []string) []any {
	out := make([]any, 0, len(vs))
	for _, v := range vs {
		out = append(out, v)
	}
	return out
}

func bytesToAny(vs [][]byte) []any {
	out := make([]any, 0, len(vs))
	for _, v := range vs {
		out = append(out, v)
	}
	return out
}

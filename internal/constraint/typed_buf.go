package constraint

import (
	validatepb "buf.build/gen/go/bufbuild/protovalidate/protocolbuffers/go/buf/validate"

	"protodata-gen/internal/schema"
)

// numParts собирает присутствующие числовые границы buf.validate словаря
// перед укладкой в список в порядке объявления.
type numParts struct {
	c      any
	ltRule string
	lt     any
	gtRule string
	gt     any
	in     []any
	notIn  []any
}

func (p numParts) appendTo(out []Constraint, name string) []Constraint {
	if p.c != nil {
		out = append(out, Constraint{name, RuleConst, p.c})
	}
	if p.lt != nil {
		out = append(out, Constraint{name, p.ltRule, p.lt})
	}
	if p.gt != nil {
		out = append(out, Constraint{name, p.gtRule, p.gt})
	}
	if len(p.in) > 0 {
		out = append(out, Constraint{name, RuleIn, p.in})
	}
	if len(p.notIn) > 0 {
		out = append(out, Constraint{name, RuleNotIn, p.notIn})
	}
	return out
}

// fromBuf извлекает правила из типизированного расширения buf.validate.
// Словарь buf.validate повторяет нумерацию и состав validate.rules для
// поддерживаемого здесь подмножества, различаются только Go типы oneof
// границ (less_than/greater_than).
func fromBuf(f schema.Field, rules *validatepb.FieldRules) []Constraint {
	var out []Constraint
	name := f.Name

	switch {
	case rules.GetFloat() != nil:
		r := rules.GetFloat()
		p := numParts{c: optFloat(r.Const), in: floatsToAny(r.In), notIn: floatsToAny(r.NotIn)}
		switch v := r.LessThan.(type) {
		case *validatepb.FloatRules_Lt:
			p.ltRule, p.lt = RuleLt, float64(v.Lt)
		case *validatepb.FloatRules_Lte:
			p.ltRule, p.lt = RuleLte, float64(v.Lte)
		}
		switch v := r.GreaterThan.(type) {
		case *validatepb.FloatRules_Gt:
			p.gtRule, p.gt = RuleGt, float64(v.Gt)
		case *validatepb.FloatRules_Gte:
			p.gtRule, p.gt = RuleGte, float64(v.Gte)
		}
		out = p.appendTo(out, name)

	case rules.GetDouble() != nil:
		r := rules.GetDouble()
		p := numParts{c: optDouble(r.Const), in: doublesToAny(r.In), notIn: doublesToAny(r.NotIn)}
		switch v := r.LessThan.(type) {
		case *validatepb.DoubleRules_Lt:
			p.ltRule, p.lt = RuleLt, v.Lt
		case *validatepb.DoubleRules_Lte:
			p.ltRule, p.lt = RuleLte, v.Lte
		}
		switch v := r.GreaterThan.(type) {
		case *validatepb.DoubleRules_Gt:
			p.gtRule, p.gt = RuleGt, v.Gt
		case *validatepb.DoubleRules_Gte:
			p.gtRule, p.gt = RuleGte, v.Gte
		}
		out = p.appendTo(out, name)

	case rules.GetInt32() != nil:
		r := rules.GetInt32()
		p := numParts{c: optInt32(r.Const), in: int32sToAny(r.In), notIn: int32sToAny(r.NotIn)}
		switch v := r.LessThan.(type) {
		case *validatepb.Int32Rules_Lt:
			p.ltRule, p.lt = RuleLt, int64(v.Lt)
		case *validatepb.Int32Rules_Lte:
			p.ltRule, p.lt = RuleLte, int64(v.Lte)
		}
		switch v := r.GreaterThan.(type) {
		case *validatepb.Int32Rules_Gt:
			p.gtRule, p.gt = RuleGt, int64(v.Gt)
		case *validatepb.Int32Rules_Gte:
			p.gtRule, p.gt = RuleGte, int64(v.Gte)
		}
		out = p.appendTo(out, name)

	case rules.GetInt64() != nil:
		r := rules.GetInt64()
		p := numParts{c: optInt64(r.Const), in: int64sToAny(r.In), notIn: int64sToAny(r.NotIn)}
		switch v := r.LessThan.(type) {
		case *validatepb.Int64Rules_Lt:
			p.ltRule, p.lt = RuleLt, v.Lt
		case *validatepb.Int64Rules_Lte:
			p.ltRule, p.lt = RuleLte, v.Lte
		}
		switch v := r.GreaterThan.(type) {
		case *validatepb.Int64Rules_Gt:
			p.gtRule, p.gt = RuleGt, v.Gt
		case *validatepb.Int64Rules_Gte:
			p.gtRule, p.gt = RuleGte, v.Gte
		}
		out = p.appendTo(out, name)

	case rules.GetUint32() != nil:
		r := rules.GetUint32()
		p := numParts{c: optUint32(r.Const), in: uint32sToAny(r.In), notIn: uint32sToAny(r.NotIn)}
		switch v := r.LessThan.(type) {
		case *validatepb.UInt32Rules_Lt:
			p.ltRule, p.lt = RuleLt, uint64(v.Lt)
		case *validatepb.UInt32Rules_Lte:
			p.ltRule, p.lt = RuleLte, uint64(v.Lte)
		}
		switch v := r.GreaterThan.(type) {
		case *validatepb.UInt32Rules_Gt:
			p.gtRule, p.gt = RuleGt, uint64(v.Gt)
		case *validatepb.UInt32Rules_Gte:
			p.gtRule, p.gt = RuleGte, uint64(v.Gte)
		}
		out = p.appendTo(out, name)

	case rules.GetUint64() != nil:
		r := rules.GetUint64()
		p := numParts{c: optUint64(r.Const), in: uint64sToAny(r.In), notIn: uint64sToAny(r.NotIn)}
		switch v := r.LessThan.(type) {
		case *validatepb.UInt64Rules_Lt:
			p.ltRule, p.lt = RuleLt, v.Lt
		case *validatepb.UInt64Rules_Lte:
			p.ltRule, p.lt = RuleLte, v.Lte
		}
		switch v := r.GreaterThan.(type) {
		case *validatepb.UInt64Rules_Gt:
			p.gtRule, p.gt = RuleGt, v.Gt
		case *validatepb.UInt64Rules_Gte:
			p.gtRule, p.gt = RuleGte, v.Gte
		}
		out = p.appendTo(out, name)

	case rules.GetSint32() != nil:
		r := rules.GetSint32()
		p := numParts{c: optInt32(r.Const), in: int32sToAny(r.In), notIn: int32sToAny(r.NotIn)}
		switch v := r.LessThan.(type) {
		case *validatepb.SInt32Rules_Lt:
			p.ltRule, p.lt = RuleLt, int64(v.Lt)
		case *validatepb.SInt32Rules_Lte:
			p.ltRule, p.lt = RuleLte, int64(v.Lte)
		}
		switch v := r.GreaterThan.(type) {
		case *validatepb.SInt32Rules_Gt:
			p.gtRule, p.gt = RuleGt, int64(v.Gt)
		case *validatepb.SInt32Rules_Gte:
			p.gtRule, p.gt = RuleGte, int64(v.Gte)
		}
		out = p.appendTo(out, name)

	case rules.GetSint64() != nil:
		r := rules.GetSint64()
		p := numParts{c: optInt64(r.Const), in: int64sToAny(r.In), notIn: int64sToAny(r.NotIn)}
		switch v := r.LessThan.(type) {
		case *validatepb.SInt64Rules_Lt:
			p.ltRule, p.lt = RuleLt, v.Lt
		case *validatepb.SInt64Rules_Lte:
			p.ltRule, p.lt = RuleLte, v.Lte
		}
		switch v := r.GreaterThan.(type) {
		case *validatepb.SInt64Rules_Gt:
			p.gtRule, p.gt = RuleGt, v.Gt
		case *validatepb.SInt64Rules_Gte:
			p.gtRule, p.gt = RuleGte, v.Gte
		}
		out = p.appendTo(out, name)

	case rules.GetFixed32() != nil:
		r := rules.GetFixed32()
		p := numParts{c: optUint32(r.Const), in: uint32sToAny(r.In), notIn: uint32sToAny(r.NotIn)}
		switch v := r.LessThan.(type) {
		case *validatepb.Fixed32Rules_Lt:
			p.ltRule, p.lt = RuleLt, uint64(v.Lt)
		case *validatepb.Fixed32Rules_Lte:
			p.ltRule, p.lt = RuleLte, uint64(v.Lte)
		}
		switch v := r.GreaterThan.(type) {
		case *validatepb.Fixed32Rules_Gt:
			p.gtRule, p.gt = RuleGt, uint64(v.Gt)
		case *validatepb.Fixed32Rules_Gte:
			p.gtRule, p.gt = RuleGte, uint64(v.Gte)
		}
		out = p.appendTo(out, name)

	case rules.GetFixed64() != nil:
		r := rules.GetFixed64()
		p := numParts{c: optUint64(r.Const), in: uint64sToAny(r.In), notIn: uint64sToAny(r.NotIn)}
		switch v := r.LessThan.(type) {
		case *validatepb.Fixed64Rules_Lt:
			p.ltRule, p.lt = RuleLt, v.Lt
		case *validatepb.Fixed64Rules_Lte:
			p.ltRule, p.lt = RuleLte, v.Lte
		}
		switch v := r.GreaterThan.(type) {
		case *validatepb.Fixed64Rules_Gt:
			p.gtRule, p.gt = RuleGt, v.Gt
		case *validatepb.Fixed64Rules_Gte:
			p.gtRule, p.gt = RuleGte, v.Gte
		}
		out = p.appendTo(out, name)

	case rules.GetSfixed32() != nil:
		r := rules.GetSfixed32()
		p := numParts{c: optInt32(r.Const), in: int32sToAny(r.In), notIn: int32sToAny(r.NotIn)}
		switch v := r.LessThan.(type) {
		case *validatepb.SFixed32Rules_Lt:
			p.ltRule, p.lt = RuleLt, int64(v.Lt)
		case *validatepb.SFixed32Rules_Lte:
			p.ltRule, p.lt = RuleLte, int64(v.Lte)
		}
		switch v := r.GreaterThan.(type) {
		case *validatepb.SFixed32Rules_Gt:
			p.gtRule, p.gt = RuleGt, int64(v.Gt)
		case *validatepb.SFixed32Rules_Gte:
			p.gtRule, p.gt = RuleGte, int64(v.Gte)
		}
		out = p.appendTo(out, name)

	case rules.GetSfixed64() != nil:
		r := rules.GetSfixed64()
		p := numParts{c: optInt64(r.Const), in: int64sToAny(r.In), notIn: int64sToAny(r.NotIn)}
		switch v := r.LessThan.(type) {
		case *validatepb.SFixed64Rules_Lt:
			p.ltRule, p.lt = RuleLt, v.Lt
		case *validatepb.SFixed64Rules_Lte:
			p.ltRule, p.lt = RuleLte, v.Lte
		}
		switch v := r.GreaterThan.(type) {
		case *validatepb.SFixed64Rules_Gt:
			p.gtRule, p.gt = RuleGt, v.Gt
		case *validatepb.SFixed64Rules_Gte:
			p.gtRule, p.gt = RuleGte, v.Gte
		}
		out = p.appendTo(out, name)

	case rules.GetBool() != nil:
		r := rules.GetBool()
		if r.Const != nil {
			out = append(out, Constraint{name, RuleConst, r.GetConst()})
		}

	case rules.GetString_() != nil:
		out = append(out, bufStringRules(name, rules.GetString_())...)

	case rules.GetBytes() != nil:
		out = append(out, bufBytesRules(name, rules.GetBytes())...)

	case rules.GetEnum() != nil:
		r := rules.GetEnum()
		p := numParts{c: optInt32(r.Const), in: int32sToAny(r.In), notIn: int32sToAny(r.NotIn)}
		out = p.appendTo(out, name)

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
		if items := r.GetItems(); items != nil {
			out = append(out, fromBuf(f, items)...)
		}
	}

	if rules.GetRequired() {
		out = append(out, Constraint{name, RuleRequired, nil})
	}

	return out
}

func bufStringRules(name string, r *validatepb.StringRules) []Constraint {
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

func bufBytesRules(name string, r *validatepb.BytesRules) []Constraint {
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

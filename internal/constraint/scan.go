package constraint

import (
	"protodata-gen/internal/schema"
	"protodata-gen/internal/wire"
)

// Номера расширений в опциях дескрипторов.
//
// Словари правил полей: validate.rules (1071) и buf.validate.field (1159)
// используют одинаковую нумерацию внутри rule сообщений для поддерживаемого
// подмножества, поэтому разбираются одним парсером.
// Межполевые правила и флаг ascii живут в собственном словаре, Go типы
// которого не линкуются: для них резервный сканер является единственным путем.
const (
	extPGVRules = 1071
	extBufField = 1159

	extASCII = 72001

	extRequires = 72101
	extMutex    = 72102
	extAtLeast  = 72103

	extOneofRequired = 1071
)

// Номера подсообщений внутри FieldRules (oneof type).
const (
	ruleNumFloat    = 1
	ruleNumDouble   = 2
	ruleNumInt32    = 3
	ruleNumInt64    = 4
	ruleNumUint32   = 5
	ruleNumUint64   = 6
	ruleNumSint32   = 7
	ruleNumSint64   = 8
	ruleNumFixed32  = 9
	ruleNumFixed64  = 10
	ruleNumSfixed32 = 11
	ruleNumSfixed64 = 12
	ruleNumBool     = 13
	ruleNumString   = 14
	ruleNumBytes    = 15
	ruleNumEnum     = 16
	ruleNumMessage  = 17
	ruleNumRepeated = 18

	ruleNumBufRequired = 25
)

// scanFieldOptions разбирает сериализованные опции поля без типов словаря:
// читает теги, для length-delimited значений известных расширений рекурсивно
// спускается во вложенное rule сообщение, неизвестные комбинации номера и
// wire типа пропускает. Любая ошибка разбора дает пустой список (fail open).
func scanFieldOptions(f schema.Field) []Constraint {
	b := f.RawOptions
	var out []Constraint
	for len(b) > 0 {
		tag, wt, n := wire.ReadTag(b)
		if n == 0 {
			return nil
		}
		b = b[n:]

		if (tag == extPGVRules || tag == extBufField) && wt == wire.TypeBytes {
			sub, n := wire.ReadBytes(b)
			if n == 0 {
				return nil
			}
			b = b[n:]
			cs, ok := scanFieldRules(f.Name, sub)
			if !ok {
				return nil
			}
			out = append(out, cs...)
			continue
		}

		n = wire.Skip(b, wt)
		if n == 0 {
			return nil
		}
		b = b[n:]
	}
	return out
}

// scanFieldRules разбирает байты FieldRules: выбирает парсер подсообщения
// по номеру поля oneof type.
func scanFieldRules(field string, b []byte) ([]Constraint, bool) {
	var out []Constraint
	for len(b) > 0 {
		tag, wt, n := wire.ReadTag(b)
		if n == 0 {
			return nil, false
		}
		b = b[n:]

		// required в словаре buf.validate лежит прямо в FieldRules.
		if tag == ruleNumBufRequired && wt == wire.TypeVarint {
			v, n := wire.ReadVarint(b)
			if n == 0 {
				return nil, false
			}
			b = b[n:]
			if v != 0 {
				out = append(out, Constraint{field, RuleRequired, nil})
			}
			continue
		}

		if wt != wire.TypeBytes {
			n = wire.Skip(b, wt)
			if n == 0 {
				return nil, false
			}
			b = b[n:]
			continue
		}

		sub, n := wire.ReadBytes(b)
		if n == 0 {
			return nil, false
		}
		b = b[n:]

		var (
			cs []Constraint
			ok bool
		)
		switch tag {
		case ruleNumFloat, ruleNumDouble, ruleNumInt32, ruleNumInt64,
			ruleNumUint32, ruleNumUint64, ruleNumSint32, ruleNumSint64,
			ruleNumFixed32, ruleNumFixed64, ruleNumSfixed32, ruleNumSfixed64,
			ruleNumEnum:
			cs, ok = scanNumericRules(field, tag, sub)
		case ruleNumBool:
			cs, ok = scanBoolRules(field, sub)
		case ruleNumString:
			cs, ok = scanStringRules(field, sub, true)
		case ruleNumBytes:
			cs, ok = scanStringRules(field, sub, false)
		case ruleNumMessage:
			cs, ok = scanMessageFieldRules(field, sub)
		case ruleNumRepeated:
			cs, ok = scanRepeatedRules(field, sub)
		default:
			// Неизвестное rule подсообщение целиком пропускается.
			continue
		}
		if !ok {
			return nil, false
		}
		out = append(out, cs...)
	}
	return out, true
}

// scanNumericRules разбирает числовое rule сообщение. Нумерация общая для
// всех числовых типов: const=1, lt=2, lte=3, gt=4, gte=5, in=6, not_in=7;
// меняется только кодировка значений.
func scanNumericRules(field string, ruleNum int32, b []byte) ([]Constraint, bool) {
	var c, lt, lte, gt, gte any
	var in, notIn []any

	for len(b) > 0 {
		tag, wt, n := wire.ReadTag(b)
		if n == 0 {
			return nil, false
		}
		b = b[n:]

		val, n := readNumericValue(ruleNum, wt, b)
		if n == 0 {
			// Значение в неожиданной кодировке пропускается.
			n = wire.Skip(b, wt)
			if n == 0 {
				return nil, false
			}
			b = b[n:]
			continue
		}
		b = b[n:]

		switch tag {
		case 1:
			c = val
		case 2:
			lt = val
		case 3:
			lte = val
		case 4:
			gt = val
		case 5:
			gte = val
		case 6:
			in = append(in, val)
		case 7:
			notIn = append(notIn, val)
		}
	}

	// Укладка в каноническом порядке объявления.
	var out []Constraint
	if c != nil {
		out = append(out, Constraint{field, RuleConst, c})
	}
	if lt != nil {
		out = append(out, Constraint{field, RuleLt, lt})
	}
	if lte != nil {
		out = append(out, Constraint{field, RuleLte, lte})
	}
	if gt != nil {
		out = append(out, Constraint{field, RuleGt, gt})
	}
	if gte != nil {
		out = append(out, Constraint{field, RuleGte, gte})
	}
	if len(in) > 0 {
		out = append(out, Constraint{field, RuleIn, in})
	}
	if len(notIn) > 0 {
		out = append(out, Constraint{field, RuleNotIn, notIn})
	}
	return out, true
}

// readNumericValue декодирует одно числовое значение по виду rule сообщения.
func readNumericValue(ruleNum int32, wt int, b []byte) (any, int) {
	switch ruleNum {
	case ruleNumFloat:
		if wt != wire.TypeFixed32 {
			return nil, 0
		}
		v, n := wire.ReadFixed32(b)
		return float64(wire.Float32From(v)), n
	case ruleNumDouble:
		if wt != wire.TypeFixed64 {
			return nil, 0
		}
		v, n := wire.ReadFixed64(b)
		return wire.Float64From(v), n
	case ruleNumInt32, ruleNumInt64, ruleNumEnum:
		if wt != wire.TypeVarint {
			return nil, 0
		}
		v, n := wire.ReadVarint(b)
		return int64(v), n
	case ruleNumUint32, ruleNumUint64:
		if wt != wire.TypeVarint {
			return nil, 0
		}
		v, n := wire.ReadVarint(b)
		return v, n
	case ruleNumSint32, ruleNumSint64:
		if wt != wire.TypeVarint {
			return nil, 0
		}
		v, n := wire.ReadVarint(b)
		return wire.Unzigzag64(v), n
	case ruleNumFixed32:
		if wt != wire.TypeFixed32 {
			return nil, 0
		}
		v, n := wire.ReadFixed32(b)
		return uint64(v), n
	case ruleNumFixed64:
		if wt != wire.TypeFixed64 {
			return nil, 0
		}
		v, n := wire.ReadFixed64(b)
		return v, n
	case ruleNumSfixed32:
		if wt != wire.TypeFixed32 {
			return nil, 0
		}
		v, n := wire.ReadFixed32(b)
		return int64(int32(v)), n
	case ruleNumSfixed64:
		if wt != wire.TypeFixed64 {
			return nil, 0
		}
		v, n := wire.ReadFixed64(b)
		return int64(v), n
	}
	return nil, 0
}

// scanBoolRules: const=1.
func scanBoolRules(field string, b []byte) ([]Constraint, bool) {
	var out []Constraint
	for len(b) > 0 {
		tag, wt, n := wire.ReadTag(b)
		if n == 0 {
			return nil, false
		}
		b = b[n:]

		if tag == 1 && wt == wire.TypeVarint {
			v, n := wire.ReadVarint(b)
			if n == 0 {
				return nil, false
			}
			b = b[n:]
			out = append(out, Constraint{field, RuleConst, v != 0})
			continue
		}

		n = wire.Skip(b, wt)
		if n == 0 {
			return nil, false
		}
		b = b[n:]
	}
	return out, true
}

// stringRuleNums описывает нумерацию StringRules и BytesRules.
type stringRuleNums struct {
	konst, minLen, maxLen, pattern, prefix, suffix, contains int32
	in, notIn                                                int32
	email, hostname, ip, ipv4, ipv6, uuid                    int32
}

var stringNums = stringRuleNums{
	konst: 1, minLen: 2, maxLen: 3, pattern: 6, prefix: 7, suffix: 8, contains: 9,
	in: 10, notIn: 11,
	email: 12, hostname: 13, ip: 14, ipv4: 15, ipv6: 16, uuid: 22,
}

var bytesNums = stringRuleNums{
	konst: 1, minLen: 2, maxLen: 3, pattern: 4, prefix: 5, suffix: 6, contains: 7,
	in: 8, notIn: 9,
	ip: 10, ipv4: 11, ipv6: 12,
}

// scanStringRules разбирает StringRules (asString=true) или BytesRules.
func scanStringRules(field string, b []byte, asString bool) ([]Constraint, bool) {
	nums := bytesNums
	if asString {
		nums = stringNums
	}

	var konst, pattern, prefix, suffix, contains any
	var minLen, maxLen any
	var in, notIn []any
	var structural string

	strVal := func(raw []byte) any {
		if asString {
			return string(raw)
		}
		cp := make([]byte, len(raw))
		copy(cp, raw)
		return cp
	}

	for len(b) > 0 {
		tag, wt, n := wire.ReadTag(b)
		if n == 0 {
			return nil, false
		}
		b = b[n:]

		switch {
		case wt == wire.TypeBytes:
			raw, n := wire.ReadBytes(b)
			if n == 0 {
				return nil, false
			}
			b = b[n:]
			switch tag {
			case nums.konst:
				konst = strVal(raw)
			case nums.pattern:
				pattern = string(raw)
			case nums.prefix:
				prefix = strVal(raw)
			case nums.suffix:
				suffix = strVal(raw)
			case nums.contains:
				contains = strVal(raw)
			case nums.in:
				in = append(in, strVal(raw))
			case nums.notIn:
				notIn = append(notIn, strVal(raw))
			}

		case wt == wire.TypeVarint:
			v, n := wire.ReadVarint(b)
			if n == 0 {
				return nil, false
			}
			b = b[n:]
			switch tag {
			case nums.minLen:
				minLen = v
			case nums.maxLen:
				maxLen = v
			case nums.email:
				if v != 0 && nums.email != 0 {
					structural = RuleEmail
				}
			case nums.hostname:
				if v != 0 && nums.hostname != 0 {
					structural = RuleHostname
				}
			case nums.ip:
				if v != 0 {
					structural = RuleIP
				}
			case nums.ipv4:
				if v != 0 {
					structural = RuleIPv4
				}
			case nums.ipv6:
				if v != 0 {
					structural = RuleIPv6
				}
			case nums.uuid:
				if v != 0 && nums.uuid != 0 {
					structural = RuleUUID
				}
			}

		default:
			n = wire.Skip(b, wt)
			if n == 0 {
				return nil, false
			}
			b = b[n:]
		}
	}

	var out []Constraint
	if konst != nil {
		out = append(out, Constraint{field, RuleConst, konst})
	}
	if minLen != nil {
		out = append(out, Constraint{field, RuleMinLen, minLen})
	}
	if maxLen != nil {
		out = append(out, Constraint{field, RuleMaxLen, maxLen})
	}
	if pattern != nil {
		out = append(out, Constraint{field, RulePattern, pattern})
	}
	if prefix != nil {
		out = append(out, Constraint{field, RulePrefix, prefix})
	}
	if suffix != nil {
		out = append(out, Constraint{field, RuleSuffix, suffix})
	}
	if contains != nil {
		out = append(out, Constraint{field, RuleContains, contains})
	}
	if len(in) > 0 {
		out = append(out, Constraint{field, RuleIn, in})
	}
	if len(notIn) > 0 {
		out = append(out, Constraint{field, RuleNotIn, notIn})
	}
	if structural != "" {
		out = append(out, Constraint{field, structural, nil})
	}
	return out, true
}

// scanMessageFieldRules: skip=1, required=2.
func scanMessageFieldRules(field string, b []byte) ([]Constraint, bool) {
	var out []Constraint
	for len(b) > 0 {
		tag, wt, n := wire.ReadTag(b)
		if n == 0 {
			return nil, false
		}
		b = b[n:]

		if tag == 2 && wt == wire.TypeVarint {
			v, n := wire.ReadVarint(b)
			if n == 0 {
				return nil, false
			}
			b = b[n:]
			if v != 0 {
				out = append(out, Constraint{field, RuleRequired, nil})
			}
			continue
		}

		n = wire.Skip(b, wt)
		if n == 0 {
			return nil, false
		}
		b = b[n:]
	}
	return out, true
}

// scanRepeatedRules: min_items=1, max_items=2, unique=3, items=4.
func scanRepeatedRules(field string, b []byte) ([]Constraint, bool) {
	var minItems, maxItems any
	var unique bool
	var items []Constraint

	for len(b) > 0 {
		tag, wt, n := wire.ReadTag(b)
		if n == 0 {
			return nil, false
		}
		b = b[n:]

		switch {
		case tag == 1 && wt == wire.TypeVarint:
			v, n := wire.ReadVarint(b)
			if n == 0 {
				return nil, false
			}
			b = b[n:]
			minItems = v
		case tag == 2 && wt == wire.TypeVarint:
			v, n := wire.ReadVarint(b)
			if n == 0 {
				return nil, false
			}
			b = b[n:]
			maxItems = v
		case tag == 3 && wt == wire.TypeVarint:
			v, n := wire.ReadVarint(b)
			if n == 0 {
				return nil, false
			}
			b = b[n:]
			unique = v != 0
		case tag == 4 && wt == wire.TypeBytes:
			sub, n := wire.ReadBytes(b)
			if n == 0 {
				return nil, false
			}
			b = b[n:]
			cs, ok := scanFieldRules(field, sub)
			if !ok {
				return nil, false
			}
			items = append(items, cs...)
		default:
			n = wire.Skip(b, wt)
			if n == 0 {
				return nil, false
			}
			b = b[n:]
		}
	}

	var out []Constraint
	if minItems != nil {
		out = append(out, Constraint{field, RuleMinItems, minItems})
	}
	if maxItems != nil {
		out = append(out, Constraint{field, RuleMaxItems, maxItems})
	}
	if unique {
		out = append(out, Constraint{field, RuleUnique, nil})
	}
	return append(out, items...), true
}

// hasASCIIFlag ищет в опциях поля флаг ascii (bool расширение).
func hasASCIIFlag(raw []byte) bool {
	b := raw
	for len(b) > 0 {
		tag, wt, n := wire.ReadTag(b)
		if n == 0 {
			return false
		}
		b = b[n:]

		if tag == extASCII && wt == wire.TypeVarint {
			v, n := wire.ReadVarint(b)
			if n == 0 {
				return false
			}
			return v != 0
		}

		n = wire.Skip(b, wt)
		if n == 0 {
			return false
		}
		b = b[n:]
	}
	return false
}

// scanMessageOptions разбирает межполевые правила из опций сообщения.
//
// requires (72101): {field=1, required_field=2};
// mutex (72102): {fields=1, repeated};
// at_least (72103): {n=1, fields=2 repeated}.
func scanMessageOptions(raw []byte) []MessageRule {
	b := raw
	var out []MessageRule
	for len(b) > 0 {
		tag, wt, n := wire.ReadTag(b)
		if n == 0 {
			return out
		}
		b = b[n:]

		if wt != wire.TypeBytes || (tag != extRequires && tag != extMutex && tag != extAtLeast) {
			n = wire.Skip(b, wt)
			if n == 0 {
				return out
			}
			b = b[n:]
			continue
		}

		sub, n := wire.ReadBytes(b)
		if n == 0 {
			return out
		}
		b = b[n:]

		switch tag {
		case extRequires:
			if r, ok := scanRequires(sub); ok {
				out = append(out, r)
			}
		case extMutex:
			if r, ok := scanFieldList(sub, 1); ok {
				out = append(out, MessageRule{Kind: MsgMutex, Fields: r})
			}
		case extAtLeast:
			if r, ok := scanAtLeast(sub); ok {
				out = append(out, r)
			}
		}
	}
	return out
}

func scanRequires(b []byte) (MessageRule, bool) {
	r := MessageRule{Kind: MsgRequires, Fields: make([]string, 2)}
	for len(b) > 0 {
		tag, wt, n := wire.ReadTag(b)
		if n == 0 {
			return r, false
		}
		b = b[n:]

		if wt == wire.TypeBytes && (tag == 1 || tag == 2) {
			raw, n := wire.ReadBytes(b)
			if n == 0 {
				return r, false
			}
			b = b[n:]
			r.Fields[tag-1] = string(raw)
			continue
		}

		n = wire.Skip(b, wt)
		if n == 0 {
			return r, false
		}
		b = b[n:]
	}
	return r, r.Fields[0] != "" && r.Fields[1] != ""
}

func scanAtLeast(b []byte) (MessageRule, bool) {
	r := MessageRule{Kind: MsgAtLeast}
	for len(b) > 0 {
		tag, wt, n := wire.ReadTag(b)
		if n == 0 {
			return r, false
		}
		b = b[n:]

		switch {
		case tag == 1 && wt == wire.TypeVarint:
			v, n := wire.ReadVarint(b)
			if n == 0 {
				return r, false
			}
			b = b[n:]
			r.N = int(v)
		case tag == 2 && wt == wire.TypeBytes:
			raw, n := wire.ReadBytes(b)
			if n == 0 {
				return r, false
			}
			b = b[n:]
			r.Fields = append(r.Fields, string(raw))
		default:
			n = wire.Skip(b, wt)
			if n == 0 {
				return r, false
			}
			b = b[n:]
		}
	}
	return r, r.N > 0 && len(r.Fields) > 0
}

// scanFieldList читает повторяющееся строковое поле fieldNum.
func scanFieldList(b []byte, fieldNum int32) ([]string, bool) {
	var out []string
	for len(b) > 0 {
		tag, wt, n := wire.ReadTag(b)
		if n == 0 {
			return nil, false
		}
		b = b[n:]

		if tag == fieldNum && wt == wire.TypeBytes {
			raw, n := wire.ReadBytes(b)
			if n == 0 {
				return nil, false
			}
			b = b[n:]
			out = append(out, string(raw))
			continue
		}

		n = wire.Skip(b, wt)
		if n == 0 {
			return nil, false
		}
		b = b[n:]
	}
	return out, len(out) > 0
}

// oneofRequired ищет флаг required (1071) в опциях oneof группы.
func oneofRequired(raw []byte) bool {
	b := raw
	for len(b) > 0 {
		tag, wt, n := wire.ReadTag(b)
		if n == 0 {
			return false
		}
		b = b[n:]

		if tag == extOneofRequired && wt == wire.TypeVarint {
			v, n := wire.ReadVarint(b)
			if n == 0 {
				return false
			}
			return v != 0
		}

		n = wire.Skip(b, wt)
		if n == 0 {
			return false
		}
		b = b[n:]
	}
	return false
}

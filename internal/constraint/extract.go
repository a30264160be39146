package constraint

import (
	validatepb "buf.build/gen/go/bufbuild/protovalidate/protocolbuffers/go/buf/validate"
	validate "github.com/envoyproxy/protoc-gen-validate/validate"
	"google.golang.org/protobuf/proto"

	"protodata-gen/internal/schema"
)

// ForField возвращает упорядоченный список правил поля.
//
// Порядок выбора пути:
//  1. типизированный путь validate.rules (protoc-gen-validate);
//  2. типизированный путь buf.validate (protovalidate);
//  3. резервный сканер wire формата по сериализованным опциям.
//
// Порядок правил в результате повторяет порядок объявления полей в
// соответствующем rule сообщении словаря. Функция никогда не возвращает
// ошибку: сбой разбора дает пустой список.
func ForField(f schema.Field) []Constraint {
	var out []Constraint

	var opts proto.Message
	if f.Desc != nil {
		opts = f.Desc.Options()
	}
	switch {
	case opts != nil && proto.HasExtension(opts, validate.E_Rules):
		ext := proto.GetExtension(opts, validate.E_Rules)
		if rules, ok := ext.(*validate.FieldRules); ok && rules != nil {
			out = fromPGV(f, rules)
		}
	case opts != nil && proto.HasExtension(opts, validatepb.E_Field):
		ext := proto.GetExtension(opts, validatepb.E_Field)
		if rules, ok := ext.(*validatepb.FieldRules); ok && rules != nil {
			out = fromBuf(f, rules)
		}
	default:
		out = scanFieldOptions(f)
	}

	// Флаг ascii живет в собственном расширении без Go типов,
	// поэтому читается только сканером.
	if hasASCIIFlag(f.RawOptions) {
		out = append(out, Constraint{Field: f.Name, Rule: RuleASCII})
	}

	return out
}

// ForMessage возвращает межполевые правила сообщения: requires, mutex,
// at_least из опций сообщения и oneof_required из опций oneof групп.
// Словарь межполевых правил внешний, типизированного пути для него нет.
func ForMessage(m *schema.Message) []MessageRule {
	rules := scanMessageOptions(m.RawOptions)

	for _, o := range m.Oneofs {
		if oneofRequired(o.RawOptions) {
			rules = append(rules, MessageRule{
				Kind:   MsgOneofRequired,
				Fields: o.Fields,
			})
		}
	}

	return rules
}

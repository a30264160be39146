// Package constraint извлекает декларативные правила валидации из опций
// полей и сообщений дескриптора.
//
// Поддерживаются два словаря правил: validate.rules (protoc-gen-validate)
// и buf.validate (protovalidate). Извлечение идет по типизированному пути,
// когда Go типы словаря слинкованы в бинарник, и через резервный сканер
// wire формата, когда расширение не резолвится.
//
// Контракт пакета: извлечение никогда не возвращает ошибку. Любой сбой
// разбора опций поля дает пустой список правил для этого поля. Пустой
// список означает "нет контракта", а не "значение валидно".
package constraint

// Имена правил уровня поля. Разбиты по типам:
// числовые, строковые/байтовые и правила repeated полей.
const (
	RuleGt    = "gt"
	RuleGte   = "gte"
	RuleLt    = "lt"
	RuleLte   = "lte"
	RuleConst = "const"
	RuleIn    = "in"
	RuleNotIn = "not_in"

	RuleMinLen   = "min_len"
	RuleMaxLen   = "max_len"
	RulePattern  = "pattern"
	RulePrefix   = "prefix"
	RuleSuffix   = "suffix"
	RuleContains = "contains"
	RuleASCII    = "ascii"
	RuleEmail    = "email"
	RuleHostname = "hostname"
	RuleIP       = "ip"
	RuleIPv4     = "ipv4"
	RuleIPv6     = "ipv6"
	RuleUUID     = "uuid"

	RuleMinItems = "min_items"
	RuleMaxItems = "max_items"
	RuleUnique   = "unique"

	RuleRequired = "required"
)

// Constraint описывает одно правило на поле: владелец, вид правила и параметр.
// Параметр типизирован по виду правила: int64/uint64/float64 для границ,
// string для префиксов и шаблонов, срез для in/not_in, nil для флагов.
type Constraint struct {
	Field string
	Rule  string
	Param any
}

// Виды правил уровня сообщения (межполевые).
type MessageRuleKind string

const (
	MsgRequires      MessageRuleKind = "requires"
	MsgMutex         MessageRuleKind = "mutex"
	MsgAtLeast       MessageRuleKind = "at_least"
	MsgOneofRequired MessageRuleKind = "oneof_required"
)

// MessageRule описывает межполевое правило сообщения.
//
// requires: Fields[0] присутствует => Fields[1] обязано присутствовать.
// mutex: из Fields может быть заполнено не более одного.
// at_least: из Fields должно быть заполнено не менее N.
// oneof_required: ровно один из Fields (участников oneof) должен быть заполнен.
type MessageRule struct {
	Kind   MessageRuleKind
	Fields []string
	N      int
}

// IsRepeatedRule сообщает, относится ли правило к repeated полю целиком,
// а не к отдельным элементам.
func IsRepeatedRule(rule string) bool {
	switch rule {
	case RuleMinItems, RuleMaxItems, RuleUnique:
		return true
	}
	return false
}

// IsStructuralRule сообщает, задает ли правило структурную форму строки
// (для таких правил генератор использует выделенные генераторы форм).
func IsStructuralRule(rule string) bool {
	switch rule {
	case RuleEmail, RuleHostname, RuleIP, RuleIPv4, RuleIPv6, RuleUUID:
		return true
	}
	return false
}

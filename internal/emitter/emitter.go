// Package emitter превращает разобранные правила в упорядоченный список
// абстрактных проверок и умеет отрисовать по нему Go метод Validate.
//
// Порядок проверок фиксирован: для каждого поля в порядке объявления
// идут его правила в порядке объявления в rule сообщении, после всех
// полевых проверок идут межполевые правила сообщения.
package emitter

import (
	"fmt"

	"protodata-gen/internal/constraint"
	"protodata-gen/internal/schema"
)

// Mode задает поведение сгенерированной функции на первом нарушении.
type Mode int

const (
	// ModeEarlyExit: первое нарушение сразу возвращает ошибку.
	ModeEarlyExit Mode = iota
	// ModeCollect: нарушения накапливаются, ошибка возвращается одна.
	ModeCollect
)

// Check описывает одну проверку правила поля.
type Check struct {
	Field string
	Rule  string
	Param any
	Msg   string
}

// CrossCheck описывает межполевую проверку сообщения.
type CrossCheck struct {
	Rule   constraint.MessageRuleKind
	Fields []string
	N      int
	Msg    string
}

// CheckList является результатом эмиссии для одного сообщения.
type CheckList struct {
	Message string
	Mode    Mode
	Fields  []Check
	Cross   []CrossCheck
}

// Emit строит список проверок сообщения. Сообщение без единого правила
// дает nil, если эмиссия не форсирована вызывающим.
func Emit(set *schema.Set, message string, mode Mode, force bool) (*CheckList, error) {
	m, err := set.Message(message)
	if err != nil {
		return nil, err
	}

	list := &CheckList{Message: m.Name, Mode: mode}

	for i := range m.Fields {
		f := &m.Fields[i]
		for _, c := range constraint.ForField(*f) {
			list.Fields = append(list.Fields, Check{
				Field: c.Field,
				Rule:  c.Rule,
				Param: c.Param,
				Msg:   checkMsg(c),
			})
		}
	}

	for _, r := range constraint.ForMessage(m) {
		list.Cross = append(list.Cross, CrossCheck{
			Rule:   r.Kind,
			Fields: r.Fields,
			N:      r.N,
			Msg:    crossMsg(r),
		})
	}

	if len(list.Fields) == 0 && len(list.Cross) == 0 && !force {
		return nil, nil
	}
	return list, nil
}

// checkMsg строит человекочитаемое сообщение нарушения правила поля.
func checkMsg(c constraint.Constraint) string {
	switch c.Rule {
	case constraint.RuleGt:
		return fmt.Sprintf("field %s must be greater than %v", c.Field, c.Param)
	case constraint.RuleGte:
		return fmt.Sprintf("field %s must be at least %v", c.Field, c.Param)
	case constraint.RuleLt:
		return fmt.Sprintf("field %s must be less than %v", c.Field, c.Param)
	case constraint.RuleLte:
		return fmt.Sprintf("field %s must be at most %v", c.Field, c.Param)
	case constraint.RuleConst:
		return fmt.Sprintf("field %s must equal %v", c.Field, c.Param)
	case constraint.RuleIn:
		return fmt.Sprintf("field %s must be one of %v", c.Field, c.Param)
	case constraint.RuleNotIn:
		return fmt.Sprintf("field %s must not be one of %v", c.Field, c.Param)
	case constraint.RuleMinLen:
		return fmt.Sprintf("field %s must be at least %v characters", c.Field, c.Param)
	case constraint.RuleMaxLen:
		return fmt.Sprintf("field %s must be at most %v characters", c.Field, c.Param)
	case constraint.RulePattern:
		return fmt.Sprintf("field %s does not match required pattern", c.Field)
	case constraint.RulePrefix:
		return fmt.Sprintf("field %s must start with %q", c.Field, c.Param)
	case constraint.RuleSuffix:
		return fmt.Sprintf("field %s must end with %q", c.Field, c.Param)
	case constraint.RuleContains:
		return fmt.Sprintf("field %s must contain %q", c.Field, c.Param)
	case constraint.RuleASCII:
		return fmt.Sprintf("field %s must contain only ascii characters", c.Field)
	case constraint.RuleEmail:
		return fmt.Sprintf("field %s must be a valid email address", c.Field)
	case constraint.RuleHostname:
		return fmt.Sprintf("field %s must be a valid hostname", c.Field)
	case constraint.RuleIP:
		return fmt.Sprintf("field %s must be a valid ip address", c.Field)
	case constraint.RuleIPv4:
		return fmt.Sprintf("field %s must be a valid ipv4 address", c.Field)
	case constraint.RuleIPv6:
		return fmt.Sprintf("field %s must be a valid ipv6 address", c.Field)
	case constraint.RuleUUID:
		return fmt.Sprintf("field %s must be a valid uuid", c.Field)
	case constraint.RuleMinItems:
		return fmt.Sprintf("field %s must have at least %v items", c.Field, c.Param)
	case constraint.RuleMaxItems:
		return fmt.Sprintf("field %s must have at most %v items", c.Field, c.Param)
	case constraint.RuleUnique:
		return fmt.Sprintf("field %s must not contain duplicate items", c.Field)
	case constraint.RuleRequired:
		return fmt.Sprintf("field %s is required", c.Field)
	}
	return fmt.Sprintf("field %s violates rule %s", c.Field, c.Rule)
}

// crossMsg строит сообщение нарушения межполевого правила.
func crossMsg(r constraint.MessageRule) string {
	switch r.Kind {
	case constraint.MsgRequires:
		return fmt.Sprintf("field %s requires field %s", r.Fields[0], r.Fields[1])
	case constraint.MsgMutex:
		return fmt.Sprintf("at most one of %v may be set", r.Fields)
	case constraint.MsgAtLeast:
		return fmt.Sprintf("at least %d of %v must be set", r.N, r.Fields)
	case constraint.MsgOneofRequired:
		return fmt.Sprintf("exactly one of %v must be set", r.Fields)
	}
	return fmt.Sprintf("message rule %s violated", r.Kind)
}

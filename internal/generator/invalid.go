package generator

import (
	"fmt"
	"math/rand"

	"protodata-gen/internal/constraint"
	"protodata-gen/internal/record"
	"protodata-gen/internal/schema"
)

// badExemplars содержит заведомо невалидные литералы для структурных и
// шаблонных правил. Нарушение таких правил не пытается портить значение
// с учетом правила: возвращается фиксированный образец. Новое структурное
// правило добавляется одной строкой таблицы.
var badExemplars = map[string]string{
	constraint.RulePrefix:   "zzz-wrong-prefix",
	constraint.RuleSuffix:   "wrong-suffix-zzz",
	constraint.RuleContains: "~",
	constraint.RulePattern:  "\x01\x02\x03",
	constraint.RuleEmail:    "not-an-email",
	constraint.RuleHostname: "-bad..host-",
	constraint.RuleIP:       "999.999.999.999",
	constraint.RuleIPv4:     "999.999.999.999",
	constraint.RuleIPv6:     "g::g::g",
	constraint.RuleUUID:     "not-a-uuid",
}

// GenerateInvalid синтезирует запись, нарушающую ровно одно правило.
//
// Пустое имя поля выбирает цель равномерно среди полей, имеющих хотя бы
// одно правило; пустое имя правила дает равномерный выбор среди правил
// выбранного поля. Имя правила, которого у поля нет, откатывается к равномерному
// выбору среди правил поля. Остальные поля заполняются валидно.
func (g *Generator) GenerateInvalid(message, field, rule string, seed ...int64) (*record.Record, *Violation, error) {
	rng := g.source(seed)

	m, err := g.set.Message(message)
	if err != nil {
		return nil, nil, err
	}

	target, cs, err := g.pickTarget(m, field, rule, rng)
	if err != nil {
		return nil, nil, err
	}

	rec, err := g.valid(message, rng, 0)
	if err != nil {
		return nil, nil, err
	}

	f, err := m.Field(target.Field)
	if err != nil {
		return nil, nil, err
	}

	value, present := g.violate(f, cs, target, rng)
	if present {
		rec.Set(f.Name, value)
	} else {
		rec.Delete(f.Name)
	}

	return rec, &Violation{Field: target.Field, Rule: target.Rule, Param: target.Param}, nil
}

// pickTarget выбирает нарушаемое правило.
func (g *Generator) pickTarget(m *schema.Message, field, rule string, rng *rand.Rand) (constraint.Constraint, []constraint.Constraint, error) {
	if field == "" {
		var constrained []string
		for i := range m.Fields {
			if len(g.fieldRules(m, m.Fields[i].Name)) > 0 {
				constrained = append(constrained, m.Fields[i].Name)
			}
		}
		if len(constrained) == 0 {
			return constraint.Constraint{}, nil, ErrNoConstrainedFields
		}
		field = constrained[rng.Intn(len(constrained))]
	} else if _, err := m.Field(field); err != nil {
		return constraint.Constraint{}, nil, err
	}

	cs := g.fieldRules(m, field)
	if len(cs) == 0 {
		return constraint.Constraint{}, nil, fmt.Errorf("field %q of message %q has no rules to violate", field, m.Name)
	}

	if rule != "" {
		for _, c := range cs {
			if c.Rule == rule {
				return c, cs, nil
			}
		}
		// Запрошенное правило у поля отсутствует: документированный откат
		// к равномерному выбору среди правил поля.
	}
	return cs[rng.Intn(len(cs))], cs, nil
}

// violate строит значение, нарушающее выбранное правило. Второй результат
// false означает отсутствие поля в записи (нарушение required).
func (g *Generator) violate(f *schema.Field, cs []constraint.Constraint, target constraint.Constraint, rng *rand.Rand) (any, bool) {
	if target.Rule == constraint.RuleRequired {
		return nil, false
	}

	if f.Repeated {
		return g.violateRepeated(f, cs, target, rng), true
	}
	return g.violateScalar(f, target, rng), true
}

// violateRepeated нарушает правило repeated поля: правила количества
// меняют число элементов, unique дает дубликаты, правило элемента
// помещает один нарушающий элемент.
func (g *Generator) violateRepeated(f *schema.Field, cs []constraint.Constraint, target constraint.Constraint, rng *rand.Rand) []any {
	var itemCs []constraint.Constraint
	for _, c := range cs {
		if !constraint.IsRepeatedRule(c.Rule) {
			itemCs = append(itemCs, c)
		}
	}
	itemRules := splitRules(itemCs)

	switch target.Rule {
	case constraint.RuleMinItems:
		n := toInt64(target.Param) - 1
		if n < 0 {
			n = 0
		}
		return g.validItems(f, itemRules, n, rng)

	case constraint.RuleMaxItems:
		return g.validItems(f, itemRules, toInt64(target.Param)+1+rng.Int63n(3), rng)

	case constraint.RuleUnique:
		v := g.scalar(f, itemRules, rng)
		return []any{v, v}
	}

	return []any{g.violateScalar(f, target, rng)}
}

func (g *Generator) validItems(f *schema.Field, itemRules ruleSet, n int64, rng *rand.Rand) []any {
	items := make([]any, 0, n)
	for i := int64(0); i < n; i++ {
		items = append(items, g.scalar(f, itemRules, rng))
	}
	return items
}

// violateScalar строит нарушающее скалярное значение.
func (g *Generator) violateScalar(f *schema.Field, target constraint.Constraint, rng *rand.Rand) any {
	if s, ok := badExemplars[target.Rule]; ok {
		return textValue(f.Kind, s)
	}

	offset := rng.Int63n(10)

	switch target.Rule {
	case constraint.RuleGt:
		// Нарушение нижней границы: значение не выше границы.
		return g.pastBound(f.Kind, target.Param, -offset)
	case constraint.RuleGte:
		return g.pastBound(f.Kind, target.Param, -1-offset)
	case constraint.RuleLt:
		return g.pastBound(f.Kind, target.Param, offset)
	case constraint.RuleLte:
		return g.pastBound(f.Kind, target.Param, 1+offset)

	case constraint.RuleConst:
		return perturb(target.Param, 1+offset)

	case constraint.RuleIn:
		set, _ := target.Param.([]any)
		if len(set) == 0 {
			return textValue(f.Kind, "out-of-set")
		}
		// Возмущение может попасть в другой элемент множества; шагаем,
		// пока кандидат не выйдет из него. Кандидаты попарно различны,
		// поэтому шагов не больше размера множества. Множество, покрывающее
		// весь тип (оба булевых значения), нарушить невозможно.
		candidate := perturb(set[0], 1+offset)
		for i := 0; i < len(set) && inSet(set, candidate); i++ {
			candidate = perturb(candidate, int64(i)+1)
		}
		return candidate

	case constraint.RuleNotIn:
		set, _ := target.Param.([]any)
		if len(set) > 0 {
			return set[rng.Intn(len(set))]
		}
		return g.scalar(f, ruleSet{}, rng)

	case constraint.RuleMinLen:
		n := toInt64(target.Param) - 1
		if n < 0 {
			n = 0
		}
		return textValue(f.Kind, g.randomText(int(n), alphabetASCII, rng))

	case constraint.RuleMaxLen:
		return textValue(f.Kind, g.randomText(int(toInt64(target.Param))+10, alphabetASCII, rng))

	case constraint.RuleASCII:
		return textValue(f.Kind, "значение-не-ascii")
	}

	// Неизвестное правило: валидное значение без правил, лучше чем отказ.
	return g.scalar(f, ruleSet{}, rng)
}

// pastBound делает шаг за границу с типизацией по виду поля.
func (g *Generator) pastBound(k schema.Kind, bound any, step int64) any {
	switch {
	case k.Float():
		return toFloat64(bound) + float64(step)
	case k.Unsigned():
		b := toUint64(bound)
		if step < 0 {
			d := uint64(-step)
			if d > b {
				return uint64(0)
			}
			return b - d
		}
		return b + uint64(step)
	default:
		return toInt64(bound) + step
	}
}

// inSet сообщает, равно ли значение одному из элементов множества.
// Сравнение идет по печатному представлению, как в дедупликации.
func inSet(set []any, v any) bool {
	key := fmt.Sprint(v)
	for _, m := range set {
		if fmt.Sprint(m) == key {
			return true
		}
	}
	return false
}

// perturb сдвигает значение const или элемента in на смещение;
// булево значение инвертируется, текст получает суффикс.
func perturb(value any, offset int64) any {
	switch v := value.(type) {
	case bool:
		return !v
	case string:
		return v + "_x"
	case []byte:
		return append(append([]byte(nil), v...), '_', 'x')
	case int64:
		return v + offset
	case uint64:
		return v + uint64(offset)
	case float64:
		return v + float64(offset)
	}
	return value
}

// textValue приводит строковый образец к типу поля.
func textValue(k schema.Kind, s string) any {
	if k == schema.KindBytes {
		return []byte(s)
	}
	return s
}

// Package generator синтезирует значения сообщений по правилам валидации.
//
// Для каждого поля генератор строит допустимую область из извлеченных
// правил и семплирует из нее (валидный режим) либо целенаправленно
// выходит за границы одного выбранного правила (невалидный режим).
// Источник случайности передается явно: переданный в вызов seed создает
// свежий *rand.Rand на один вызов, что делает тройку (схема, сообщение,
// seed) полностью воспроизводимой без глобального состояния.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"protodata-gen/internal/constraint"
	"protodata-gen/internal/options"
	"protodata-gen/internal/record"
	"protodata-gen/internal/schema"
)

// Пределы генерации по умолчанию.
const (
	defaultMinLen   = 1
	defaultMaxLen   = 20
	defaultMinItems = 1
	defaultMaxItems = 5

	// Ширина окна выборки для 64-битных целых областей. Полный интервал
	// int64 дает вырожденно разреженное покрытие, поэтому выборка идет
	// из первых 10^9 значений над нижней границей.
	sampleWindow = 1_000_000_000

	// Глубина рекурсии по вложенным сообщениям; циклические типы за
	// пределом дают отсутствующее поле.
	maxDepth = 8
)

// ErrNoConstrainedFields возвращается невалидным режимом, когда в сообщении
// нет ни одного поля с правилами.
var ErrNoConstrainedFields = errors.New("no constrained fields to violate")

// Violation описывает правило, нарушенное невалидной генерацией.
type Violation struct {
	Field string
	Rule  string
	Param any
}

// Generator держит загруженную схему, наложение подсказок и источник
// случайности. Правила полей извлекаются один раз на сообщение и
// кэшируются на время жизни экземпляра.
type Generator struct {
	set     *schema.Set
	overlay *options.Overlay
	rng     *rand.Rand

	rules map[string]map[string][]constraint.Constraint
}

// Option настраивает генератор при создании.
type Option func(*Generator)

// WithOverlay подключает наложение подсказок генерации.
func WithOverlay(o *options.Overlay) Option {
	return func(g *Generator) { g.overlay = o }
}

// WithRand задает источник случайности для вызовов без seed.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// New создает генератор над загруженным набором дескрипторов.
func New(set *schema.Set, opts ...Option) *Generator {
	g := &Generator{
		set:   set,
		rules: make(map[string]map[string][]constraint.Constraint),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return g
}

// GenerateValid синтезирует запись, удовлетворяющую всем правилам
// сообщения. Переданный seed делает результат воспроизводимым.
func (g *Generator) GenerateValid(message string, seed ...int64) (*record.Record, error) {
	return g.valid(message, g.source(seed), 0)
}

// source возвращает источник случайности вызова: свежий при заданном
// seed, общий для генератора иначе.
func (g *Generator) source(seed []int64) *rand.Rand {
	if len(seed) > 0 {
		return rand.New(rand.NewSource(seed[0]))
	}
	return g.rng
}

func (g *Generator) valid(message string, rng *rand.Rand, depth int) (*record.Record, error) {
	m, err := g.set.Message(message)
	if err != nil {
		return nil, err
	}

	skip := g.oneofSkips(m, rng)

	rec := record.New()
	for i := range m.Fields {
		f := &m.Fields[i]
		if skip[f.Name] {
			continue
		}
		value, present := g.fieldValue(m, f, rng, depth)
		if present {
			rec.Set(f.Name, value)
		}
	}
	return rec, nil
}

// oneofSkips выбирает по одному активному участнику каждой oneof группы;
// остальные участники в запись не попадают.
func (g *Generator) oneofSkips(m *schema.Message, rng *rand.Rand) map[string]bool {
	if len(m.Oneofs) == 0 {
		return nil
	}
	skip := make(map[string]bool)
	for _, o := range m.Oneofs {
		if len(o.Fields) == 0 {
			continue
		}
		keep := o.Fields[rng.Intn(len(o.Fields))]
		for _, name := range o.Fields {
			if name != keep {
				skip[name] = true
			}
		}
	}
	return skip
}

// fieldValue синтезирует значение одного поля с учетом кардинальности.
func (g *Generator) fieldValue(m *schema.Message, f *schema.Field, rng *rand.Rand, depth int) (any, bool) {
	cs := g.fieldRules(m, f.Name)
	hints := g.overlay.Merge(shortName(m.Name), f.Name)

	if f.Repeated {
		return g.repeated(f, cs, hints, rng, depth), true
	}
	if f.Kind == schema.KindMessage {
		return g.nested(f, rng, depth)
	}
	return g.scalar(f, splitRules(cs), rng), true
}

// nested рекурсивно синтезирует вложенное сообщение. Неразрешимый тип
// дает отсутствующее поле, не ошибку.
func (g *Generator) nested(f *schema.Field, rng *rand.Rand, depth int) (any, bool) {
	if f.MessageType == "" || depth >= maxDepth {
		return nil, false
	}
	sub, err := g.valid(f.MessageType, rng, depth+1)
	if err != nil {
		return nil, false
	}
	return sub, true
}

// repeated синтезирует срез значений: число элементов равномерно в
// [min_items, max_items] (по умолчанию [1, 5]) с учетом подсказки
// max_count; правила уровня repeated исключаются из правил элементов.
func (g *Generator) repeated(f *schema.Field, cs []constraint.Constraint, hints map[string]any, rng *rand.Rand, depth int) []any {
	rs := splitRules(cs)

	lo, hi := int64(defaultMinItems), int64(defaultMaxItems)
	if rs.minItems != nil {
		lo = toInt64(rs.minItems)
	}
	if rs.maxItems != nil {
		hi = toInt64(rs.maxItems)
	}
	if limit, ok := options.Int(hints, "max_count"); ok && hi > limit {
		hi = limit
	}
	if hi < lo {
		hi = lo
	}

	n := lo + rng.Int63n(hi-lo+1)

	var itemCs []constraint.Constraint
	for _, c := range cs {
		if !constraint.IsRepeatedRule(c.Rule) {
			itemCs = append(itemCs, c)
		}
	}
	itemRules := splitRules(itemCs)

	items := make([]any, 0, n)
	for i := int64(0); i < n; i++ {
		if f.Kind == schema.KindMessage {
			if v, ok := g.nested(f, rng, depth); ok {
				items = append(items, v)
			}
			continue
		}
		items = append(items, g.scalar(f, itemRules, rng))
	}

	// Сообщения не дедуплицируются: равенство вложенных записей не определено.
	if rs.unique && f.Kind != schema.KindMessage {
		items = g.dedup(f, items, itemRules, lo, rng)
	}
	return items
}

// dedup убирает равные элементы и добирает новые до нижней границы
// количества. Строки при доборе получают числовой суффикс, чтобы добор
// гарантированно завершался.
func (g *Generator) dedup(f *schema.Field, items []any, itemRules ruleSet, minItems int64, rng *rand.Rand) []any {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, v := range items {
		key := fmt.Sprint(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}

	for i := 0; int64(len(out)) < minItems; i++ {
		v := g.scalar(f, itemRules, rng)
		if s, ok := v.(string); ok {
			v = fmt.Sprintf("%s%d", s, i)
		}
		key := fmt.Sprint(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// scalar синтезирует одно скалярное значение по разобранным правилам.
func (g *Generator) scalar(f *schema.Field, rs ruleSet, rng *rand.Rand) any {
	// const и in имеют приоритет над границами: значение берется точно.
	if rs.konst != nil {
		return rs.konst
	}
	if len(rs.in) > 0 {
		return rs.in[rng.Intn(len(rs.in))]
	}

	switch {
	case f.Kind == schema.KindBool:
		return rng.Intn(2) == 1
	case f.Kind == schema.KindEnum:
		return g.enumValue(f, rng)
	case f.Kind == schema.KindString:
		return g.text(rs, rng, true).(string)
	case f.Kind == schema.KindBytes:
		return g.text(rs, rng, false)
	case f.Kind.Float():
		return g.sampleFloat(rs, rng)
	case f.Kind.Unsigned():
		return g.sampleUnsigned(f.Kind, rs, rng)
	default:
		return g.sampleSigned(f.Kind, rs, rng)
	}
}

// enumValue выбирает случайное объявленное значение enum типа.
func (g *Generator) enumValue(f *schema.Field, rng *rand.Rand) any {
	ed := f.Desc.Enum()
	if ed == nil || ed.Values().Len() == 0 {
		return int64(0)
	}
	vals := ed.Values()
	return int64(vals.Get(rng.Intn(vals.Len())).Number())
}

// fieldRules возвращает кэшированные правила поля.
func (g *Generator) fieldRules(m *schema.Message, field string) []constraint.Constraint {
	byField, ok := g.rules[m.Name]
	if !ok {
		byField = make(map[string][]constraint.Constraint, len(m.Fields))
		for i := range m.Fields {
			byField[m.Fields[i].Name] = constraint.ForField(m.Fields[i])
		}
		g.rules[m.Name] = byField
	}
	return byField[field]
}

// shortName убирает пакетный префикс из полного имени сообщения:
// шаблоны наложения пишутся по короткому имени.
func shortName(full string) string {
	if i := strings.LastIndexByte(full, '.'); i >= 0 {
		return full[i+1:]
	}
	return full
}

// ruleSet группирует правила одного поля для доступа по виду.
type ruleSet struct {
	konst any
	in    []any
	notIn []any

	gt, gte, lt, lte any

	minLen, maxLen           any
	prefix, suffix, contains string
	hasPrefix, hasSuffix     bool
	hasContains              bool
	ascii                    bool
	structural               string

	minItems, maxItems any
	unique             bool
}

// splitRules раскладывает упорядоченный список правил в ruleSet.
func splitRules(cs []constraint.Constraint) ruleSet {
	var rs ruleSet
	for _, c := range cs {
		switch c.Rule {
		case constraint.RuleConst:
			rs.konst = c.Param
		case constraint.RuleIn:
			rs.in, _ = c.Param.([]any)
		case constraint.RuleNotIn:
			rs.notIn, _ = c.Param.([]any)
		case constraint.RuleGt:
			rs.gt = c.Param
		case constraint.RuleGte:
			rs.gte = c.Param
		case constraint.RuleLt:
			rs.lt = c.Param
		case constraint.RuleLte:
			rs.lte = c.Param
		case constraint.RuleMinLen:
			rs.minLen = c.Param
		case constraint.RuleMaxLen:
			rs.maxLen = c.Param
		case constraint.RulePrefix:
			rs.prefix, rs.hasPrefix = asString(c.Param)
		case constraint.RuleSuffix:
			rs.suffix, rs.hasSuffix = asString(c.Param)
		case constraint.RuleContains:
			rs.contains, rs.hasContains = asString(c.Param)
		case constraint.RuleASCII:
			rs.ascii = true
		case constraint.RuleMinItems:
			rs.minItems = c.Param
		case constraint.RuleMaxItems:
			rs.maxItems = c.Param
		case constraint.RuleUnique:
			rs.unique = true
		default:
			if constraint.IsStructuralRule(c.Rule) {
				rs.structural = c.Rule
			}
		}
	}
	return rs
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	}
	return "", false
}

// toInt64 приводит параметр правила к int64.
func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case uint64:
		return int64(n)
	case float64:
		return int64(n)
	case int:
		return int64(n)
	}
	return 0
}

// toUint64 приводит параметр правила к uint64.
func toUint64(v any) uint64 {
	switch n := v.(type) {
	case uint64:
		return n
	case int64:
		if n < 0 {
			return 0
		}
		return uint64(n)
	case float64:
		if n < 0 {
			return 0
		}
		return uint64(n)
	}
	return 0
}

// toFloat64 приводит параметр правила к float64.
func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return 0
}

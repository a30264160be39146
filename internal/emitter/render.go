package emitter

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"protodata-gen/internal/constraint"
	"protodata-gen/internal/schema"
)

// Правила, для которых отрисовка Go кода не реализована, пропускаются:
// абстрактный список проверок их сохраняет, сгенерированный метод нет.
var renderable = map[string]bool{
	constraint.RuleGt:       true,
	constraint.RuleGte:      true,
	constraint.RuleLt:       true,
	constraint.RuleLte:      true,
	constraint.RuleConst:    true,
	constraint.RuleMinLen:   true,
	constraint.RuleMaxLen:   true,
	constraint.RulePrefix:   true,
	constraint.RuleSuffix:   true,
	constraint.RuleContains: true,
	constraint.RulePattern:  true,
	constraint.RuleEmail:    true,
	constraint.RuleMinItems: true,
	constraint.RuleMaxItems: true,
	constraint.RuleRequired: true,
}

type patternVar struct {
	Name    string
	Pattern string
}

// RenderGo отрисовывает по списку проверок исходник Go с методом Validate.
// Результат прогоняется через go/format; при сбое форматирования
// возвращается неформатированный текст.
func RenderGo(set *schema.Set, list *CheckList, pkg string) ([]byte, error) {
	if list == nil {
		return nil, nil
	}
	m, err := set.Message(list.Message)
	if err != nil {
		return nil, err
	}

	typeName := goName(shortName(list.Message))
	receiver := receiverName(typeName)

	var (
		blocks       []string
		patterns     []patternVar
		needsStrings = list.Mode == ModeCollect
		needsRegexp  bool
		needsEmail   bool
	)

	for _, c := range list.Fields {
		if !renderable[c.Rule] {
			continue
		}
		f, err := m.Field(c.Field)
		if err != nil {
			continue
		}

		cond := ""
		switch c.Rule {
		case constraint.RulePattern:
			v := patternVar{
				Name:    fmt.Sprintf("re%s%s", typeName, goName(c.Field)),
				Pattern: fmt.Sprintf("%q", c.Param),
			}
			patterns = append(patterns, v)
			needsRegexp = true
			cond = fmt.Sprintf("!%s.MatchString(%s.%s)", v.Name, receiver, goName(c.Field))
		case constraint.RuleEmail:
			needsEmail = true
			needsRegexp = true
			cond = fmt.Sprintf("!isValidEmail(%s.%s)", receiver, goName(c.Field))
		case constraint.RulePrefix:
			needsStrings = true
			cond = fmt.Sprintf("!strings.HasPrefix(%s.%s, %q)", receiver, goName(c.Field), c.Param)
		case constraint.RuleSuffix:
			needsStrings = true
			cond = fmt.Sprintf("!strings.HasSuffix(%s.%s, %q)", receiver, goName(c.Field), c.Param)
		case constraint.RuleContains:
			needsStrings = true
			cond = fmt.Sprintf("!strings.Contains(%s.%s, %q)", receiver, goName(c.Field), c.Param)
		default:
			cond = scalarCond(receiver, f, c)
		}
		if cond == "" {
			continue
		}

		block, err := execute(checkBlockTmpl, map[string]any{
			"Cond": cond,
			"Fail": failCode(list.Mode, c.Msg),
		})
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	for _, c := range list.Cross {
		block, err := crossBlock(receiver, m, c, list.Mode)
		if err != nil {
			return nil, err
		}
		if block != "" {
			blocks = append(blocks, block)
		}
	}

	var buf bytes.Buffer
	err = fileHeaderTmpl.Execute(&buf, map[string]any{
		"Message":      list.Message,
		"Package":      pkg,
		"NeedsRegexp":  needsRegexp,
		"NeedsStrings": needsStrings,
		"PatternVars":  patterns,
	})
	if err != nil {
		return nil, fmt.Errorf("header template: %w", err)
	}

	err = validateMethodTmpl.Execute(&buf, map[string]any{
		"Receiver": receiver,
		"GoName":   typeName,
		"Collect":  list.Mode == ModeCollect,
		"Blocks":   blocks,
	})
	if err != nil {
		return nil, fmt.Errorf("method template: %w", err)
	}

	if needsEmail {
		if err := isValidEmailTmpl.Execute(&buf, nil); err != nil {
			return nil, fmt.Errorf("email template: %w", err)
		}
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), nil
	}
	return formatted, nil
}

// scalarCond строит условие нарушения для правил границ, константы,
// длины, количества и required.
func scalarCond(receiver string, f *schema.Field, c Check) string {
	access := receiver + "." + goName(f.Name)

	switch c.Rule {
	case constraint.RuleGt:
		return fmt.Sprintf("%s <= %v", access, c.Param)
	case constraint.RuleGte:
		return fmt.Sprintf("%s < %v", access, c.Param)
	case constraint.RuleLt:
		return fmt.Sprintf("%s >= %v", access, c.Param)
	case constraint.RuleLte:
		return fmt.Sprintf("%s > %v", access, c.Param)
	case constraint.RuleConst:
		if s, ok := c.Param.(string); ok {
			return fmt.Sprintf("%s != %q", access, s)
		}
		return fmt.Sprintf("%s != %v", access, c.Param)
	case constraint.RuleMinLen, constraint.RuleMinItems:
		return fmt.Sprintf("len(%s) < %v", access, c.Param)
	case constraint.RuleMaxLen, constraint.RuleMaxItems:
		return fmt.Sprintf("len(%s) > %v", access, c.Param)
	case constraint.RuleRequired:
		if f.Kind == schema.KindMessage {
			return access + " == nil"
		}
		return "!(" + presentExpr(receiver, f) + ")"
	}
	return ""
}

// crossBlock строит блок межполевой проверки со счетчиком присутствия.
func crossBlock(receiver string, m *schema.Message, c CrossCheck, mode Mode) (string, error) {
	if c.Rule == constraint.MsgRequires {
		if len(c.Fields) < 2 {
			return "", nil
		}
		a, errA := m.Field(c.Fields[0])
		b, errB := m.Field(c.Fields[1])
		if errA != nil || errB != nil {
			return "", nil
		}
		return execute(checkBlockTmpl, map[string]any{
			"Cond": fmt.Sprintf("%s && !(%s)", presentExpr(receiver, a), presentExpr(receiver, b)),
			"Fail": failCode(mode, c.Msg),
		})
	}

	var present []string
	for _, name := range c.Fields {
		f, err := m.Field(name)
		if err != nil {
			continue
		}
		present = append(present, presentExpr(receiver, f))
	}
	if len(present) == 0 {
		return "", nil
	}

	var cond string
	switch c.Rule {
	case constraint.MsgMutex:
		cond = "n > 1"
	case constraint.MsgAtLeast:
		cond = fmt.Sprintf("n < %d", c.N)
	case constraint.MsgOneofRequired:
		cond = "n != 1"
	default:
		return "", nil
	}

	return execute(countBlockTmpl, map[string]any{
		"Present": present,
		"Cond":    cond,
		"Fail":    failCode(mode, c.Msg),
	})
}

// presentExpr строит выражение "поле заполнено" по виду поля.
func presentExpr(receiver string, f *schema.Field) string {
	access := receiver + "." + goName(f.Name)
	switch {
	case f.Repeated, f.Kind == schema.KindBytes:
		return fmt.Sprintf("len(%s) > 0", access)
	case f.Kind == schema.KindString:
		return access + ` != ""`
	case f.Kind == schema.KindMessage:
		return access + " != nil"
	case f.Kind == schema.KindBool:
		return access
	default:
		return access + " != 0"
	}
}

// failCode возвращает реакцию на нарушение по режиму функции.
func failCode(mode Mode, msg string) string {
	if mode == ModeCollect {
		return fmt.Sprintf("errs = append(errs, %q)", msg)
	}
	return fmt.Sprintf("return fmt.Errorf(%q)", msg)
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// goName переводит snake_case имя в экспортируемое Go имя.
func goName(s string) string {
	var sb strings.Builder
	up := true
	for _, r := range s {
		if r == '_' || r == '.' {
			up = true
			continue
		}
		if up {
			sb.WriteRune(toUpper(r))
			up = false
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

// receiverName выбирает имя receiver по первой букве типа;
// буква p обходится, чтобы не затенять частое имя пакета.
func receiverName(goTypeName string) string {
	if goTypeName == "" {
		return "m"
	}
	first := strings.ToLower(goTypeName[:1])
	if first == "p" {
		return "m"
	}
	return first
}

func shortName(full string) string {
	if i := strings.LastIndexByte(full, '.'); i >= 0 {
		return full[i+1:]
	}
	return full
}

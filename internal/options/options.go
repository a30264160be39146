// Package options разбирает сопроводительный текстовый файл подсказок
// генерации и сливает их для конкретной пары (сообщение, поле).
//
// Формат файла построчный:
//
//	<шаблон> ключ:значение ключ:значение ...
//
// Шаблон выбирает адресата подсказок: `*` означает все поля, `<msg>.*`
// все поля сообщения, `*.<field>` одноименные поля всех сообщений,
// `<msg>.<field>` конкретное поле. Комментарии `//`, `#` и `/*...*/`
// вырезаются до разбора.
package options

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Overlay хранит подсказки, сгруппированные по шаблонам.
type Overlay struct {
	patterns map[string]map[string]any
}

// Parse разбирает текст подсказок. Строки без шаблона или без пар
// ключ:значение пропускаются, повторное вхождение шаблона дополняет
// ранее накопленные ключи.
func Parse(text string) (*Overlay, error) {
	o := &Overlay{patterns: make(map[string]map[string]any)}

	for _, line := range strings.Split(stripComments(text), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		pattern := fields[0]
		kv := o.patterns[pattern]
		if kv == nil {
			kv = make(map[string]any)
			o.patterns[pattern] = kv
		}

		for _, pair := range fields[1:] {
			key, value, ok := strings.Cut(pair, ":")
			if !ok || key == "" {
				return nil, fmt.Errorf("bad key:value pair %q in line %q", pair, strings.TrimSpace(line))
			}
			kv[key] = coerce(value)
		}
	}

	return o, nil
}

// ParseFile читает файл подсказок и вызывает Parse.
func ParseFile(path string) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}
	return Parse(string(data))
}

// Merge возвращает подсказки для поля сообщения. Четыре шаблона
// накладываются от наименее специфичного к наиболее специфичному:
// `*`, `<msg>.*`, `*.<field>`, `<msg>.<field>`; поздний ключ
// перезаписывает ранний с тем же именем.
func (o *Overlay) Merge(message, field string) map[string]any {
	out := make(map[string]any)
	if o == nil {
		return out
	}

	for _, pattern := range []string{
		"*",
		message + ".*",
		"*." + field,
		message + "." + field,
	} {
		for k, v := range o.patterns[pattern] {
			out[k] = v
		}
	}
	return out
}

// Int возвращает целочисленную подсказку из уже слитого словаря.
func Int(hints map[string]any, key string) (int64, bool) {
	v, ok := hints[key].(int64)
	return v, ok
}

// coerce приводит значение: целые числа становятся int64, остальное
// остается текстом.
func coerce(value string) any {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	return value
}

// stripComments вырезает комментарии `/*...*/` (в том числе многострочные),
// затем построчно `//...` и `#...`.
func stripComments(text string) string {
	for {
		start := strings.Index(text, "/*")
		if start < 0 {
			break
		}
		end := strings.Index(text[start+2:], "*/")
		if end < 0 {
			text = text[:start]
			break
		}
		text = text[:start] + " " + text[start+2+end+2:]
	}

	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

package emitter

import "text/template"

// Шаблоны генерации Go кода проверок. Каждый шаблон условия дает
// выражение "правило нарушено"; обертку if и код реакции на нарушение
// добавляет сборка метода.
const (
	fileHeaderTemplate = `// Code generated by protodata-gen. DO NOT EDIT.
// source message: {{.Message}}

package {{.Package}}

import (
	"fmt"
{{- if .NeedsRegexp}}
	"regexp"
{{- end}}
{{- if .NeedsStrings}}
	"strings"
{{- end}}
)

{{range .PatternVars}}var {{.Name}} = regexp.MustCompile({{.Pattern}})
{{end}}
`

	validateMethodTemplate = `// Validate проверяет сообщение по правилам схемы.
func ({{.Receiver}} *{{.GoName}}) Validate() error {
{{- if .Collect}}
	var errs []string
{{- end}}
{{- range .Blocks}}
{{.}}
{{- end}}
{{- if .Collect}}
	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", strings.Join(errs, "; "))
	}
{{- end}}
	return nil
}
`

	checkBlockTemplate = `	if {{.Cond}} {
		{{.Fail}}
	}`

	countBlockTemplate = `	{
		n := 0
{{- range .Present}}
		if {{.}} {
			n++
		}
{{- end}}
		if {{.Cond}} {
			{{.Fail}}
		}
	}`

	isValidEmailTemplate = `
var emailRegexp = regexp.MustCompile(` + "`" + `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$` + "`" + `)

// isValidEmail проверяет строку на форму адреса электронной почты.
func isValidEmail(s string) bool {
	return emailRegexp.MatchString(s)
}
`
)

var (
	fileHeaderTmpl     = template.Must(template.New("fileHeader").Parse(fileHeaderTemplate))
	validateMethodTmpl = template.Must(template.New("validateMethod").Parse(validateMethodTemplate))
	checkBlockTmpl     = template.Must(template.New("checkBlock").Parse(checkBlockTemplate))
	countBlockTmpl     = template.Must(template.New("countBlock").Parse(countBlockTemplate))
	isValidEmailTmpl   = template.Must(template.New("isValidEmail").Parse(isValidEmailTemplate))
)

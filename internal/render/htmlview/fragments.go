package htmlview

import (
	"bytes"
	"html/template"

	"nlquery/cli/internal/backend"
	"nlquery/cli/internal/i18n"
	"nlquery/cli/internal/results"
)

var fragments = template.Must(template.New("fragments").Parse(`
{{define "sql"}}<pre class="sql-code">{{.}}</pre>{{end}}
{{define "results-empty"}}<p>{{.}}</p>{{end}}
{{define "results-table"}}<table class="results-table"><thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead><tbody>{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody></table>{{end}}
{{define "results-raw"}}<pre>{{.}}</pre>{{end}}
{{define "explanation"}}<p>{{.Summary}}</p><ul>{{range .Details}}<li class="explanation-item">{{.}}</li>{{end}}</ul>{{end}}
{{define "validation"}}<div class="validation-result {{.Class}}"><p><strong>{{.Label}}</strong>: {{.Text}}</p></div>{{end}}
{{define "error"}}<div class="error">{{.}}</div>{{end}}
`))

func execute(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		// Fall back to an escaped error block; the templates are static so
		// this only happens on programming errors.
		return template.HTML(`<div class="error">` + template.HTMLEscapeString(err.Error()) + `</div>`)
	}
	return template.HTML(buf.String())
}

// SQLFragment renders generated SQL as preformatted text.
func SQLFragment(sql string) template.HTML { return execute("sql", sql) }

// ResultsFragment renders a result set as a paragraph, a table or
// preformatted JSON.
func ResultsFragment(set results.Set) template.HTML {
	switch set.Kind {
	case results.Table:
		return execute("results-table", set)
	case results.Raw:
		return execute("results-raw", set.Raw)
	default:
		return execute("results-empty", i18n.T("results.empty"))
	}
}

// ExplanationFragment renders the summary followed by the detail list.
func ExplanationFragment(e backend.Explanation) template.HTML {
	return execute("explanation", e)
}

// ValidationFragment renders the valid/invalid banner.
func ValidationFragment(v backend.Validation) template.HTML {
	data := struct{ Class, Label, Text string }{Class: "invalid", Label: i18n.T("validation.invalid"), Text: v.Text()}
	if v.Valid {
		data.Class, data.Label = "valid", i18n.T("validation.valid")
	}
	return execute("validation", data)
}

// ErrorFragment renders an error block.
func ErrorFragment(msg string) template.HTML { return execute("error", msg) }

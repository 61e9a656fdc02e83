package httpapi

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"money": func(currency string, v float64) string {
		return fmt.Sprintf("%.2f %s", v, currency)
	},
	"minutes": func(d time.Duration) int { return int(d / time.Minute) },
	"title": func(s any) string {
		str := strings.ReplaceAll(fmt.Sprint(s), "_", " ")
		if str == "" {
			return str
		}
		return strings.ToUpper(str[:1]) + str[1:]
	},
	"deref": func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	},
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

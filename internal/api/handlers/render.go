package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/m04kA/NBNE-SignsBooking/internal/domain"
	"github.com/m04kA/NBNE-SignsBooking/pkg/money"
)

// Страницы сайта
const (
	PageHome       = "home"
	PageNewBooking = "new_booking"
	PageSuccess    = "success"
	PageCancel     = "cancel"
	PageLookup     = "lookup"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"pence":  money.FormatPence,
	"pounds": domain.FormatPounds,
	"year":   func() int { return time.Now().Year() },
}

var pages = mustParsePages(PageHome, PageNewBooking, PageSuccess, PageCancel, PageLookup)

func mustParsePages(names ...string) map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(names))
	for _, name := range names {
		parsed[name] = template.Must(
			template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"),
		)
	}
	return parsed
}

// RenderPage рендерит страницу целиком в буфер, затем пишет ответ
// При ошибке шаблона ответ не начинается, и вызывающий может отдать 500
func RenderPage(w http.ResponseWriter, status int, page string, data interface{}) error {
	tmpl, ok := pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("failed to render page %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

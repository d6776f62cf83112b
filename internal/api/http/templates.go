package http

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"

	"github.com/spec-kit/intern-dashboard/internal/domain"
	"github.com/spec-kit/intern-dashboard/internal/views"
)

//go:embed templates
var templateFS embed.FS

// NewViewEngine loads the embedded page templates.
func NewViewEngine() *html.Engine {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("score", domain.FormatScore)
	engine.AddFunc("statuses", func() []domain.TaskStatus { return domain.TaskStatuses })
	engine.AddFunc("priorities", func() []domain.TaskPriority { return domain.TaskPriorities })
	engine.AddFunc("query", func(q views.TableQuery) template.URL {
		return template.URL(q.Encode())
	})
	engine.AddFunc("label", func(v any) string {
		switch t := v.(type) {
		case domain.Role:
			return t.Label()
		case domain.TaskStatus:
			return humanize(string(t))
		case domain.TaskPriority:
			return humanize(string(t))
		case string:
			return humanize(t)
		default:
			return ""
		}
	})
	return engine
}

// humanize turns IN_PROGRESS into "In progress".
func humanize(s string) string {
	s = strings.ToLower(strings.ReplaceAll(s, "_", " "))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

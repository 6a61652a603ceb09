package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

type EventInfo struct {
	Name         string
	Date         string
	Venue        string
	SupportEmail string
}

type RegisterPage struct {
	Event         EventInfo
	Fee           string
	Form          any
	Errors        map[string]string
	GradeOptions  []string
	GenderOptions []string
	TermsAccepted bool
	TermsError    string
	Message       string
	MessageKind   string // error | success | info
}

type SuccessPage struct {
	Event     EventInfo
	Message   string
	PaymentID string
}

type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	t, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: t}, nil
}

func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Render menulis template `name` dengan status tertentu.
func (r *Renderer) Render(c *fiber.Ctx, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(status).Send(buf.Bytes())
}

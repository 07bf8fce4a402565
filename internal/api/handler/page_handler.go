package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gazette-dev/gazette/internal/core/domain"
)

// The flags value is rendered in a JavaScript context, where html/template
// emits it as escaped JSON.
var bootstrapPage = template.Must(template.New("index").Parse(`<!DOCTYPE html>` +
	`<html><head><meta charset="utf-8"><title>{{.Title}}</title>` +
	`<script src="/elm.js"></script></head>` +
	`<body><script>var app=Elm.Main.init({flags:{{.Flags}}});</script></body></html>`))

type pageFlags struct {
	Username *string         `json:"username"`
	Roles    []domain.RoleID `json:"roles"`
	CanWrite bool            `json:"canWrite"`
}

// PageHandler renders the single-page application bootstrap document.
type PageHandler struct {
	title string
}

func NewPageHandler(title string) *PageHandler {
	return &PageHandler{title: title}
}

// Index handles GET / with the caller's identity as SPA flags.
func (h *PageHandler) Index(c echo.Context) error {
	id := identity(c)
	flags := pageFlags{Roles: roleList(nil)}
	if p, ok := id.Principal(); ok {
		flags.Username = &p.Username
		flags.Roles = roleList(p.Roles)
		flags.CanWrite = domain.CanAuthor(id)
	}

	var buf bytes.Buffer
	if err := bootstrapPage.Execute(&buf, struct {
		Title string
		Flags pageFlags
	}{Title: h.title, Flags: flags}); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

// all: keeps the _partial files, which a plain directory embed skips.
//
//go:embed all:templates
var templateFS embed.FS

var pageNames = []string{
	"home-anon.html",
	"home.html",
	"signup.html",
	"login.html",
	"error.html",
	"users/index.html",
	"users/show.html",
	"users/following.html",
	"users/followers.html",
	"users/likes.html",
	"users/edit.html",
	"messages/new.html",
	"messages/show.html",
}

var partials = []string{
	"templates/base.html",
	"templates/_messages.html",
	"templates/_user_cards.html",
	"templates/users/_profile.html",
}

// Views holds one parsed template set per page, each combining the page
// with the base layout and the shared partials.
type Views struct {
	pages map[string]*template.Template
}

func LoadViews() (*Views, error) {
	v := &Views{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		files := append(append([]string{}, partials...), "templates/"+name)
		tmpl, err := template.New(name).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("error parsing page template %s: %w", name, err)
		}
		v.pages[name] = tmpl
	}
	return v, nil
}

// Execute renders page name into w. Output is buffered so a template error
// never leaves a half-written page.
func (v *Views) Execute(w io.Writer, name string, data any) error {
	tmpl, ok := v.pages[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("error executing template %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

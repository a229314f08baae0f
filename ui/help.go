package ui

import (
	"html/template"
	"net/http"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// handleHelp renders the embedded user guide
func (a *App) handleHelp(w http.ResponseWriter, r *http.Request) {
	source, err := embeddedFiles.ReadFile("docs/help.md")
	if err != nil {
		a.log.Error("reading help document: %v", err)
		http.Error(w, "help unavailable", http.StatusInternalServerError)
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	rendered := markdown.ToHTML(source, p, renderer)

	data := struct {
		Content template.HTML
	}{Content: template.HTML(rendered)}

	if err := a.templates.ExecuteTemplate(w, "help.html", data); err != nil {
		a.log.Error("rendering help: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

package topics

import (
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics for the terminal. Other content is
// passed through.
type GlamourRenderer struct {
	Style string // standard style name such as "dark" or "notty"; empty auto-detects
	Width int    // word wrap width, 0 keeps glamour's default
}

func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{}
}

func (r *GlamourRenderer) Render(content, ext string) string {
	if ext != ".md" {
		return content
	}

	options := []glamour.TermRendererOption{}
	if r.Style != "" {
		options = append(options, glamour.WithStandardStyle(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

package topics

// Renderer formats topic content for display. ext is the extension of the
// topic file, including the dot.
type Renderer interface {
	Render(content, ext string) string
}

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

func (PlainRenderer) Render(content, ext string) string {
	return content
}

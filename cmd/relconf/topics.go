package relconf

import (
	"embed"
	"io/fs"
	"os"

	"github.com/kfkonrad/relconf/pkg/cobrax/topics"
	"github.com/kfkonrad/relconf/pkg/ui"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// topicRenderer renders markdown with glamour only when colored output is
// in effect for stdout
type topicRenderer struct {
	root *cobra.Command
}

func (r topicRenderer) Render(content, ext string) string {
	if ui.Resolve(ColorFormat(r.root), os.Stdout) != ui.FormatTerminal {
		return content
	}
	return topics.NewGlamourRenderer().Render(content, ext)
}

func installTopics(root *cobra.Command) error {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return err
	}
	m, err := topics.Load(sub, topics.Options{Renderer: topicRenderer{root: root}})
	if err != nil {
		return err
	}
	m.Install(root)
	return nil
}

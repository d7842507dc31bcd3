// Package topics adds free-form help topics to a Cobra application. Topics
// are markdown or text files read from an fs.FS, usually an embedded
// directory, and are shown by `<app> help <topic>` next to command help.
package topics

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is one help document
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Options configures a Manager
type Options struct {
	// Extensions lists the file extensions treated as topics.
	// Defaults to .md and .txt.
	Extensions []string

	// Renderer formats topic content. Defaults to PlainRenderer.
	Renderer Renderer
}

// Manager holds the topics loaded from a filesystem
type Manager struct {
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// Load reads every topic file below the root of fsys
func Load(fsys fs.FS, opts Options) (*Manager, error) {
	m := &Manager{
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".md", ".txt"}
	}
	if m.renderer == nil {
		m.renderer = PlainRenderer{}
	}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !m.supported(path.Ext(p)) {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		m.topics[name] = &Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load help topics: %w", err)
	}
	return m, nil
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Lookup finds a topic by name. Flag spellings such as --dry-run match the
// topic dry-run.
func (m *Manager) Lookup(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	topic, ok := m.topics[name]
	return topic, ok
}

// Names returns the topic names in alphabetical order
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the topic content formatted by the manager's renderer
func (m *Manager) Render(topic *Topic) string {
	return m.renderer.Render(topic.Content, path.Ext(topic.Path))
}

// Install replaces the help command of root with one that also knows about
// the manager's topics. `help topics` lists them.
func (m *Manager) Install(root *cobra.Command) {
	defaultHelp := root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: fmt.Sprintf(`Help provides help for any command or topic in the application.
Type %[1]s help [command or topic] for full details.

To see all available help topics:
  %[1]s help topics`, root.Name()),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if c.IsAvailableCommand() {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			switch {
			case len(args) == 0:
				defaultHelp(root, args)
			case args[0] == "topics":
				m.writeList(cmd, root.Name())
			default:
				if topic, ok := m.Lookup(args[0]); ok {
					_, _ = fmt.Fprint(out, m.Render(topic))
					return
				}
				target, _, err := root.Find(args)
				if err != nil || target == nil {
					_, _ = fmt.Fprintf(out, "Unknown help topic %q\n", args[0])
					defaultHelp(root, nil)
					return
				}
				defaultHelp(target, nil)
			}
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(helpCmd)
}

func (m *Manager) writeList(cmd *cobra.Command, app string) {
	out := cmd.OutOrStdout()
	names := m.Names()
	if len(names) == 0 {
		_, _ = fmt.Fprintln(out, "No help topics available.")
		return
	}
	_, _ = fmt.Fprintln(out, "Available help topics:")
	for _, name := range names {
		_, _ = fmt.Fprintf(out, "  %s\n", name)
	}
	_, _ = fmt.Fprintf(out, "\nUse '%s help <topic>' to read about a specific topic.\n", app)
}

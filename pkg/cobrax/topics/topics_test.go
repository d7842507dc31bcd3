package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"merging.md":       {Data: []byte("# Merging\n\nSequences are concatenated.\n")},
		"dry-run.txt":      {Data: []byte("Nothing is written.\n")},
		"nested/paths.md":  {Data: []byte("# Paths\n")},
		"ignored.json":     {Data: []byte("{}")},
		"notes/readme.org": {Data: []byte("* org")},
	}
}

func TestLoad(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		m, err := Load(testFS(), Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"dry-run", "merging", "paths"}, m.Names())
	})

	t.Run("custom extensions", func(t *testing.T) {
		m, err := Load(testFS(), Options{Extensions: []string{".org"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"readme"}, m.Names())
	})

	t.Run("empty filesystem", func(t *testing.T) {
		m, err := Load(fstest.MapFS{}, Options{})
		require.NoError(t, err)
		assert.Empty(t, m.Names())
	})
}

func TestLookup(t *testing.T) {
	m, err := Load(testFS(), Options{})
	require.NoError(t, err)

	tests := []struct {
		name  string
		found bool
	}{
		{"merging", true},
		{"dry-run", true},
		{"--dry-run", true},
		{"-dry-run", true},
		{"ignored", false},
		{"missing", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := m.Lookup(tt.name)
			assert.Equal(t, tt.found, ok)
		})
	}
}

func TestGlamourRenderer(t *testing.T) {
	r := &GlamourRenderer{Style: "notty", Width: 60}

	assert.Equal(t, "plain *text*", r.Render("plain *text*", ".txt"))

	// notty keeps markdown markers but lays the document out with a margin
	in := "# Title\n\nSome **bold** words.\n"
	out := r.Render(in, ".md")
	assert.NotEqual(t, in, out)
	assert.Contains(t, out, "  # Title")
	assert.Contains(t, out, "  Some **bold** words.")
}

func newApp(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "app", Short: "test app", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "sub", Short: "a subcommand", Run: func(*cobra.Command, []string) {}})

	m, err := Load(testFS(), Options{})
	require.NoError(t, err)
	m.Install(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root, &out
}

func TestInstall(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{"topic", []string{"help", "merging"}, []string{"Sequences are concatenated."}},
		{"list", []string{"help", "topics"}, []string{"Available help topics:", "  merging", "  paths", "'app help <topic>'"}},
		{"command", []string{"help", "sub"}, []string{"a subcommand"}},
		{"root", []string{"help"}, []string{"test app"}},
		{"unknown", []string{"help", "nope"}, []string{`Unknown help topic "nope"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, out := newApp(t)
			root.SetArgs(tt.args)
			require.NoError(t, root.Execute())
			for _, want := range tt.contains {
				assert.True(t, strings.Contains(out.String(), want), "missing %q in:\n%s", want, out.String())
			}
		})
	}
}

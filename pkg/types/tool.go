package types

// Tool is one synthesis unit: its fragments are filtered, merged and the
// result is written to every injection target.
type Tool struct {
	Name       string
	Format     Format
	Fragments  []Fragment
	Injections []Injection
}

// Fragment is one source of configuration content. A fragment without
// conditions is always active.
type Fragment struct {
	Source     Source
	Conditions []Condition
}

// Source is the content origin of a fragment. The only implementations are
// PathSource and CommandSource.
type Source interface {
	// Identity returns the string used to refer to the source in diagnostics
	Identity() string
	isSource()
}

// PathSource reads fragment content from a file
type PathSource struct {
	Path string
}

func (s PathSource) Identity() string { return s.Path }
func (PathSource) isSource()          {}

// CommandSource runs a shell command and uses its standard output as content
type CommandSource struct {
	Command string
}

func (s CommandSource) Identity() string { return s.Command }
func (CommandSource) isSource()          {}

// Condition activates a fragment when the working directory is Directory or,
// with MatchSubdirectories, anywhere below it
type Condition struct {
	Directory           string
	MatchSubdirectories bool
}

// Injection is a destination for the merged configuration. When EnvName is
// set an export line pointing at the destination is printed.
type Injection struct {
	Path    string
	EnvName string
}

package injection

import (
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/kfkonrad/relconf/pkg/errors"
	"github.com/kfkonrad/relconf/pkg/format"
	"github.com/kfkonrad/relconf/pkg/logging"
	"github.com/kfkonrad/relconf/pkg/paths"
	"github.com/kfkonrad/relconf/pkg/rules"
	"github.com/kfkonrad/relconf/pkg/shell"
	"github.com/kfkonrad/relconf/pkg/source"
	"github.com/kfkonrad/relconf/pkg/types"
	"github.com/kfkonrad/relconf/pkg/value"
)

// Options configures a Pipeline
type Options struct {
	FS     types.FS
	Runner shell.Runner

	// Stdout receives export lines
	Stdout io.Writer

	// WorkingDir is matched against fragment conditions
	WorkingDir string

	// DryRun merges and serializes without writing files or printing
	// export lines
	DryRun bool
}

// Pipeline synthesizes and injects tool configurations
type Pipeline struct {
	fs       types.FS
	resolver *source.Resolver
	stdout   io.Writer
	cwd      string
	dryRun   bool
}

// New creates a Pipeline
func New(opts Options) *Pipeline {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	return &Pipeline{
		fs:       opts.FS,
		resolver: source.NewResolver(opts.FS, opts.Runner),
		stdout:   stdout,
		cwd:      opts.WorkingDir,
		dryRun:   opts.DryRun,
	}
}

// Run handles every tool in order. When only is not empty just the named
// tools run. A failing tool does not stop the others; all failures are
// returned joined. An unresolvable working directory stops the run since no
// conditional fragment can be evaluated.
func (p *Pipeline) Run(tools []types.Tool, only []string) error {
	logger := logging.GetLogger("injection")

	var errs []error
	for _, tool := range selectTools(tools, only) {
		if err := p.HandleTool(tool); err != nil {
			logger.Error().Err(err).Str("tool", tool.Name).Msg("Tool failed")
			errs = append(errs, err)
			if errors.HasCode(err, errors.ErrWorkingDir) {
				break
			}
		}
	}
	return stderrors.Join(errs...)
}

func selectTools(tools []types.Tool, only []string) []types.Tool {
	if len(only) == 0 {
		return tools
	}

	wanted := make(map[string]bool, len(only))
	for _, name := range only {
		wanted[name] = true
	}

	var selected []types.Tool
	for _, tool := range tools {
		if wanted[tool.Name] {
			selected = append(selected, tool)
			delete(wanted, tool.Name)
		}
	}

	logger := logging.GetLogger("injection")
	for _, name := range only {
		if wanted[name] {
			logger.Warn().Str("tool", name).Msg("No tool with this name is configured")
			delete(wanted, name)
		}
	}
	return selected
}

// HandleTool merges the active fragments of tool and writes the result to
// each injection target
func (p *Pipeline) HandleTool(tool types.Tool) error {
	logger := logging.GetLogger("injection").With().Str("tool", tool.Name).Logger()
	done := logging.LogOperationStart(logger, "synthesize")
	defer done()

	merged, err := p.Synthesize(tool)
	if err != nil {
		return err
	}

	for _, inj := range tool.Injections {
		if err := p.Inject(inj, merged); err != nil {
			return errors.Wrapf(err, errors.GetErrorCode(err), "tool %q", tool.Name).
				WithDetail("tool", tool.Name)
		}
	}
	return nil
}

// Synthesize folds the fragments of tool that are active in the working
// directory into one value, starting from the default of the tool's format
func (p *Pipeline) Synthesize(tool types.Tool) (*value.Value, error) {
	logger := logging.GetLogger("injection").With().Str("tool", tool.Name).Logger()

	codec, err := format.For(tool.Format)
	if err != nil {
		return nil, toolError(err, tool.Name, "")
	}
	acc := codec.Default()

	for _, frag := range tool.Fragments {
		if frag.Source == nil {
			return nil, toolError(errors.New(errors.ErrInternal, "fragment has no source"), tool.Name, "")
		}
		id := frag.Source.Identity()

		active, err := rules.ShouldRun(frag.Conditions, p.cwd)
		if err != nil {
			return nil, toolError(err, tool.Name, id)
		}
		if !active {
			logger.Debug().Str("fragment", id).Msg("Fragment inactive in working directory, skipping")
			continue
		}

		content, err := p.resolver.Resolve(frag.Source)
		if err != nil {
			return nil, toolError(err, tool.Name, id)
		}

		parsed, err := format.Parse(content.Data, content.Path)
		if err != nil {
			return nil, toolError(err, tool.Name, content.Identity)
		}

		acc = codec.Merge(acc, parsed)
		logger.Debug().Str("fragment", content.Identity).Msg("Fragment merged")
	}

	return acc, nil
}

// Inject writes v to the destination of inj, creating parent directories,
// and prints the export line when inj names an environment variable
func (p *Pipeline) Inject(inj types.Injection, v *value.Value) error {
	logger := logging.GetLogger("injection")
	dest := paths.PermissiveNormalize(inj.Path)

	data, err := format.Serialize(v, dest)
	if err != nil {
		return err
	}

	if p.dryRun {
		logger.Info().Str("path", dest).Int("bytes", len(data)).Msg("Dry run, not writing")
		return nil
	}

	dir := filepath.Dir(dest)
	if err := p.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir).
			WithDetail("path", dir)
	}
	if err := p.fs.WriteFile(dest, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dest).
			WithDetail("path", dest)
	}
	logger.Info().Str("path", dest).Msg("Configuration written")

	if inj.EnvName == "" {
		return nil
	}
	line := shell.ExportLine(inj.EnvName, paths.PermissiveNormalize(dest))
	if _, err := fmt.Fprintln(p.stdout, line); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to print export line for %s", inj.EnvName).
			WithDetail("env-name", inj.EnvName)
	}
	return nil
}

func toolError(err error, tool, fragment string) error {
	msg := fmt.Sprintf("tool %q", tool)
	if fragment != "" {
		msg = fmt.Sprintf("tool %q, fragment %q", tool, fragment)
	}
	wrapped := errors.Wrap(err, errors.GetErrorCode(err), msg).WithDetail("tool", tool)
	if fragment != "" {
		wrapped.WithDetail("fragment", fragment)
	}
	return wrapped
}

package config

import (
	"fmt"

	"github.com/kfkonrad/relconf/pkg/errors"
	"github.com/kfkonrad/relconf/pkg/paths"
	"github.com/kfkonrad/relconf/pkg/shell"
	"github.com/kfkonrad/relconf/pkg/types"
)

func validate(raw *rawConfig) ([]types.Tool, error) {
	tools := make([]types.Tool, 0, len(raw.Tools))
	for i, rt := range raw.Tools {
		tool, err := validateTool(rt)
		if err != nil {
			return nil, toolError(err, i, rt.Name)
		}
		tools = append(tools, tool)
	}
	return tools, nil
}

func toolError(err error, index int, name string) error {
	label := fmt.Sprintf("tools[%d]", index)
	if name != "" {
		label = fmt.Sprintf("%s (%s)", label, name)
	}
	return errors.Wrapf(err, errors.ErrConfigValid, "invalid tool %s", label).
		WithDetail("toolIndex", index).
		WithDetail("tool", name)
}

func invalid(format string, args ...interface{}) error {
	return errors.Newf(errors.ErrConfigValid, format, args...)
}

func validateTool(rt rawTool) (types.Tool, error) {
	if rt.Name == "" {
		return types.Tool{}, invalid("missing required field 'name'")
	}
	if rt.Format == "" {
		return types.Tool{}, invalid("missing required field 'format'")
	}
	format, err := types.ParseFormat(rt.Format)
	if err != nil {
		return types.Tool{}, errors.Wrap(err, errors.ErrConfigValid, "invalid 'format'")
	}
	if rt.Inject == nil {
		return types.Tool{}, invalid("missing required field 'inject'")
	}
	if rt.Configs == nil {
		return types.Tool{}, invalid("missing required field 'configs'")
	}

	tool := types.Tool{Name: rt.Name, Format: format}

	for i, ri := range rt.Inject {
		inj, err := validateInjection(ri)
		if err != nil {
			return types.Tool{}, errors.Wrapf(err, errors.ErrConfigValid, "inject[%d]", i)
		}
		tool.Injections = append(tool.Injections, inj)
	}

	for i, rf := range rt.Configs {
		frag, err := validateFragment(rf)
		if err != nil {
			return types.Tool{}, errors.Wrapf(err, errors.ErrConfigValid, "configs[%d]", i)
		}
		tool.Fragments = append(tool.Fragments, frag)
	}

	return tool, nil
}

func validateInjection(ri rawInjection) (types.Injection, error) {
	if ri.Path == "" {
		return types.Injection{}, invalid("missing required field 'path' on inject")
	}
	if ri.EnvName != "" {
		if err := shell.ValidateEnvName(ri.EnvName); err != nil {
			return types.Injection{}, errors.Wrap(err, errors.ErrConfigValid, "invalid 'env-name'")
		}
	}
	return types.Injection{Path: paths.Expand(ri.Path), EnvName: ri.EnvName}, nil
}

func validateFragment(rf rawFragment) (types.Fragment, error) {
	var frag types.Fragment

	switch {
	case rf.Path != nil && rf.Command != nil:
		return frag, invalid("cannot specify both 'path' and 'command' on config")
	case rf.Path != nil:
		path := paths.Expand(*rf.Path)
		if ok, _ := paths.IsFile(path); !ok {
			return frag, invalid("Expected a file path or symlink to a file, received %s", *rf.Path)
		}
		frag.Source = types.PathSource{Path: path}
	case rf.Command != nil:
		if *rf.Command == "" {
			return frag, invalid("'command' must not be empty")
		}
		frag.Source = types.CommandSource{Command: *rf.Command}
	default:
		return frag, invalid("must specify either 'path' or 'command' on config")
	}

	for i, rc := range rf.When {
		if rc.Directory == "" {
			return frag, invalid("missing required field 'directory' on when[%d]", i)
		}
		dir := paths.Expand(rc.Directory)
		if ok, _ := paths.IsDir(dir); !ok {
			return frag, invalid("Expected a directory path or symlink to a directory, received %s", rc.Directory)
		}
		frag.Conditions = append(frag.Conditions, types.Condition{
			Directory:           dir,
			MatchSubdirectories: rc.MatchSubdirectories,
		})
	}

	return frag, nil
}

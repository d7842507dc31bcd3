package rules

import (
	"github.com/kfkonrad/relconf/pkg/errors"
	"github.com/kfkonrad/relconf/pkg/logging"
	"github.com/kfkonrad/relconf/pkg/paths"
	"github.com/kfkonrad/relconf/pkg/types"
)

// ShouldRun reports whether a fragment with conditions is active when
// relconf runs in cwd. Conditions are evaluated in order and evaluation
// stops at the first match. A condition whose directory no longer exists is
// an error, not a mismatch.
func ShouldRun(conditions []types.Condition, cwd string) (bool, error) {
	if len(conditions) == 0 {
		return true, nil
	}

	logger := logging.GetLogger("rules")

	wd, err := paths.Normalize(cwd)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrWorkingDir, "cannot resolve working directory %q", cwd).
			WithDetail("path", cwd)
	}

	for _, cond := range conditions {
		matched, err := Matches(cond, wd)
		if err != nil {
			return false, err
		}
		if matched {
			logger.Trace().
				Str("directory", cond.Directory).
				Bool("matchSubdirectories", cond.MatchSubdirectories).
				Str("cwd", wd).
				Msg("Condition matched")
			return true, nil
		}
	}

	logger.Trace().Str("cwd", wd).Int("conditions", len(conditions)).Msg("No condition matched")
	return false, nil
}

// Matches evaluates a single condition against an already canonical working
// directory
func Matches(cond types.Condition, wd string) (bool, error) {
	dir, err := paths.Normalize(cond.Directory)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrConditionDir, "condition directory %q cannot be resolved", cond.Directory).
			WithDetail("path", cond.Directory)
	}

	if dir == wd {
		return true, nil
	}
	return cond.MatchSubdirectories && paths.IsWithin(dir, wd), nil
}

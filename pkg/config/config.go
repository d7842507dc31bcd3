package config

import (
	stderrors "errors"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/kfkonrad/relconf/pkg/errors"
	"github.com/kfkonrad/relconf/pkg/logging"
	"github.com/kfkonrad/relconf/pkg/paths"
	"github.com/kfkonrad/relconf/pkg/types"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvConfig names the environment variable overriding the default root
// configuration location
const EnvConfig = "RELCONF_CONFIG"

// Config is a loaded and validated root configuration
type Config struct {
	// Path is the file the configuration was read from
	Path  string
	Tools []types.Tool
}

type rawConfig struct {
	Tools []rawTool `koanf:"tools"`
}

type rawTool struct {
	Name    string         `koanf:"name"`
	Format  string         `koanf:"format"`
	Inject  []rawInjection `koanf:"inject"`
	Configs []rawFragment  `koanf:"configs"`
}

type rawInjection struct {
	Path    string `koanf:"path"`
	EnvName string `koanf:"env-name"`
}

type rawFragment struct {
	Path    *string        `koanf:"path"`
	Command *string        `koanf:"command"`
	When    []rawCondition `koanf:"when"`
}

type rawCondition struct {
	Directory           string `koanf:"directory"`
	MatchSubdirectories bool   `koanf:"match-subdirectories"`
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// ResolvePath picks the root configuration location: flag if set, then
// $RELCONF_CONFIG, then the XDG default
func ResolvePath(flag string) string {
	if flag != "" {
		return paths.Expand(flag)
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return paths.Expand(env)
	}
	return paths.DefaultConfigPath()
}

// Load reads and validates the root configuration at path
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")

	resolved, err := paths.Normalize(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot open config file %q", path).
			WithDetail("path", path)
	}
	if ok, _ := paths.IsFile(resolved); !ok {
		return nil, errors.Newf(errors.ErrConfigLoad, "config path %q is not a file", path).
			WithDetail("path", path)
	}

	logger.Debug().Str("path", resolved).Msg("Loading root configuration")

	k := koanf.New(".")
	if err := k.Load(file.Provider(resolved), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %q", resolved).
			WithDetail("path", resolved)
	}

	cfg, err := fromKoanf(k, resolved)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("path", resolved).Int("tools", len(cfg.Tools)).Msg("Root configuration loaded")
	return cfg, nil
}

// LoadBytes validates a root configuration held in memory. origin is used
// in diagnostics only.
func LoadBytes(data []byte, origin string) (*Config, error) {
	k, err := parseBytes(data, origin)
	if err != nil {
		return nil, err
	}
	return fromKoanf(k, origin)
}

func parseBytes(data []byte, origin string) (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config %q", origin).
			WithDetail("path", origin)
	}
	return k, nil
}

func fromKoanf(k *koanf.Koanf, origin string) (*Config, error) {
	raw, err := decode(k, origin)
	if err != nil {
		return nil, err
	}

	tools, err := validate(raw)
	if err != nil {
		var relconfErr *errors.RelconfError
		if stderrors.As(err, &relconfErr) {
			relconfErr.WithDetail("path", origin)
		}
		return nil, err
	}
	return &Config{Path: origin, Tools: tools}, nil
}

func decode(k *koanf.Koanf, origin string) (*rawConfig, error) {
	var raw rawConfig
	var md mapstructure.Metadata
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &raw,
			Metadata:         &md,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	}
	if err := k.UnmarshalWithConf("", &raw, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "config %q does not match the expected schema", origin).
			WithDetail("path", origin)
	}

	if len(md.Unused) > 0 {
		logger := logging.GetLogger("config")
		logger.Warn().
			Str("path", origin).
			Strs("keys", md.Unused).
			Msg("Ignoring unknown configuration keys")
	}
	if !k.Exists("tools") {
		return nil, errors.Newf(errors.ErrConfigValid, "config %q has no 'tools' list", origin).
			WithDetail("path", origin)
	}
	return &raw, nil
}

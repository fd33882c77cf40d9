package sitepipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Manifest maps a target name to its build configuration.
// A single-site project has one target.
type Manifest map[string]Target

type Target struct {
	BuildOptions `mapstructure:",squash"`
	Fonts        []FontEntry `mapstructure:"fonts"`
}

type manifestError struct {
	err   error
	key   string
	msg   string
	stage Stage
}

var loglevel = new(slog.LevelVar)

// NewManifest decodes filename as JSON, YAML or TOML depending on its
// extension. Unknown keys are rejected.
func NewManifest(fs afero.Fs, filename string) (Manifest, error) {
	b, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest from file '%s': %w", filename, err)
	}

	raw := make(map[string]any)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		err = json.Unmarshal(b, &raw)

	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &raw)

	case ".toml":
		err = toml.Unmarshal(b, &raw)

	default:
		return nil, fmt.Errorf("unsupported manifest format '%s'", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest '%s': %w", filename, err)
	}

	m := make(Manifest)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &m,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}

	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("bad manifest '%s': %w", filename, err)
	}

	return m, nil
}

func (s manifestError) Error() string {
	if s.err == nil {
		return fmt.Sprintf("[%s %s] %s", s.stage, s.key, s.msg)
	}

	return fmt.Errorf("[%s %s] %s: %w", s.stage, s.key, s.msg, s.err).Error()
}

func (s manifestError) Unwrap() error {
	return s.err
}

// Apply builds every target of m in key order, running only the stages in do.
// It stops at the first target whose build fails.
func Apply(m Manifest, do Stage, opts ...Option) error {
	slog.Info("stages",
		StagePreBuild.String(), do.Ok(StagePreBuild),
		StageHtml.String(), do.Ok(StageHtml),
		StageJs.String(), do.Ok(StageJs),
		StageCss.String(), do.Ok(StageCss),
		StageFonts.String(), do.Ok(StageFonts),
	)

	if err := collect(m); err != nil {
		return err
	}

	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		target := m[key]
		logger := slog.Default().With("key", key)
		logger.Info("building target")

		options := append([]Option{WithLogger(logger)}, opts...)
		options = append(options, WithStages(do))

		summary, err := New(target.BuildOptions, target.Fonts, options...).Build()
		if err != nil {
			stage := StageCollect
			var se stageError
			if errors.As(err, &se) {
				stage = se.stage
			}

			return manifestError{
				err:   err,
				key:   key,
				msg:   "failed to build",
				stage: stage,
			}
		}

		logger.Info("target built",
			"pagesWritten", summary.PagesWritten,
			"pagesFailed", summary.PagesFailed,
			"pagesIgnored", summary.PagesIgnored,
			"replacements", summary.Replacements,
			"fontsCopied", summary.FontsCopied,
		)
	}

	return nil
}

// collect detects bundle files written by more than one target
func collect(m Manifest) error {
	dups := make(setStr)
	for key, target := range m {
		logger := slog.Default().WithGroup("collect").With("key", key)
		for _, bundle := range []string{target.JsBundle, target.CssBundle} {
			if bundle == "" {
				continue
			}

			if !dups.insert(filepath.Clean(bundle)) {
				continue
			}

			logger.Error("duplicate write target", "target", bundle)
			return manifestError{
				err:   nil,
				key:   key,
				msg:   "duplicate write target " + bundle,
				stage: StageCollect,
			}
		}
	}

	return nil
}

// NewLogger returns a JSON logger to stderr. Verbose enables debug level.
func NewLogger(verbose bool) *slog.Logger {
	loglevel.Set(slog.LevelInfo)
	if verbose {
		loglevel.Set(slog.LevelDebug)
	}

	return slog.New(slog.NewJSONHandler(
		os.Stderr,
		&slog.HandlerOptions{
			AddSource: true,
			Level:     loglevel,
		}))
}

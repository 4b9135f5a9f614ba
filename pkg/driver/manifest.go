package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project file discovered by FindManifest.
const ManifestFileName = "xlang.yml"

// SourceExtension is the required extension of X source files.
const SourceExtension = ".x"

// Manifest represents the parsed contents of xlang.yml.
type Manifest struct {
	Path        string
	Dir         string
	Name        string
	Version     string
	Authors     []string
	Targets     map[string]*TargetSpec
	TargetOrder []string
	REPL        REPLConfig
	Logging     LoggingConfig
	Color       ColorMode
}

// TargetSpec is a runnable entry point.
type TargetSpec struct {
	Name string
	Main string
}

// REPLConfig configures the interactive loop.
type REPLConfig struct {
	Prompt  string
	History string
	Banner  bool
}

// LoggingConfig configures host logging.
type LoggingConfig struct {
	Level string
}

// ColorMode selects when diagnostics are coloured.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether the colour mode is recognised.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

const (
	DefaultPrompt  = ">>> "
	DefaultHistory = ".xlang_history"
)

// DefaultManifest is used when no xlang.yml is found.
func DefaultManifest() *Manifest {
	return &Manifest{
		Targets: map[string]*TargetSpec{},
		REPL:    REPLConfig{Prompt: DefaultPrompt, History: DefaultHistory, Banner: true},
		Logging: LoggingConfig{Level: "warn"},
		Color:   ColorAuto,
	}
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// FindManifest walks up from dir looking for xlang.yml. It returns "" when
// none exists.
func FindManifest(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "manifest: resolve %s", dir)
	}
	for {
		candidate := filepath.Join(abs, ManifestFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", nil
		}
		abs = parent
	}
}

// LoadManifest parses xlang.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, errors.New("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest: resolve %s", path)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest: open %s", absPath)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Errorf("manifest: %s is empty", absPath)
		}
		return nil, errors.Wrapf(err, "manifest: parse %s", absPath)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	for i, author := range m.Authors {
		if author == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("authors[%d] must be a non-empty string", i))
		}
	}
	for _, name := range m.TargetOrder {
		target := m.Targets[name]
		switch {
		case target.Main == "":
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q requires a main entrypoint", name))
		case filepath.Ext(target.Main) != SourceExtension:
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q main %q must have extension %s", name, target.Main, SourceExtension))
		}
	}
	if !m.Color.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("color must be one of auto, always, never (found %q)", m.Color))
	}
	if _, ok := ParseLevel(m.Logging.Level); !ok {
		errs.Issues = append(errs.Issues, fmt.Sprintf("logging.level %q is not a known level", m.Logging.Level))
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// ErrNoTarget is returned when the manifest declares no targets.
var ErrNoTarget = errors.New("manifest: no targets defined")

// DefaultTarget returns the first target in manifest order.
func (m *Manifest) DefaultTarget() (*TargetSpec, error) {
	if m == nil || len(m.TargetOrder) == 0 {
		return nil, ErrNoTarget
	}
	return m.Targets[m.TargetOrder[0]], nil
}

// FindTarget looks up a target by name, ignoring case.
func (m *Manifest) FindTarget(name string) (*TargetSpec, bool) {
	if m == nil {
		return nil, false
	}
	name = strings.TrimSpace(name)
	if target, ok := m.Targets[name]; ok {
		return target, true
	}
	for _, key := range m.TargetOrder {
		if strings.EqualFold(key, name) {
			return m.Targets[key], true
		}
	}
	return nil, false
}

// MainPath resolves a target's main file against the manifest directory.
func (m *Manifest) MainPath(target *TargetSpec) string {
	if filepath.IsAbs(target.Main) || m.Dir == "" {
		return target.Main
	}
	return filepath.Join(m.Dir, target.Main)
}

// HistoryPath resolves the REPL history file, or "" when history is disabled.
func (m *Manifest) HistoryPath() string {
	if m.REPL.History == "" {
		return ""
	}
	if filepath.IsAbs(m.REPL.History) {
		return m.REPL.History
	}
	if m.Dir != "" {
		return filepath.Join(m.Dir, m.REPL.History)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, m.REPL.History)
	}
	return m.REPL.History
}

type manifestFile struct {
	Name    string     `yaml:"name"`
	Version string     `yaml:"version"`
	Authors stringList `yaml:"authors"`
	Targets targetMap  `yaml:"targets"`
	REPL    struct {
		Prompt  *string `yaml:"prompt"`
		History *string `yaml:"history"`
		Banner  *bool   `yaml:"banner"`
	} `yaml:"repl"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
	Color string `yaml:"color"`
}

type targetYAML struct {
	Main string `yaml:"main"`
}

type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	spec *targetYAML
}

func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: targets must not use empty keys")
		}
		entry := new(targetYAML)
		if valueNode.Kind == yaml.ScalarNode {
			entry.Main = valueNode.Value
		} else if err := valueNode.Decode(entry); err != nil {
			return fmt.Errorf("manifest: target %q: %w", key, err)
		}
		items = append(items, targetMapEntry{name: key, spec: entry})
	}
	tm.items = items
	return nil
}

type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			items = append(items, strings.TrimSpace(str))
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := DefaultManifest()
	result.Path = path
	result.Dir = filepath.Dir(path)
	result.Name = strings.TrimSpace(mf.Name)
	result.Version = strings.TrimSpace(mf.Version)
	if len(mf.Authors) > 0 {
		result.Authors = append([]string{}, mf.Authors...)
	}
	if mf.REPL.Prompt != nil {
		result.REPL.Prompt = *mf.REPL.Prompt
	}
	if mf.REPL.History != nil {
		result.REPL.History = strings.TrimSpace(*mf.REPL.History)
	}
	if mf.REPL.Banner != nil {
		result.REPL.Banner = *mf.REPL.Banner
	}
	if level := strings.TrimSpace(mf.Logging.Level); level != "" {
		result.Logging.Level = level
	}
	if color := strings.TrimSpace(mf.Color); color != "" {
		result.Color = ColorMode(strings.ToLower(color))
	}

	for _, item := range mf.Targets.items {
		if _, exists := result.Targets[item.name]; exists {
			continue
		}
		result.Targets[item.name] = &TargetSpec{Name: item.name, Main: strings.TrimSpace(item.spec.Main)}
		result.TargetOrder = append(result.TargetOrder, item.name)
	}
	return result
}

// Package exercise defines the concrete exercise types, their YAML
// definition format, and the registry that loads shipped packs.
package exercise

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/drillhq/drill/internal/domain"
	"gopkg.in/yaml.v3"
)

// PackFile is the YAML structure of a pack.yaml manifest.
type PackFile struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Description string   `yaml:"description"`
	Exercises   []string `yaml:"exercises"` // ordered slugs
}

// Pack is a loaded exercise pack.
type Pack struct {
	ID          string
	Name        string
	Version     string
	Description string
	ExerciseIDs []string // ordered, packID/slug
}

// Definition is the YAML structure of a single exercise file.
type Definition struct {
	Name           string   `yaml:"name"`
	Level          string   `yaml:"level"`
	Difficulty     int      `yaml:"difficulty"`
	Description    string   `yaml:"description"`
	Objectives     []string `yaml:"objectives"`
	MaxHints       int      `yaml:"max_hints"`
	RequiresClient bool     `yaml:"requires_client"`
	System         string   `yaml:"system"` // system prompt for the chat session
	Template       string   `yaml:"template"`
	Solution       string   `yaml:"solution"`
	Hints          []string `yaml:"hints"`
	Checks         Checks   `yaml:"checks"`
}

// Checks holds the grading knobs shared by the exercise variants. Each
// variant reads the subset it cares about.
type Checks struct {
	// Expect lists substrings the captured output must contain.
	Expect []string `yaml:"expect"`

	// ExpectJSON lists fields a JSON object in the output must carry
	// (structured_responses level).
	ExpectJSON []string `yaml:"expect_json"`

	// MinCalls is the minimum number of client calls the submission must
	// make (advanced_orchestration level).
	MinCalls int `yaml:"min_calls"`

	// Ordered requires Expect markers to appear in sequence
	// (advanced_orchestration level).
	Ordered bool `yaml:"ordered"`
}

const defaultMaxHints = 3

// Loader reads packs and exercise definitions from a directory tree laid out
// as basePath/packID/pack.yaml and basePath/packID/category/slug.yaml.
type Loader struct {
	basePath string
}

// NewLoader creates a loader rooted at basePath.
func NewLoader(basePath string) *Loader {
	return &Loader{basePath: basePath}
}

// LoadPack reads a pack manifest.
func (l *Loader) LoadPack(packID string) (*Pack, error) {
	data, err := os.ReadFile(filepath.Join(l.basePath, packID, "pack.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPackNotFound, packID)
		}
		return nil, fmt.Errorf("read pack file: %w", err)
	}

	var packFile PackFile
	if err := yaml.Unmarshal(data, &packFile); err != nil {
		return nil, fmt.Errorf("parse pack file: %w", err)
	}

	pack := &Pack{
		ID:          packFile.ID,
		Name:        packFile.Name,
		Version:     packFile.Version,
		Description: packFile.Description,
		ExerciseIDs: make([]string, len(packFile.Exercises)),
	}
	for i, slug := range packFile.Exercises {
		pack.ExerciseIDs[i] = fmt.Sprintf("%s/%s", packID, slug)
	}
	return pack, nil
}

// LoadDefinition reads one exercise definition.
func (l *Loader) LoadDefinition(packID, slug string) (*Definition, error) {
	data, err := os.ReadFile(filepath.Join(l.basePath, packID, slug+".yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s/%s", domain.ErrExerciseNotFound, packID, slug)
		}
		return nil, fmt.Errorf("read exercise file: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse exercise file: %w", err)
	}

	if def.Name == "" {
		def.Name = fmt.Sprintf("%s/%s", packID, slug)
	}
	if def.MaxHints == 0 {
		def.MaxHints = defaultMaxHints
	}
	if err := def.validate(); err != nil {
		return nil, fmt.Errorf("exercise %s/%s: %w", packID, slug, err)
	}
	return &def, nil
}

// LoadPackDefinitions reads all definitions of a pack in manifest order.
func (l *Loader) LoadPackDefinitions(packID string) ([]*Definition, error) {
	pack, err := l.LoadPack(packID)
	if err != nil {
		return nil, err
	}

	defs := make([]*Definition, 0, len(pack.ExerciseIDs))
	for _, id := range pack.ExerciseIDs {
		slug := strings.TrimPrefix(id, packID+"/")
		def, err := l.LoadDefinition(packID, slug)
		if err != nil {
			return nil, fmt.Errorf("load exercise %s: %w", id, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// LoadAllPacks discovers every pack directory under the base path.
func (l *Loader) LoadAllPacks() ([]*Pack, error) {
	entries, err := os.ReadDir(l.basePath)
	if err != nil {
		return nil, fmt.Errorf("read exercises directory: %w", err)
	}

	var packs []*Pack
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(l.basePath, entry.Name(), "pack.yaml")); os.IsNotExist(err) {
			continue
		}
		pack, err := l.LoadPack(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("load pack %s: %w", entry.Name(), err)
		}
		packs = append(packs, pack)
	}
	return packs, nil
}

func (d *Definition) validate() error {
	level := domain.Level(d.Level)
	if !level.Valid() {
		return fmt.Errorf("unknown level %q", d.Level)
	}
	if d.Difficulty < int(domain.DifficultyBeginner) || d.Difficulty > int(domain.DifficultyAdvanced) {
		return fmt.Errorf("difficulty %d out of range 1-3", d.Difficulty)
	}
	if d.Template == "" {
		return fmt.Errorf("missing template")
	}
	if d.Solution == "" {
		return fmt.Errorf("missing solution")
	}
	return nil
}

// Metadata converts the definition's descriptive fields.
func (d *Definition) Metadata() domain.Metadata {
	return domain.Metadata{
		Name:        d.Name,
		Level:       domain.Level(d.Level),
		Difficulty:  domain.Difficulty(d.Difficulty),
		Description: d.Description,
		Objectives:  d.Objectives,
	}
}

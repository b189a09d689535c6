package exercise

import (
	"fmt"
	"strings"
	"time"

	"github.com/drillhq/drill/internal/domain"
	"github.com/drillhq/drill/internal/llm"
)

// Registry holds the loaded packs and builds exercise instances on demand.
// Registration order is preserved; the batch runner and the progress report
// both walk exercises in that order.
type Registry struct {
	loader   *Loader
	provider llm.Provider
	timeout  time.Duration

	packs   []*Pack
	order   []string // exercise IDs across packs, manifest order
	defs    map[string]*Definition
	packIdx map[string]*Pack
}

// NewRegistry creates an empty registry. The provider may be nil; exercises
// that require a client then fail setup.
func NewRegistry(loader *Loader, provider llm.Provider, timeout time.Duration) *Registry {
	return &Registry{
		loader:   loader,
		provider: provider,
		timeout:  timeout,
		defs:     make(map[string]*Definition),
		packIdx:  make(map[string]*Pack),
	}
}

// LoadPack loads one pack and registers its exercises in manifest order.
func (r *Registry) LoadPack(packID string) error {
	pack, err := r.loader.LoadPack(packID)
	if err != nil {
		return err
	}
	defs, err := r.loader.LoadPackDefinitions(packID)
	if err != nil {
		return err
	}

	r.packs = append(r.packs, pack)
	r.packIdx[pack.ID] = pack
	for i, id := range pack.ExerciseIDs {
		r.order = append(r.order, id)
		r.defs[id] = defs[i]
	}
	return nil
}

// LoadAll discovers and loads every pack under the loader's base path.
func (r *Registry) LoadAll() error {
	packs, err := r.loader.LoadAllPacks()
	if err != nil {
		return err
	}
	for _, pack := range packs {
		if err := r.LoadPack(pack.ID); err != nil {
			return err
		}
	}
	return nil
}

// Get builds a fresh exercise instance. Each call returns a new instance with
// its own hint counter and timer.
func (r *Registry) Get(id string) (domain.Exercise, error) {
	def, ok := r.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrExerciseNotFound, id)
	}
	return New(def, r.provider, r.timeout)
}

// GetPack returns a loaded pack by ID.
func (r *Registry) GetPack(packID string) (*Pack, error) {
	pack, ok := r.packIdx[packID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPackNotFound, packID)
	}
	return pack, nil
}

// Packs lists the loaded packs in load order.
func (r *Registry) Packs() []*Pack {
	out := make([]*Pack, len(r.packs))
	copy(out, r.packs)
	return out
}

// IDs lists every registered exercise ID in manifest order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// PackIDs lists the exercise IDs of one pack in manifest order.
func (r *Registry) PackIDs(packID string) ([]string, error) {
	pack, err := r.GetPack(packID)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(pack.ExerciseIDs))
	copy(out, pack.ExerciseIDs)
	return out, nil
}

// Definition returns the raw definition for an exercise ID.
func (r *Registry) Definition(id string) (*Definition, error) {
	def, ok := r.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrExerciseNotFound, id)
	}
	return def, nil
}

// Next returns the ID following the given one in registration order, or ""
// when it is the last.
func (r *Registry) Next(id string) string {
	for i, cur := range r.order {
		if cur == id && i+1 < len(r.order) {
			return r.order[i+1]
		}
	}
	return ""
}

// Stats summarizes the registry contents per level.
func (r *Registry) Stats() map[domain.Level]int {
	stats := make(map[domain.Level]int)
	for _, def := range r.defs {
		stats[domain.Level(def.Level)]++
	}
	return stats
}

// SplitID separates an exercise ID into pack and slug parts.
func SplitID(id string) (packID, slug string, ok bool) {
	packID, slug, ok = strings.Cut(id, "/")
	return packID, slug, ok && packID != "" && slug != ""
}

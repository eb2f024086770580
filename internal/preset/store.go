package preset

import (
	"fmt"
	"sort"

	"memepop/internal/domain"
)

// Store holds one validated profile. It is never mutated after New returns,
// and every accessor hands out a copy, so it is safe for concurrent readers.
type Store struct {
	profile domain.Profile
	tints   map[string]int
}

// New selects the named profile, validates it and returns a store built
// from a private copy of it.
func New(name string) (*Store, error) {
	p, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return FromProfile(p)
}

// FromProfile validates p and builds a store from a copy of it.
func FromProfile(p domain.Profile) (*Store, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	s := &Store{profile: p.Clone()}
	if ov := s.profile.Site.Overlay; ov != nil {
		s.tints = make(map[string]int, len(ov.Colors))
		for i, c := range ov.Colors {
			s.tints[NormalizeName(c.Name)] = i
		}
	}
	return s, nil
}

// MustNew is New for startup code that cannot run without valid presets.
func MustNew(name string) *Store {
	s, err := New(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns a copy of the named built-in profile.
func Lookup(name string) (domain.Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return domain.Profile{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownProfile, name, Names())
	}
	return p.Clone(), nil
}

// Names lists the built-in profiles in sorted order.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) Profile() string {
	return s.profile.Name
}

// Texts returns the default text layers in render order; later entries are
// drawn on top.
func (s *Store) Texts() []domain.Text {
	return domain.CloneTexts(s.profile.Texts)
}

func (s *Store) Site() domain.SiteConfig {
	return s.profile.Site.Clone()
}

func (s *Store) OverlayEnabled() bool {
	return s.profile.Site.Overlay != nil
}

// OverlayColors returns the tint palette, or an empty slice when the
// overlay picker is disabled.
func (s *Store) OverlayColors() []domain.OverlayColor {
	ov := s.profile.Site.Overlay
	if ov == nil {
		return []domain.OverlayColor{}
	}
	out := make([]domain.OverlayColor, len(ov.Colors))
	copy(out, ov.Colors)
	return out
}

func (s *Store) BlankLabel() string {
	if s.profile.Site.Overlay == nil {
		return ""
	}
	return s.profile.Site.Overlay.BlankLabel
}

// Tint finds a palette entry by name.
func (s *Store) Tint(name string) (domain.OverlayColor, bool) {
	i, ok := s.tints[NormalizeName(name)]
	if !ok {
		return domain.OverlayColor{}, false
	}
	return s.profile.Site.Overlay.Colors[i], true
}

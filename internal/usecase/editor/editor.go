package editor

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"memepop/internal/domain"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"
	"github.com/wb-go/wbf/zlog"
)

const (
	maxElementHandleLen = 128
	// Counted in user-perceived characters, so Thai marks and joined emoji
	// count once.
	maxTextGraphemes = 200
)

// Editor owns editing sessions. Each session starts from a copy of the
// store's defaults, so edits never reach the shared profile.
type Editor struct {
	store       presetStore
	logger      *zlog.Zerolog
	maxSessions int

	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

func NewEditor(store presetStore, logger *zlog.Zerolog, maxSessions int) *Editor {
	return &Editor{
		store:       store,
		logger:      logger,
		maxSessions: maxSessions,
		sessions:    make(map[string]*domain.Session),
	}
}

func (e *Editor) Create(ctx context.Context) (*domain.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.maxSessions > 0 && len(e.sessions) >= e.maxSessions {
		e.logger.Warn().Int("sessions", len(e.sessions)).Msg("Session limit reached")
		return nil, ErrTooManySessions
	}

	now := time.Now()
	s := &domain.Session{
		ID:        uuid.New().String(),
		Profile:   e.store.Profile(),
		Texts:     e.store.Texts(),
		Elements:  make(map[int]string),
		CreatedAt: now,
		UpdatedAt: now,
	}
	e.sessions[s.ID] = s

	e.logger.Info().
		Str("session_id", s.ID).
		Str("profile", s.Profile).
		Int("texts", len(s.Texts)).
		Msg("Editor session created")

	return s.Clone(), nil
}

func (e *Editor) Get(ctx context.Context, id string) (*domain.Session, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s, ok := e.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.Clone(), nil
}

// Delete drops the session together with its element registry.
func (e *Editor) Delete(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(e.sessions, id)

	e.logger.Info().Str("session_id", id).Msg("Editor session deleted")
	return nil
}

// Reset re-seeds the session from the defaults and forgets mounted elements
// and the selected tint.
func (e *Editor) Reset(ctx context.Context, id string) (*domain.Session, error) {
	return e.update(id, func(s *domain.Session) error {
		s.Texts = e.store.Texts()
		s.Tint = nil
		s.Elements = make(map[int]string)
		return nil
	})
}

func (e *Editor) EditText(ctx context.Context, id string, index int, text string) (*domain.Session, error) {
	return e.ApplyEdit(ctx, id, index, domain.TextEdit{Text: &text})
}

func (e *Editor) EditColor(ctx context.Context, id string, index int, color string) (*domain.Session, error) {
	return e.ApplyEdit(ctx, id, index, domain.TextEdit{Color: &color})
}

func (e *Editor) Move(ctx context.Context, id string, index int, xPercent, yPercent float64) (*domain.Session, error) {
	return e.ApplyEdit(ctx, id, index, domain.TextEdit{XPercent: &xPercent, YPercent: &yPercent})
}

// ApplyEdit validates every field of edit before changing anything, so a
// rejected edit leaves the layer untouched.
func (e *Editor) ApplyEdit(ctx context.Context, id string, index int, edit domain.TextEdit) (*domain.Session, error) {
	if edit.Empty() {
		return nil, fmt.Errorf("%w: nothing to change", ErrInvalidEdit)
	}

	s, err := e.update(id, func(s *domain.Session) error {
		if index < 0 || index >= len(s.Texts) {
			return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(s.Texts))
		}
		t := s.Texts[index]

		if edit.Text != nil {
			if !t.Editable {
				return ErrNotEditable
			}
			if !utf8.ValidString(*edit.Text) {
				return fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidEdit)
			}
			if n := uniseg.GraphemeClusterCount(*edit.Text); n > maxTextGraphemes {
				return fmt.Errorf("%w: text has %d characters, limit %d", ErrInvalidEdit, n, maxTextGraphemes)
			}
			t.Text = *edit.Text
		}

		if edit.Color != nil {
			if !t.ColorEditable {
				return ErrColorLocked
			}
			if _, err := domain.ParseColor(*edit.Color); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidEdit, err)
			}
			t.Color = *edit.Color
		}

		if edit.XPercent != nil {
			if !domain.InPercentRange(*edit.XPercent) {
				return fmt.Errorf("%w: xPercent %v outside 0..100", ErrInvalidEdit, *edit.XPercent)
			}
			t.XPercent = *edit.XPercent
		}

		if edit.YPercent != nil {
			if !domain.InPercentRange(*edit.YPercent) {
				return fmt.Errorf("%w: yPercent %v outside 0..100", ErrInvalidEdit, *edit.YPercent)
			}
			t.YPercent = *edit.YPercent
		}

		s.Texts[index] = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug().Str("session_id", id).Int("index", index).Msg("Text layer edited")
	return s, nil
}

// SelectTint picks a palette entry by name; an empty name restores the
// blank option.
func (e *Editor) SelectTint(ctx context.Context, id, name string) (*domain.Session, error) {
	return e.update(id, func(s *domain.Session) error {
		if !e.store.OverlayEnabled() {
			return ErrOverlayDisabled
		}

		if name == "" {
			s.Tint = nil
			return nil
		}

		c, ok := e.store.Tint(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTint, name)
		}
		s.Tint = &c
		return nil
	})
}

// Mount records the UI element that renders layer index.
func (e *Editor) Mount(ctx context.Context, id string, index int, handle string) error {
	if handle == "" || len(handle) > maxElementHandleLen || !utf8.ValidString(handle) {
		return ErrInvalidElementID
	}

	_, err := e.update(id, func(s *domain.Session) error {
		if index < 0 || index >= len(s.Texts) {
			return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(s.Texts))
		}
		s.Elements[index] = handle
		return nil
	})
	return err
}

// Unmount forgets the element for layer index. Unmounting a layer that has
// no element is a no-op.
func (e *Editor) Unmount(ctx context.Context, id string, index int) error {
	_, err := e.update(id, func(s *domain.Session) error {
		if index < 0 || index >= len(s.Texts) {
			return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(s.Texts))
		}
		delete(s.Elements, index)
		return nil
	})
	return err
}

func (e *Editor) Element(ctx context.Context, id string, index int) (string, bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s, ok := e.sessions[id]
	if !ok {
		return "", false, ErrSessionNotFound
	}
	handle, ok := s.Elements[index]
	return handle, ok, nil
}

func (e *Editor) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.sessions)
}

// EvictIdle drops sessions whose last change is older than cutoff and
// reports how many were removed.
func (e *Editor) EvictIdle(ctx context.Context, cutoff time.Time) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	evicted := 0
	for id, s := range e.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(e.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		e.logger.Info().
			Int("evicted", evicted).
			Int("remaining", len(e.sessions)).
			Msg("Idle editor sessions evicted")
	}
	return evicted
}

// update runs fn on a scratch copy and commits it only when fn succeeds.
func (e *Editor) update(id string, fn func(s *domain.Session) error) (*domain.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	next := s.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now()
	e.sessions[id] = next

	return next.Clone(), nil
}

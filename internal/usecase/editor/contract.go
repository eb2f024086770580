package editor

import "memepop/internal/domain"

type presetStore interface {
	Profile() string
	Texts() []domain.Text
	OverlayEnabled() bool
	Tint(name string) (domain.OverlayColor, bool)
}

package site

import "memepop/internal/domain"

type presetStore interface {
	Profile() string
	Texts() []domain.Text
	Site() domain.SiteConfig
	OverlayEnabled() bool
	OverlayColors() []domain.OverlayColor
	BlankLabel() string
}

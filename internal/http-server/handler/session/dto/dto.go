package dto

import (
	"time"

	"memepop/internal/domain"
)

type EditTextRequest struct {
	Text     *string  `json:"text" validate:"omitempty,max=1000"`
	Color    *string  `json:"color" validate:"omitempty,max=64,csscolor"`
	XPercent *float64 `json:"xPercent" validate:"omitempty,gte=0,lte=100"`
	YPercent *float64 `json:"yPercent" validate:"omitempty,gte=0,lte=100"`
}

type ElementRequest struct {
	Handle string `json:"handle" validate:"required,max=128"`
}

// TintRequest selects a palette entry; an empty name picks the blank option.
type TintRequest struct {
	Name string `json:"name" validate:"max=64"`
}

type SessionResponse struct {
	ID        string               `json:"id"`
	Profile   string               `json:"profile"`
	Texts     []domain.Text        `json:"texts"`
	Tint      *domain.OverlayColor `json:"tint"`
	Elements  map[int]string       `json:"elements"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

type ElementResponse struct {
	Index   int    `json:"index"`
	Handle  string `json:"handle,omitempty"`
	Mounted bool   `json:"mounted"`
}

func (r EditTextRequest) ToEdit() domain.TextEdit {
	return domain.TextEdit{
		Text:     r.Text,
		Color:    r.Color,
		XPercent: r.XPercent,
		YPercent: r.YPercent,
	}
}

func NewSessionResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		Profile:   s.Profile,
		Texts:     s.Texts,
		Tint:      s.Tint,
		Elements:  s.Elements,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

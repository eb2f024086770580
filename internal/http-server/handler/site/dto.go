package site

import "memepop/internal/domain"

type SiteResponse struct {
	Profile        string `json:"profile"`
	Title          string `json:"title"`
	HeaderText     string `json:"headerText"`
	FooterText     string `json:"footerText"`
	OverlayEnabled bool   `json:"overlayEnabled"`
}

type TextsResponse struct {
	Texts []domain.Text `json:"texts"`
}

type OverlayResponse struct {
	Enabled    bool                  `json:"enabled"`
	BlankLabel string                `json:"blankLabel,omitempty"`
	Colors     []domain.OverlayColor `json:"colors"`
}

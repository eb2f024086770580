package domain

import "time"

// Session is one user's editing state. Texts are private copies of the
// profile defaults; Elements maps a layer index to the handle of the UI
// element currently rendering it and only holds mounted layers.
type Session struct {
	ID        string
	Profile   string
	Texts     []Text
	Tint      *OverlayColor
	Elements  map[int]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TextEdit is a partial update of one layer; nil fields are left as is.
type TextEdit struct {
	Text     *string
	Color    *string
	XPercent *float64
	YPercent *float64
}

func (e TextEdit) Empty() bool {
	return e.Text == nil && e.Color == nil && e.XPercent == nil && e.YPercent == nil
}

func (s *Session) Clone() *Session {
	out := *s
	out.Texts = CloneTexts(s.Texts)
	if s.Tint != nil {
		tint := *s.Tint
		out.Tint = &tint
	}
	out.Elements = make(map[int]string, len(s.Elements))
	for k, v := range s.Elements {
		out.Elements[k] = v
	}
	return &out
}

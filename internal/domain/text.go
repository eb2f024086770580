package domain

// Text is one overlay text layer. The live UI element rendering it is tracked
// outside the descriptor, by layer index, in the editor session.
type Text struct {
	Text          string  `json:"text" validate:"utf8"`
	XPercent      float64 `json:"xPercent" validate:"gte=0,lte=100"`
	YPercent      float64 `json:"yPercent" validate:"gte=0,lte=100"`
	FontSize      float64 `json:"fontSize" validate:"gt=0"`
	Editable      bool    `json:"editable"`
	Color         string  `json:"color" validate:"required,csscolor"`
	ColorEditable bool    `json:"colorEditable,omitempty"`
}

type OverlayColor struct {
	Name  string  `json:"name" validate:"required,utf8"`
	Red   int     `json:"red" validate:"gte=0,lte=255"`
	Green int     `json:"green" validate:"gte=0,lte=255"`
	Blue  int     `json:"blue" validate:"gte=0,lte=255"`
	Alpha float64 `json:"alpha" validate:"gte=0,lte=1"`
}

type Overlay struct {
	BlankLabel string         `json:"blankLabel" validate:"required,utf8"`
	Colors     []OverlayColor `json:"colors" validate:"required,min=1,dive"`
}

type SiteConfig struct {
	Title      string   `json:"title" validate:"required,utf8"`
	HeaderText string   `json:"headerText" validate:"required,utf8"`
	FooterText string   `json:"footerText" validate:"required,utf8"`
	Overlay    *Overlay `json:"overlay,omitempty"`
}

// Profile is a named set of defaults selectable at startup.
type Profile struct {
	Name  string     `json:"name" validate:"required"`
	Texts []Text     `json:"texts" validate:"required,min=1,dive"`
	Site  SiteConfig `json:"site"`
}

const (
	ProfileMemePop = "memepop"
	ProfileClassic = "classic"

	DefaultProfile = ProfileMemePop
)

const (
	MinPercent = 0
	MaxPercent = 100
)

func CloneTexts(texts []Text) []Text {
	out := make([]Text, len(texts))
	copy(out, texts)
	return out
}

// Clone returns a deep copy; a nil overlay stays nil.
func (s SiteConfig) Clone() SiteConfig {
	out := s
	if s.Overlay != nil {
		ov := *s.Overlay
		ov.Colors = make([]OverlayColor, len(s.Overlay.Colors))
		copy(ov.Colors, s.Overlay.Colors)
		out.Overlay = &ov
	}
	return out
}

func (p Profile) Clone() Profile {
	return Profile{
		Name:  p.Name,
		Texts: CloneTexts(p.Texts),
		Site:  p.Site.Clone(),
	}
}

func InPercentRange(v float64) bool {
	return v >= MinPercent && v <= MaxPercent
}

package preset

import "memepop/internal/domain"

const (
	siteTitle  = "MemePop"
	footerText = "Made with ❤️‍🔥 by @narze"
)

// memePop is the default profile: the caption's color can be changed and the
// tint picker is enabled.
var memePop = domain.Profile{
	Name: domain.ProfileMemePop,
	Texts: []domain.Text{
		{
			Text:          "Meme, I embrace.",
			XPercent:      50,
			YPercent:      90,
			FontSize:      96,
			Editable:      true,
			Color:         "white",
			ColorEditable: true,
		},
		{
			Text:     "memepop.vercel.app",
			XPercent: 83.5,
			YPercent: 98,
			FontSize: 32,
			Editable: false,
			Color:    "black",
		},
	},
	Site: domain.SiteConfig{
		Title:      siteTitle,
		HeaderText: siteTitle,
		FooterText: footerText,
		Overlay: &domain.Overlay{
			BlankLabel: "Change Overlay Color",
			Colors: []domain.OverlayColor{
				{Name: "Original", Red: 0, Green: 0, Blue: 0, Alpha: 0},
				{Name: "เขียว 1", Red: 32, Green: 90, Blue: 65, Alpha: 0.9},
				{Name: "เขียว 2", Red: 103, Green: 163, Blue: 59, Alpha: 0.9},
				{Name: "เขียว 3", Red: 0, Green: 192, Blue: 139, Alpha: 0.9},
				{Name: "ส้ม", Red: 255, Green: 180, Blue: 73, Alpha: 0.9},
				{Name: "เหลือง", Red: 248, Green: 223, Blue: 82, Alpha: 0.9},
				{Name: "น้ำเงิน", Red: 0, Green: 113, Blue: 206, Alpha: 0.9},
				{Name: "ม่วง", Red: 72, Green: 0, Blue: 134, Alpha: 0.9},
				{Name: "Red", Red: 255, Green: 0, Blue: 0, Alpha: 0.1},
				{Name: "Green", Red: 50, Green: 255, Blue: 50, Alpha: 0.5},
				{Name: "White", Red: 255, Green: 255, Blue: 255, Alpha: 1.0},
			},
		},
	},
}

// classic has fixed colors and no tint picker.
var classic = domain.Profile{
	Name: domain.ProfileClassic,
	Texts: []domain.Text{
		{
			Text:     "Meme, I embrace.",
			XPercent: 50,
			YPercent: 90,
			FontSize: 96,
			Editable: true,
			Color:    "white",
		},
		{
			Text:     "memepop.vercel.app",
			XPercent: 83.5,
			YPercent: 98,
			FontSize: 32,
			Editable: false,
			Color:    "black",
		},
	},
	Site: domain.SiteConfig{
		Title:      siteTitle,
		HeaderText: siteTitle,
		FooterText: footerText,
	},
}

var profiles = map[string]domain.Profile{
	memePop.Name: memePop,
	classic.Name: classic,
}

package model

// Palette is the fixed set of bar colors.
var Palette = []string{
	"#FF6B6B",
	"#FF922B",
	"#FCC419",
	"#51CF66",
	"#339AF0",
	"#845EF7",
	"#F06595",
	"#868E96",
}

// PaletteColor cycles through the palette. Negative n maps to the first color.
func PaletteColor(n int) string {
	if n < 0 {
		n = 0
	}
	return Palette[n%len(Palette)]
}

// InPalette reports whether color is one of the palette entries.
func InPalette(color string) bool {
	for _, c := range Palette {
		if c == color {
			return true
		}
	}
	return false
}

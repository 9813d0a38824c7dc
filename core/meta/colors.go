package meta

// genreColors assigns a display color to each known genre tag.
var genreColors = map[string]string{
	"Rock":        "#e74c3c",
	"Pop":         "#9b59b6",
	"Hip-Hop":     "#f39c12",
	"Jazz":        "#2ecc71",
	"Classical":   "#3498db",
	"Electronic":  "#1abc9c",
	"Country":     "#e67e22",
	"Blues":       "#34495e",
	"Reggae":      "#27ae60",
	"Folk":        "#8e44ad",
	"Alternative": "#e74c3c",
	"Indie":       "#f1c40f",
	"Metal":       "#95a5a6",
	"Punk":        "#c0392b",
	"RnB":         "#9b59b6",
	"Soul":        "#e67e22",
	"Funk":        "#f39c12",
	"Unknown":     "#7f8c8d",
}

// GenreColor returns the display color for a genre name, falling back to
// the Unknown color for unrecognized names.
func GenreColor(name string) string {
	if color, ok := genreColors[name]; ok {
		return color
	}
	return genreColors["Unknown"]
}

package scene

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// DefaultBackground is the initial scene background.
const DefaultBackground = "#b8bec6"

// ErrInvalidColor is wrapped by every color parse failure.
var ErrInvalidColor = errors.New("invalid color")

// ParseColor accepts the CSS forms the control panel and config produce:
// "#rgb", "#rrggbb", "rgb(r, g, b)" with 0-255 or percentage channels, and
// the SVG color keywords.
func ParseColor(style string) (colorful.Color, error) {
	s := strings.ToLower(strings.TrimSpace(style))
	switch {
	case s == "":
		return colorful.Color{}, fmt.Errorf("%w: empty", ErrInvalidColor)
	case strings.HasPrefix(s, "#"):
		if !isHex(s[1:]) || (len(s) != 4 && len(s) != 7) {
			return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, style)
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, style)
		}
		return c, nil
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGB(style, s[len("rgb("):len(s)-1])
	}
	if rgba, ok := colornames.Map[s]; ok {
		return colorful.Color{
			R: float64(rgba.R) / 255,
			G: float64(rgba.G) / 255,
			B: float64(rgba.B) / 255,
		}, nil
	}
	return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, style)
}

func parseRGB(style, body string) (colorful.Color, error) {
	parts := strings.Split(body, ",")
	if len(parts) != 3 {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, style)
	}
	var ch [3]float64
	for i, p := range parts {
		p = strings.TrimSpace(p)
		scale := 255.0
		if strings.HasSuffix(p, "%") {
			p = strings.TrimSuffix(p, "%")
			scale = 100
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 || v > scale {
			return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, style)
		}
		ch[i] = v / scale
	}
	return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

func isHex(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return s != ""
}

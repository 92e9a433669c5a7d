package assets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"github.com/toxichemicals/GO/holy-portfolio/logging"
)

// FontResult is delivered once a font load has finished.
type FontResult struct {
	Font *sfnt.Font
	Err  error
}

// LoadFont parses the font at path on a separate goroutine. An empty path
// selects the embedded Go Regular face. The returned channel receives exactly
// one result and is then closed.
func LoadFont(ctx context.Context, path string) <-chan FontResult {
	out := make(chan FontResult, 1)
	go func() {
		defer close(out)
		f, err := readFont(path)
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			logging.Logger().Warn("font load failed", "path", path, "err", err)
			out <- FontResult{Err: err}
			return
		}
		logging.Logger().Info("font loaded", "path", fontLabel(path), "glyphs", f.NumGlyphs())
		out <- FontResult{Font: f}
	}()
	return out
}

// ParseFont parses raw TrueType/OpenType data.
func ParseFont(data []byte) (*sfnt.Font, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return f, nil
}

func readFont(path string) (*sfnt.Font, error) {
	if path == "" {
		return ParseFont(goregular.TTF)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}
	return ParseFont(data)
}

func fontLabel(path string) string {
	if path == "" {
		return "embedded:goregular"
	}
	return path
}

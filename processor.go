package texel

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/esimov/texel/internal/logger"
	"github.com/esimov/texel/utils"
)

// Filter names one of the image operations the Processor can run.
type Filter string

// The supported filters. The values double as CLI command names and output file suffixes.
const (
	NormalMapFilter    Filter = "normal"
	BoxBlurFilter      Filter = "blur"
	RadialBlurFilter   Filter = "radial"
	GaussianBlurFilter Filter = "gaussian"
)

// Default filter parameters.
const (
	DefaultNormalStrength = 5.0
	DefaultBlurRadius     = 3
	DefaultRadialStrength = 0.02
	DefaultSigma          = 1.0
)

// Processor options
type Processor struct {
	Filter Filter
	// Strength is used by the normal map and the radial blur.
	Strength float64
	Radius   int
	Sigma    float64
	// Center of the radial blur; the image center when nil.
	Center *image.Point
	// PipeFormat is the encoding used when the destination is not a named file.
	PipeFormat imaging.Format
	Logger     logger.Logger
}

// NewProcessor returns a processor for the filter with the default parameters.
func NewProcessor(f Filter) *Processor {
	p := &Processor{
		Filter:     f,
		Radius:     DefaultBlurRadius,
		Sigma:      DefaultSigma,
		PipeFormat: imaging.PNG,
	}
	switch f {
	case NormalMapFilter:
		p.Strength = DefaultNormalStrength
	case RadialBlurFilter:
		p.Strength = DefaultRadialStrength
	}
	return p
}

func (p *Processor) log() logger.Logger {
	if p.Logger == nil {
		return logger.Nop()
	}
	return p.Logger
}

// Apply runs the selected filter over the image.
func (p *Processor) Apply(img image.Image) (image.Image, error) {
	switch p.Filter {
	case NormalMapFilter:
		return NormalMap(img, p.Strength)
	case BoxBlurFilter:
		return BoxBlur(img, p.Radius)
	case RadialBlurFilter:
		return RadialBlur(img, p.Center, p.Strength)
	case GaussianBlurFilter:
		return GaussianBlur(img, p.Sigma)
	}
	return nil, fmt.Errorf("filter %q: %w", string(p.Filter), ErrInvalidOption)
}

// Process is the main entry point for the filtering operation: it decodes the source,
// applies the filter and encodes the result into the writer. The output format follows
// the file extension when w is an *os.File, otherwise PipeFormat is used.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	src, err := Decode(r)
	if err != nil {
		return err
	}

	now := time.Now()
	res, err := p.Apply(src)
	if err != nil {
		return err
	}
	p.log().Debug("processor", "filter applied", logger.Fields{
		"filter":  string(p.Filter),
		"width":   res.Bounds().Dx(),
		"height":  res.Bounds().Dy(),
		"elapsed": utils.FormatTime(time.Since(now)),
	})

	format := p.PipeFormat
	if f, ok := w.(*os.File); ok && f != os.Stdout {
		if format, err = FormatFromExt(filepath.Ext(f.Name())); err != nil {
			return err
		}
	}
	return Encode(w, res, format)
}

// OutputName derives the name of a filtered file from its source path:
// "photo.jpg" filtered with the box blur becomes "photo_blur.jpg".
func OutputName(src string, f Filter) string {
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "_" + string(f) + ext
}

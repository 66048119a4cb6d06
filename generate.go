package texel

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/esimov/texel/internal/logger"
)

// DefaultOctaves is the number of noise images composited when none is specified.
const DefaultOctaves = 4

// NoiseBatch writes a series of white noise images and optionally
// composites the last Octaves of them with fractal Brownian motion,
// the oldest of those being the base octave.
type NoiseBatch struct {
	Width, Height int
	Count         int
	// Seed makes the batch reproducible; a clock seeded generator is used when nil.
	Seed *uint64
	Dir  string
	// Composite also writes fbm.png made of the generated noise images.
	Composite bool
	Octaves   int
	FBM       FBMOptions
	Logger    logger.Logger
}

func (b *NoiseBatch) log() logger.Logger {
	if b.Logger == nil {
		return logger.Nop()
	}
	return b.Logger
}

// Run generates the batch and returns the paths of the written files in creation order.
// Files are named noise_1.png ... noise_N.png and fbm.png.
func (b *NoiseBatch) Run() ([]string, error) {
	width, height := b.Width, b.Height
	if width <= 0 {
		width = DefaultNoiseWidth
	}
	if height <= 0 {
		height = DefaultNoiseHeight
	}
	count := b.Count
	if count <= 0 {
		count = 1
	}
	octaves := b.Octaves
	if octaves <= 0 {
		octaves = DefaultOctaves
	}

	gen := NewRandomNoiseGenerator()
	if b.Seed != nil {
		gen = NewNoiseGenerator(*b.Seed)
	}

	if err := os.MkdirAll(b.Dir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create the destination directory: %w", err)
	}

	var (
		paths []string
		pool  []image.Image
	)
	for i := 1; i <= count; i++ {
		img, err := gen.Generate(width, height)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(b.Dir, fmt.Sprintf("noise_%d.png", i))
		if err := EncodeFile(path, img); err != nil {
			return paths, err
		}
		paths = append(paths, path)
		pool = append(pool, img)
		if len(pool) > octaves {
			pool = pool[1:]
		}
		b.log().Debug("noise", "noise image generated", logger.Fields{"path": path, "width": width, "height": height})
	}

	if !b.Composite {
		return paths, nil
	}

	fbm, err := FBM(pool, &b.FBM)
	if err != nil {
		return paths, err
	}
	path := filepath.Join(b.Dir, "fbm.png")
	if err := EncodeFile(path, fbm); err != nil {
		return paths, err
	}
	b.log().Info("noise", "fbm composite generated", logger.Fields{"path": path, "octaves": len(pool)})

	return append(paths, path), nil
}

// CompositeFiles decodes the octave files in order and composites them with FBM into dst.
func CompositeFiles(dst string, octaves []string, opts *FBMOptions) error {
	images := make([]image.Image, 0, len(octaves))
	for _, path := range octaves {
		img, err := DecodeFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		images = append(images, img)
	}

	fbm, err := FBM(images, opts)
	if err != nil {
		return err
	}
	return EncodeFile(dst, fbm)
}

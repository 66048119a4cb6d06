/*
Package texel is a small image filtering library with a companion command line tool.
It derives normal maps from height maps, applies box, radial and gaussian blurs
and generates white noise images which can be composited with fractal Brownian motion.

Every filter is a pure function: it reads the source image and returns a new one,
so the filters are safe to call concurrently on independent images.

The package provides a command line interface, supporting various flags for the different operations.
To check the supported commands type:

	$ texel --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"github.com/esimov/texel"
	)

	func main() {
		p := texel.NewProcessor(texel.NormalMapFilter)
		p.Strength = 2.5

		if err := p.Process(in, out); err != nil {
			fmt.Printf("Error processing the image: %s", err.Error())
		}
	}
*/
package texel

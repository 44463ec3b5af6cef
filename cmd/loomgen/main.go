// Command loomgen renders colormap lookup strips and thumbnails from the
// XML control-point format, and optionally validates the transfer-function
// shader.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/visloom/loom"
)

func main() {
	var (
		input       = flag.String("colormap", "", "colormap XML file (required)")
		width       = flag.Int("width", 1024, "strip width in pixels")
		output      = flag.String("output", "colormap.png", "output strip file")
		thumbnail   = flag.String("thumbnail", "", "optional thumbnail output file")
		thumbWidth  = flag.Int("thumb-width", 128, "thumbnail width")
		thumbHeight = flag.Int("thumb-height", 16, "thumbnail height")
		flip        = flag.Bool("flip", false, "mirror the colormap before rendering")
		checkShader = flag.Bool("check-shader", false, "compile the compositor shader and exit")
	)
	flag.Parse()

	if *checkShader {
		spirv, err := loom.CompileTransferShader()
		if err != nil {
			log.Fatalf("Shader compilation failed: %v", err)
		}
		log.Printf("Shader OK (%d bytes of SPIR-V)", len(spirv))
		return
	}

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *input, err)
	}
	cm, err := loom.ColormapFromXML(data)
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", *input, err)
	}
	if *flip {
		cm.Flip()
	}

	strip := cm.RasterStrip(*width)
	if err := strip.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save %s: %v", *output, err)
	}
	log.Printf("Strip saved to %s (%dx1, %d control points)", *output, *width, cm.Len())

	if *thumbnail != "" {
		thumb := strip.Thumbnail(*thumbWidth, *thumbHeight)
		if err := thumb.SavePNG(*thumbnail); err != nil {
			log.Fatalf("Failed to save %s: %v", *thumbnail, err)
		}
		log.Printf("Thumbnail saved to %s (%dx%d)", *thumbnail, *thumbWidth, *thumbHeight)
	}
}

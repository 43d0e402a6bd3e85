package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

func main() {
	defaults := DefaultPreviewOptions()
	var (
		preview  = flag.Bool("preview", false, "Print a projected wireframe instead of render buffers.")
		indent   = flag.Bool("indent", false, "Indent the JSON output.")
		width    = flag.Int("width", defaults.Width, "Preview width in pixels.")
		height   = flag.Int("height", defaults.Height, "Preview height in pixels.")
		fov      = flag.Float64("fov", defaults.FOV, "Preview vertical field of view in degrees.")
		pitch    = flag.Float64("pitch", defaults.Pitch, "Preview camera pitch in degrees.")
		yaw      = flag.Float64("yaw", defaults.Yaw, "Preview camera yaw in degrees.")
		distance = flag.Float64("distance", defaults.Distance, "Preview camera distance.")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: surfkit [flags] [script.surf]\n\nReads the script from stdin when no file is given.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	source, err := readSource(flag.Args())
	if err != nil {
		fatalf("%v", err)
	}

	app := NewApp()
	var (
		out    any
		failed bool
	)
	if *preview {
		r := app.Preview(source, PreviewOptions{
			Width:    *width,
			Height:   *height,
			FOV:      *fov,
			Pitch:    *pitch,
			Yaw:      *yaw,
			Distance: *distance,
		})
		out, failed = r, len(r.Errors) > 0
	} else {
		r := app.Evaluate(source)
		out, failed = r, len(r.Errors) > 0
	}

	enc := json.NewEncoder(os.Stdout)
	if *indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		fatalf("encode: %v", err)
	}
	if failed {
		os.Exit(1)
	}
}

// readSource reads the script named by args, or stdin when args is empty.
func readSource(args []string) (string, error) {
	switch len(args) {
	case 0:
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	case 1:
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		log.Printf("evaluating %s (%d bytes)", args[0], len(b))
		return string(b), nil
	}
	return "", fmt.Errorf("expected at most one script, got %d", len(args))
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"
	"golang.org/x/term"

	artoolkit "github.com/AR-js-org/artoolkit5-go"
	"github.com/AR-js-org/artoolkit5-go/assets"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to the native tracking module (.wasm)")
		sceneFile   = flag.String("scene", "", "YAML scene file: camera + markers to load")
		list        = flag.Bool("list", false, "List bound entry points and constants, then exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: artk -wasm <module.wasm> [-scene scene.yaml]")
		fmt.Fprintln(os.Stderr, "       artk -wasm <module.wasm> -list")
		fmt.Fprintln(os.Stderr, "       artk -wasm <module.wasm> -i  (interactive mode)")
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -i requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*wasmFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*wasmFile, *sceneFile, *list, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// scene describes the assets to load after the module is bound. Markers are
// loaded in file order.
type scene struct {
	Camera  string        `yaml:"camera"`
	Width   int           `yaml:"width"`
	Height  int           `yaml:"height"`
	Markers []sceneMarker `yaml:"markers"`
}

type sceneMarker struct {
	// Type is one of "pattern", "multi", "nft".
	Type   string `yaml:"type"`
	Source string `yaml:"source"`
}

func loadScene(path string) (*scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s := &scene{Width: 640, Height: 480}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if s.Camera == "" {
		return nil, fmt.Errorf("scene has no camera entry")
	}
	for i, m := range s.Markers {
		switch m.Type {
		case "pattern", "multi", "nft":
		default:
			return nil, fmt.Errorf("marker %d: unknown type %q", i, m.Type)
		}
	}
	return s, nil
}

func run(wasmFile, sceneFile string, listOnly, verbose bool) error {
	ctx := context.Background()

	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	logger := zap.NewNop()
	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
	}

	ark, err := artoolkit.New(ctx, data, artoolkit.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("load module: %w", err)
	}
	defer ark.Close(ctx)

	fmt.Printf("Module: %s\n", wasmFile)
	if v := ark.Version(); v != "" {
		fmt.Printf("Native version: %s\n", v)
	}

	if listOnly {
		printSurface(ark)
		return nil
	}

	if sceneFile == "" {
		fmt.Printf("Bound entry points: %d\n", len(ark.BoundFuncs()))
		fmt.Println("\nNo scene specified. Use -scene to load assets, or -list to inspect.")
		return nil
	}

	sc, err := loadScene(sceneFile)
	if err != nil {
		return err
	}
	return runScene(ctx, ark, sc, logger)
}

func runScene(ctx context.Context, ark *artoolkit.ARToolKit, sc *scene, logger *zap.Logger) error {
	loader := assets.NewLoader(ark, assets.WithLogger(logger))

	cameraID, err := loader.LoadCamera(ctx, assets.FromURL(sc.Camera))
	if err != nil {
		return fmt.Errorf("load camera: %w", err)
	}
	fmt.Printf("Camera loaded: handle %d\n", cameraID)

	controllerID, err := ark.Setup(ctx, sc.Width, sc.Height, cameraID)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	fmt.Printf("Controller ready: id %d (%dx%d)\n", controllerID, sc.Width, sc.Height)
	defer ark.Teardown(ctx, controllerID)

	for i, m := range sc.Markers {
		switch m.Type {
		case "pattern":
			id, err := loader.AddMarker(ctx, controllerID, assets.FromURL(m.Source))
			if err != nil {
				return fmt.Errorf("marker %d: %w", i, err)
			}
			fmt.Printf("Marker %d loaded: handle %d\n", i, id)
		case "multi":
			id, count, err := loader.AddMultiMarker(ctx, controllerID, m.Source)
			if err != nil {
				return fmt.Errorf("marker %d: %w", i, err)
			}
			fmt.Printf("Multi-marker %d loaded: handle %d (%d markers)\n", i, id, count)
		case "nft":
			id, err := loader.AddNFTMarker(ctx, controllerID, m.Source)
			if err != nil {
				return fmt.Errorf("marker %d: %w", i, err)
			}
			fmt.Printf("NFT marker %d loaded: handle %d\n", i, id)
		}
	}

	return nil
}

func printSurface(ark *artoolkit.ARToolKit) {
	funcs := ark.BoundFuncs()
	sort.Strings(funcs)
	fmt.Printf("\nBound entry points (%d):\n", len(funcs))
	for _, name := range funcs {
		fmt.Printf("  %s\n", name)
	}

	consts := ark.Constants()
	names := make([]string, 0, len(consts))
	for name := range consts {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Printf("\nExported constants (%d):\n", len(names))
	for _, name := range names {
		fmt.Printf("  %s = %d\n", name, consts[name])
	}

	if len(funcs) == 0 && len(names) == 0 {
		fmt.Println(strings.Repeat(" ", 2) + "(none)")
	}
}

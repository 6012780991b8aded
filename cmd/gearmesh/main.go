// gearmesh is a CLI utility for generating gear meshes without a window.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gearworks/internal/config"
	"github.com/Faultbox/gearworks/internal/export"
	"github.com/Faultbox/gearworks/internal/logger"
	"github.com/Faultbox/gearworks/internal/preview"
	"github.com/Faultbox/gearworks/pkg/gear"
	"github.com/Faultbox/gearworks/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "obj", "export":
		cmdExport(args)
	case "preview", "png":
		cmdPreview(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gearmesh - spur gear mesh generator

Usage:
  gearmesh <command> [options]

Commands:
  info                       Show vertex/triangle counts and bounds
  obj <out.obj|out.stl>      Export the mesh
  preview <out.png|out.webp> Render a software preview

Gear options (all commands):
  -config <file>   Read the gear section from a .yaml or .toml config
  -teeth -inner -outer -depth -width
  -v               Verbose logging

Examples:
  gearmesh info -teeth 20
  gearmesh obj -outer 4 -teeth 26 gear.obj
  gearmesh preview -size 1024 gear.webp`)
}

// gearFlags registers the shared gear options on fs.
type gearFlags struct {
	config  *string
	teeth   *int
	inner   *float64
	outer   *float64
	depth   *float64
	width   *float64
	verbose *bool
}

func newGearFlags(fs *flag.FlagSet) *gearFlags {
	return &gearFlags{
		config:  fs.String("config", "", "Config file to read the gear section from"),
		teeth:   fs.Int("teeth", 0, "Tooth count"),
		inner:   fs.Float64("inner", 0, "Bore radius"),
		outer:   fs.Float64("outer", 0, "Pitch radius"),
		depth:   fs.Float64("depth", 0, "Tooth depth"),
		width:   fs.Float64("width", 0, "Axial width"),
		verbose: fs.Bool("v", false, "Verbose logging"),
	}
}

// spec resolves defaults < config file < flags.
func (f *gearFlags) spec() (gear.Spec, error) {
	s := gear.Default()
	if *f.config != "" {
		cfg, err := config.LoadFile(*f.config)
		if err != nil {
			return s, err
		}
		s = cfg.Gear.Spec()
		s.Position = math.Vec3{}
	}
	if *f.teeth != 0 {
		s.Teeth = *f.teeth
	}
	if *f.inner > 0 {
		s.InnerRadius = float32(*f.inner)
	}
	if *f.outer > 0 {
		s.OuterRadius = float32(*f.outer)
	}
	if *f.depth > 0 {
		s.ToothDepth = float32(*f.depth)
	}
	if *f.width > 0 {
		s.Width = float32(*f.width)
	}
	return s, nil
}

func (f *gearFlags) initLogger() {
	level := "warn"
	if *f.verbose {
		level = "debug"
	}
	if err := logger.InitWithOptions(logger.Options{Level: level, Console: true, Output: os.Stderr}); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
}

// build parses args and generates the mesh, exiting on error.
func build(fs *flag.FlagSet, gf *gearFlags, args []string) (gear.Spec, *gear.Mesh) {
	fs.Parse(args)
	gf.initLogger()

	spec, err := gf.spec()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := spec.Validate(); err != nil {
		logger.Warn("gear parameters look wrong", zap.Error(err))
	}

	start := time.Now()
	mesh, err := gear.Build(spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("mesh built",
		zap.Object("gear", spec),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Duration("took", time.Since(start)),
	)
	return spec, mesh
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	gf := newGearFlags(fs)
	spec, mesh := build(fs, gf, args)
	defer logger.Sync()

	p := spec.Profile()
	fmt.Printf("Teeth:      %d\n", spec.Teeth)
	fmt.Printf("Radii:      bore %.3f  root %.3f  tip %.3f\n", p.R0, p.R1, p.R2)
	fmt.Printf("Width:      %.3f\n", spec.Width)
	fmt.Printf("Vertices:   %d\n", mesh.VertexCount())
	fmt.Printf("Triangles:  %d\n", mesh.TriangleCount())
	fmt.Printf("Bounds:     [%.3f %.3f %.3f] - [%.3f %.3f %.3f]\n",
		mesh.Bounds.Min[0], mesh.Bounds.Min[1], mesh.Bounds.Min[2],
		mesh.Bounds.Max[0], mesh.Bounds.Max[1], mesh.Bounds.Max[2])
	fmt.Printf("Degenerate: %d chord fallbacks\n", mesh.DegenerateChords)
	if err := spec.Validate(); err != nil {
		fmt.Printf("Warning:    %v\n", err)
	}
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("obj", flag.ExitOnError)
	gf := newGearFlags(fs)
	name := fs.String("name", "gear", "Object name")
	_, mesh := build(fs, gf, args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gearmesh obj [options] <out.obj|out.stl>")
		os.Exit(1)
	}
	out := fs.Arg(0)
	if err := export.WriteFile(out, mesh, *name); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d triangles)\n", out, mesh.TriangleCount())
}

func cmdPreview(args []string) {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	gf := newGearFlags(fs)
	size := fs.Int("size", 512, "Image width and height in pixels")
	ss := fs.Int("ss", 2, "Supersampling factor")
	yaw := fs.Float64("yaw", 0.35, "Camera yaw in radians")
	pitch := fs.Float64("pitch", 0.45, "Camera pitch in radians")
	spec, mesh := build(fs, gf, args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gearmesh preview [options] <out.png|out.webp>")
		os.Exit(1)
	}

	opts := preview.DefaultOptions()
	opts.Width, opts.Height = *size, *size
	opts.Supersample = *ss
	opts.Yaw, opts.Pitch = float32(*yaw), float32(*pitch)

	out := fs.Arg(0)
	if err := preview.RenderFile(out, mesh, spec.Transform(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", out)
}

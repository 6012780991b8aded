package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and physics wireframes")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagTeeth      = flag.Int("teeth", 0, "Tooth count of the gear template")
	flagInner      = flag.Float64("inner", 0, "Bore radius of the gear template")
	flagOuter      = flag.Float64("outer", 0, "Pitch radius of the gear template")
	flagDepth      = flag.Float64("depth", 0, "Tooth depth of the gear template")
	flagGearWidth  = flag.Float64("gear-width", 0, "Axial width of the gear template")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Physics.DebugDraw = true
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagTeeth > 0 {
		cfg.Gear.Teeth = *flagTeeth
	}
	if *flagInner > 0 {
		cfg.Gear.InnerRadius = float32(*flagInner)
	}
	if *flagOuter > 0 {
		cfg.Gear.OuterRadius = float32(*flagOuter)
	}
	if *flagDepth > 0 {
		cfg.Gear.ToothDepth = float32(*flagDepth)
	}
	if *flagGearWidth > 0 {
		cfg.Gear.Width = float32(*flagGearWidth)
	}
}

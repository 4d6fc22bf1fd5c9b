package config

import "flag"

// Flags holds the command-line overrides shared by every subcommand.
type Flags struct {
	config        *string
	debug         *bool
	axis          *string
	direction     *string
	scoring       *string
	bidirectional *bool
	quadStart     *bool
	outputDir     *string
	format        *string
	workers       *int
	logFile       *string
}

// RegisterFlags adds the shared overrides to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		config:        fs.String("config", "", "Path to config file"),
		debug:         fs.Bool("debug", false, "Enable debug logging"),
		axis:          fs.String("axis", "", "Seed axis (x, y, z)"),
		direction:     fs.String("direction", "", "Seed direction (max, min)"),
		scoring:       fs.String("scoring", "", "Seed edge scoring (angle, legacy-cosine)"),
		bidirectional: fs.Bool("both", false, "Walk open loops in both directions"),
		quadStart:     fs.Bool("quad-start", false, "Start the walk at a 4-valent corner of the seed edge"),
		outputDir:     fs.String("out", "", "Output directory for split pieces"),
		format:        fs.String("format", "", "Output format for split pieces (obj, yaml)"),
		workers:       fs.Int("workers", 0, "Batch worker count"),
		logFile:       fs.String("log", "", "Log file path"),
	}
}

// ConfigPath returns the explicit config path if provided via --config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.axis != "" {
		cfg.Selection.Axis = *f.axis
	}
	if *f.direction != "" {
		cfg.Selection.Direction = *f.direction
	}
	if *f.scoring != "" {
		cfg.Selection.Scoring = *f.scoring
	}
	if *f.bidirectional {
		cfg.Selection.Bidirectional = true
	}
	if *f.quadStart {
		cfg.Selection.QuadStart = true
	}
	if *f.outputDir != "" {
		cfg.Split.OutputDir = *f.outputDir
	}
	if *f.format != "" {
		cfg.Split.Format = *f.format
	}
	if *f.workers > 0 {
		cfg.Batch.Workers = *f.workers
	}
	if *f.logFile != "" {
		cfg.Logging.LogFile = *f.logFile
	}
}

// Command goburst fits exGaussian component models to burst records and
// writes fit reports and diagnostic figures.
//
// Usage:
//
//	goburst [flags] [input.json ...]
//
// Without positional inputs, every *.json record under the data directory
// is processed. Per-input failures are logged and counted; the exit status
// is non-zero only if at least one input failed.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/creasty/defaults"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/goburst/autofit"
	"github.com/sartorproj/goburst/plotfit"
	"github.com/sartorproj/goburst/timeseries"
)

type config struct {
	DataDir    string `yaml:"data_dir" default:"data"`
	OutputDir  string `yaml:"output_dir" default:"output"`
	FiguresDir string `yaml:"figures_dir" default:"figs"`
	LogLevel   string `yaml:"log_level" default:"info"`

	Fit struct {
		MaxComponents      int     `yaml:"max_components" default:"5"`
		MaxIterations      int     `yaml:"max_iterations" default:"400"`
		ImprovementTol     float64 `yaml:"improvement_tol" default:"0.001"`
		RSquaredTol        float64 `yaml:"rsquared_tol" default:"0.001"`
		ConditionThreshold float64 `yaml:"condition_threshold" default:"1e8"`
		RawCentreArea      float64 `yaml:"raw_centre_area" default:"0.90"`
		RawExtraWidth      float64 `yaml:"raw_extra_width" default:"0.20"`
		ModelCentreArea    float64 `yaml:"model_centre_area" default:"0.95"`
		SmoothSigma        float64 `yaml:"smooth_sigma" default:"2"`
	} `yaml:"fit"`
}

func loadConfig(path string) (*config, error) {
	var cfg config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if path == "" {
		return &cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	dataDir := flag.String("data", "", "input directory when no inputs are given (overrides config)")
	outDir := flag.String("out", "", "report output directory (overrides config)")
	figsDir := flag.String("figs", "", "figure output directory (overrides config)")
	showInitial := flag.Bool("show-initial", false, "also render the initial-guess overlay figure")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	if *figsDir != "" {
		cfg.FiguresDir = *figsDir
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid log level:", cfg.LogLevel)
		os.Exit(2)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	inputs := flag.Args()
	if len(inputs) == 0 {
		inputs, err = filepath.Glob(filepath.Join(cfg.DataDir, "*.json"))
		if err != nil || len(inputs) == 0 {
			log.Fatal().Str("dir", cfg.DataDir).Msg("no input records found")
		}
	}

	for _, dir := range []string{cfg.OutputDir, cfg.FiguresDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("cannot create output directory")
		}
	}

	failed := 0
	for _, input := range inputs {
		if err := process(input, cfg, *showInitial, log); err != nil {
			log.Error().Err(err).Str("input", input).Msg("processing failed")
			failed++
		}
	}

	log.Info().Int("processed", len(inputs)-failed).Int("failed", failed).Msg("batch done")
	if failed > 0 {
		os.Exit(1)
	}
}

// process runs the full pipeline for one input record.
func process(input string, cfg *config, showInitial bool, log zerolog.Logger) error {
	series, err := timeseries.LoadJSON(input)
	if err != nil {
		return err
	}
	if series.Name == "" {
		series.Name = burstName(input)
	}

	fitCfg := autofit.DefaultConfig()
	fitCfg.MaxComponents = cfg.Fit.MaxComponents
	fitCfg.MaxIterations = cfg.Fit.MaxIterations
	fitCfg.ImprovementTol = cfg.Fit.ImprovementTol
	fitCfg.RSquaredTol = cfg.Fit.RSquaredTol
	fitCfg.ConditionThreshold = cfg.Fit.ConditionThreshold
	fitCfg.RawCentreArea = cfg.Fit.RawCentreArea
	fitCfg.RawExtraWidth = cfg.Fit.RawExtraWidth
	fitCfg.ModelCentreArea = cfg.Fit.ModelCentreArea
	fitCfg.SmoothSigma = cfg.Fit.SmoothSigma
	fitCfg.Logger = log

	report, err := autofit.AutoFit(series, fitCfg)
	if err != nil {
		return err
	}

	outPath := filepath.Join(cfg.OutputDir, series.Name+"_out.json")
	if err := report.Save(outPath); err != nil {
		return err
	}

	figPath := filepath.Join(cfg.FiguresDir, series.Name+".png")
	if err := plotfit.Fitted(series, report, report.Optimum, figPath); err != nil {
		return err
	}
	if showInitial {
		overlayPath := filepath.Join(cfg.FiguresDir, series.Name+"_initial.png")
		if err := plotfit.InitialOverlay(series, report, report.Optimum, overlayPath); err != nil {
			return err
		}
	}

	s := report.Summary()
	log.Info().
		Str("burst", series.Name).
		Int("optimum_n", s.OptimumK).
		Float64("adjusted_r2", s.AdjustedRSquared).
		Float64("condition", s.Condition).
		Float64("timescale_ms", s.Timescale).
		Float64("timescale_uncertainty", s.TimescaleUncertainty).
		Float64("burst_width_ms", s.BurstWidth).
		Bool("unstable", s.Unstable).
		Str("report", outPath).
		Msg("burst fitted")
	return nil
}

// burstName derives the burst name from an input path, everything before
// the first dot of the base name.
func burstName(path string) string {
	name := filepath.Base(path)
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	return name
}

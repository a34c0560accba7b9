package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/fzft/go-collections/cmd"
	"github.com/fzft/go-collections/commands"
	"github.com/fzft/go-collections/config"
	"github.com/fzft/go-collections/internal/metrics"
	"github.com/fzft/go-collections/log"
	"github.com/fzft/go-collections/primitive"
)

var CLI struct {
	Config   string           `short:"c" help:"Configuration file path (default: ${default_config})"`
	LogLevel string           `name:"log-level" help:"Override log.level from the configuration"`
	Raw      bool             `help:"Print replies in the RESP3 wire form"`
	Version  kong.VersionFlag `name:"version" help:"Show version and exit"`

	Command []string `arg:"" optional:"" help:"Run one command and exit"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("collsh"),
		kong.Description("Interactive shell over in-memory sets and long-int maps."),
		kong.Vars{"version": versionString(), "default_config": config.DefaultPath},
	)
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "collsh: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}
	if CLI.LogLevel != "" {
		cfg.Log.Level = CLI.LogLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if err := log.InitLogger(log.Config{Level: cfg.Log.Level, Development: cfg.Log.Development}); err != nil {
		return err
	}
	defer log.Sync()

	var (
		opts     []primitive.Option
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		recorder, err := metrics.NewTableRecorder(reg)
		if err != nil {
			return err
		}
		opts = append(opts, primitive.WithObserver(recorder))
		gatherer = reg
	}
	registry := commands.NewRegistry(commands.NewKeyspace(cfg.Map.InitialCapacity, opts...), gatherer)
	log.Logger.Debug("configuration loaded",
		zap.String("config", CLI.Config),
		zap.Int("initial_capacity", cfg.Map.InitialCapacity),
		zap.Bool("metrics", cfg.Metrics.Enabled))

	mode := cmd.OutputStandard
	if CLI.Raw {
		mode = cmd.OutputRaw
	}
	cli := cmd.NewCli(&cmd.CliConfig{
		Prompt:      cfg.Shell.Prompt,
		HistoryFile: cfg.Shell.HistoryFile,
		Output:      mode,
	}, registry, os.Stdout)

	if len(CLI.Command) > 0 {
		cli.Exec(CLI.Command)
		return nil
	}
	return cli.Run(os.Stdin)
}

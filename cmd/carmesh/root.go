package main

import (
	"fmt"
	"io"
	"os"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	carmesh "github.com/carmesh/carmesh"
	"github.com/carmesh/carmesh/config"
	"github.com/carmesh/carmesh/engine"
	"github.com/carmesh/carmesh/logging"
	"github.com/carmesh/carmesh/model"
	"github.com/carmesh/carmesh/model/anthropic"
	"github.com/carmesh/carmesh/model/openai"
	"github.com/carmesh/carmesh/store"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "carmesh",
	Short: "Multi-agent automotive query engine",
	Long: `CarMesh answers car shopping questions by dispatching a plan of
specialized agents: listing discovery, market knowledge, price valuation,
financing and paperwork. Results merge into a single response with a full
execution trace.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file if one was given, defaults otherwise.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadFromFile(configPath)
}

// buildMesh assembles a CarMesh instance from configuration. The returned
// closer releases the listing store when a SQLite catalog is in use.
func buildMesh(cfg *config.Config, logger logging.Logger, extra ...func(o *carmesh.Options)) (*carmesh.CarMesh, io.Closer) {
	var closer io.Closer

	mesh := carmesh.New(append([]func(o *carmesh.Options){func(o *carmesh.Options) {
		o.EngineConfig = engine.Config{StepTimeout: cfg.Engine.StepTimeout}
		o.PlannerTopK = cfg.Knowledge.TopK
		o.Logger = logger

		if cfg.Storage.Driver == "sqlite" {
			s, err := store.NewSQLiteStore(cfg.Storage.Path)
			if err != nil {
				logger.Error("sqlite store unavailable, using in-memory inventory", "error", err)
			} else {
				o.ListingStore = s
				closer = s
			}
		}

		if m := buildModel(cfg, logger); m != nil {
			o.Model = m
		}
	}}, extra...)...)

	return mesh, closer
}

// buildModel constructs the configured summary model, or nil for degraded
// mode.
func buildModel(cfg *config.Config, logger logging.Logger) model.Model {
	key := cfg.APIKey()
	switch cfg.Model.Provider {
	case "openai":
		if key == "" {
			logger.Warn("OPENAI_API_KEY not set, running degraded")
			return nil
		}
		return openai.NewModel(func(o *openai.Options) {
			o.APIKey = key
			o.Temperature = cfg.Model.Temperature
			if cfg.Model.Name != "" {
				o.Model = cfg.Model.Name
			}
		})
	case "anthropic":
		if key == "" {
			logger.Warn("ANTHROPIC_API_KEY not set, running degraded")
			return nil
		}
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.APIKey = key
			o.Temperature = cfg.Model.Temperature
			if cfg.Model.Name != "" {
				o.Model = anthropicsdk.Model(cfg.Model.Name)
			}
		})
	}
	return nil
}

func buildLogger(cfg *config.Config) logging.Logger {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
	})
}

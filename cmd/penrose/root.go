package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/xiaoyxue/penrose/internal/config"
	"github.com/xiaoyxue/penrose/internal/core/adt"
	"github.com/xiaoyxue/penrose/internal/core/catalog"
	"github.com/xiaoyxue/penrose/internal/core/state"
	"github.com/xiaoyxue/penrose/internal/registry"
	"github.com/xiaoyxue/penrose/internal/shapeset"
)

var (
	fixturePath string
	configPath  string
	verbose     bool
	canvas      canvasFlag
	logger      = log.New(os.Stderr, "penrose: ", 0)
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "penrose",
		Short:         "compile, sample and evaluate a diagram translation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&fixturePath, "fixture", "", "path to a YAML translation fixture (required)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML run config (optional; defaults apply)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print the discovered State alongside command output")
	root.PersistentFlags().Var(&canvas, "canvas", "canvas dimensions as WxH, overriding --config (optional)")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newEvalCmd())
	root.AddCommand(newLayerCmd())
	root.AddCommand(newResampleCmd())
	return root
}

// catalogAndRegistry returns the built-in shape catalog and registry every
// subcommand runs against; there is no plugin mechanism to select another.
func catalogAndRegistry() (catalog.Catalog, *registry.Registry) {
	return shapeset.New(), registry.Builtins()
}

// loadState reads --fixture (and --config, if given) and assembles the
// initial State.
func loadState() (*state.State, error) {
	if fixturePath == "" {
		return nil, fmt.Errorf("--fixture is required")
	}
	cfg := config.Default()
	if configPath != "" {
		f, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("opening config: %w", err)
		}
		defer f.Close()
		cfg, err = config.Load(f)
		if err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	if canvas.set {
		cfg.CanvasWidth, cfg.CanvasHeight = canvas.width, canvas.height
	}

	data, err := os.ReadFile(fixturePath)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	fx, err := config.LoadFixture(data)
	if err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	t, err := config.BuildTranslation(fx)
	if err != nil {
		return nil, fmt.Errorf("building translation: %w", err)
	}

	cat, reg := catalogAndRegistry()
	s, berr := state.New(t, cat, reg, cfg.Params())
	if berr != nil {
		return nil, berr
	}
	for _, w := range s.Translation.Warnings {
		logger.Printf("warning: %s", w)
	}
	return s, nil
}

func pathStrings(paths []adt.Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.String()
	}
	return out
}

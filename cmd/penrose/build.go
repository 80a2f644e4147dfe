package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xiaoyxue/penrose/internal/debug"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "compile a fixture into a sampled State and print its varying state",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadState()
			if err != nil {
				return err
			}
			if verbose {
				fmt.Fprint(os.Stderr, debug.State(s))
			}
			out, marshalErr := yaml.Marshal(map[string]interface{}{
				"varying_paths": pathStrings(s.VaryingPaths),
				"varying_state": s.VaryingState,
				"ordering":      s.ShapeOrdering,
			})
			if marshalErr != nil {
				return marshalErr
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
}

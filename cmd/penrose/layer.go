package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xiaoyxue/penrose/internal/core/state"
)

func newLayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layer",
		Short: "print the back-to-front draw order",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadState()
			if err != nil {
				return err
			}
			// s.ShapeOrdering already reflects the result state.New computed
			// (any cycle warning was logged there); recomputing here lets
			// `layer` be run against a translation edited since build.
			ordering, ok, berr := state.ComputeLayering(s.Translation)
			if berr != nil {
				return berr
			}
			if !ok {
				logger.Printf("warning: layering cycle detected, printed order is the declaration fallback")
				ordering = make([]string, len(s.ShapePaths))
				for i, p := range s.ShapePaths {
					ordering[i] = p.String()
				}
			}
			out, marshalErr := yaml.Marshal(ordering)
			if marshalErr != nil {
				return marshalErr
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
}

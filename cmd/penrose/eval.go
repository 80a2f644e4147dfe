package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xiaoyxue/penrose/internal/core/state"
	"github.com/xiaoyxue/penrose/internal/debug"
)

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval",
		Short: "evaluate every declared shape under the current varying state",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadState()
			if err != nil {
				return err
			}
			shapes, next, berr := state.EvalTranslation(s)
			if berr != nil {
				return berr
			}
			if verbose {
				fmt.Fprint(os.Stderr, debug.State(next))
			}
			out, marshalErr := yaml.Marshal(shapes)
			if marshalErr != nil {
				return marshalErr
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
}

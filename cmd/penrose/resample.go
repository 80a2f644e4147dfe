package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xiaoyxue/penrose/internal/core/state"
	"github.com/xiaoyxue/penrose/internal/debug"
)

func newResampleCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "resample",
		Short: "draw n candidate varying-state vectors and keep the lowest-energy one",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadState()
			if err != nil {
				return err
			}
			best, berr := state.ResampleBest(s, n)
			if berr != nil {
				return berr
			}
			energy, scored, berr := state.EvalEnergy(best)
			if berr != nil {
				return berr
			}
			if verbose {
				fmt.Fprint(os.Stderr, debug.State(scored))
			}
			out, marshalErr := yaml.Marshal(map[string]interface{}{
				"varying_state": scored.VaryingState,
				"energy":        energy,
			})
			if marshalErr != nil {
				return marshalErr
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
	cmd.Flags().IntVar(&n, "n", 0, "number of candidates to draw (0 uses the config's resamples count)")
	return cmd
}

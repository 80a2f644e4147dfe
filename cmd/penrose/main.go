// Command penrose compiles a fixture translation, samples it, and drives
// evaluation/layering/resampling against the result from the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(run())
}

// run executes the root command and returns a process exit code; split out
// from main so testscript can drive it in-process via RunMain.
func run() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

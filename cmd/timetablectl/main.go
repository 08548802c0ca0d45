// timetablectl checks schedule fixtures offline: conflicts, metrics, slot
// bookability, candidate ranking and development tokens.
package main

import (
	"fmt"
	"os"
)

var (
	version = "1.0.0"
	commit  = "dev"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

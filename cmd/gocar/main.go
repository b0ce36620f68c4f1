// Command gocar builds and tests C/C++ projects described by a
// Gocar.toml manifest.
package main

import (
	"os"

	"github.com/gocar-build/gocar/internal/base"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		base.LogErrorf(LogCLI, "%v", err)
		os.Exit(1)
	}
}

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gocar-build/gocar/internal/base"
	"github.com/gocar-build/gocar/internal/process"
	"github.com/spf13/cobra"
)

var LogCLI = base.NewLogCategory("CLI")

var (
	flagRelease bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "gocar",
	Short:         "Declarative build driver for C/C++ projects",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			base.SetVerbosity(base.LogDebug)
		}
		watchForInterrupt()
	},
}

// watchForInterrupt, on the first Ctrl-C or SIGTERM, terminates every
// child process group this run has spawned, then stops intercepting
// signals and sends the CLI itself an interrupt so the default signal
// disposition ends it.
func watchForInterrupt() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		process.KillAllProcessGroups()
		signal.Stop(sig)
		p, err := os.FindProcess(os.Getpid())
		if err == nil {
			_ = p.Signal(os.Interrupt)
		}
	}()
}

func profileName() string {
	if flagRelease {
		return "release"
	}
	return "debug"
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagRelease, "release", false, "build with the release profile instead of debug")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(buildCmd, testCmd, runCmd)
}

// Command calyx-sim runs demo designs against JSON test vectors.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is filled when building with make, but *not* when
// installing via "go install".
var Version string

var rootCmd = &cobra.Command{
	Use:   "calyx-sim",
	Short: "A simulator for hardware-description intermediate programs.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetFormatter(&log.TextFormatter{
			ForceColors: term.IsTerminal(int(os.Stderr.Fd())),
		})
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			log.SetLevel(log.DebugLevel)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Report the version of this executable.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print("calyx-sim ")
		if Version != "" {
			fmt.Println(Version)
		} else if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Println(info.Main.Version)
		} else {
			fmt.Println("(unknown version)")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

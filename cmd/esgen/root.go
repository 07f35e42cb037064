package main

import (
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/esgen/esgen"
)

// version is filled when building with make, but *not* when installing via
// "go install".
var version string

var rootCmd = &cobra.Command{
	Use:   "esgen",
	Short: "Generate ECMAScript source from a bundle descriptor.",
	Long:  "esgen reads a small JSON/YAML bundle descriptor and renders it as ECMAScript, or evaluates it in-process.",
	Run: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "version") {
			printVersion()
		} else {
			_ = cmd.Help()
		}
	},
}

func printVersion() {
	os.Stdout.WriteString("esgen ")

	switch {
	case version != "":
		os.Stdout.WriteString(version)
	default:
		if info, ok := debug.ReadBuildInfo(); ok {
			os.Stdout.WriteString(info.Main.Version)
		} else {
			os.Stdout.WriteString("(unknown version)")
		}
	}

	os.Stdout.WriteString("\n")
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "report the version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(evaluateCmd)
}

func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		log.Fatal(err)
	}

	return r
}

func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		log.Fatal(err)
	}

	return r
}

func configureLogging(cmd *cobra.Command) {
	if getFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
		esgen.Log.SetLevel(log.DebugLevel)
	}
}

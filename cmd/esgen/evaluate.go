package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/esgen/esgen"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [flags] descriptor_file",
	Short: "render a bundle descriptor as an IIFE and run it in-process",
	Long:  "Render a bundle descriptor (JSON or YAML) as an async IIFE, evaluate it with an in-process ECMAScript host, and print the resulting exports as JSON.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		d, err := loadDescriptor(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		opts := []esgen.Option{esgen.WithReservedNames(d.Reserved...)}
		build := buildFromDescriptor(d)

		if getFlag(cmd, "preview") {
			previewOpts := append([]esgen.Option{esgen.WithFormat(d.format(false))}, opts...)

			source, err := esgen.Generate(build, previewOpts...)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}

			printPreview(source)
		}

		exports, err := esgen.Evaluate(build, opts...)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		encoded, err := json.MarshalIndent(exports, "", "  ")
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		fmt.Println(string(encoded))
	},
}

func init() {
	evaluateCmd.Flags().Bool("preview", false, "print the generated source before evaluating it")
}

// printPreview writes source to stdout, wrapped to the terminal's reported
// width when stdout is a real terminal (term.GetSize fails on a redirected
// pipe, in which case lines are printed as-is).
func printPreview(source string) {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		fmt.Println(source)
		fmt.Println("---")

		return
	}

	for _, line := range strings.Split(source, "\n") {
		fmt.Println(wrapLine(line, width))
	}

	fmt.Println(strings.Repeat("-", width))
}

// wrapLine inserts newlines so no printed segment exceeds width columns,
// breaking only between words where possible.
func wrapLine(line string, width int) string {
	if len(line) <= width {
		return line
	}

	var b strings.Builder

	for len(line) > width {
		cut := strings.LastIndex(line[:width], " ")
		if cut <= 0 {
			cut = width
		}

		b.WriteString(line[:cut])
		b.WriteString("\n")
		line = strings.TrimPrefix(line[cut:], " ")
	}

	b.WriteString(line)

	return b.String()
}

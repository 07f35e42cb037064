package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/esgen/esgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] descriptor_file",
	Short: "render a bundle descriptor as an ECMAScript module",
	Long:  "Render a bundle descriptor (JSON or YAML) as a plain ECMAScript module and print it to stdout or a file.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		d, err := loadDescriptor(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		opts := []esgen.Option{esgen.WithFormat(d.format(false)), esgen.WithReservedNames(d.Reserved...)}

		source, err := esgen.Generate(buildFromDescriptor(d), opts...)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if out := getString(cmd, "output"); out != "" {
			if err := os.WriteFile(out, []byte(source), 0o644); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}

			return
		}

		fmt.Print(source)
	},
}

func init() {
	generateCmd.Flags().StringP("output", "o", "", "write the generated module to this file instead of stdout")
}

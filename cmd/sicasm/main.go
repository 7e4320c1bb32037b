package main

import (
	"fmt"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"sicasm/pkg/asm"
)

var (
	outPath string
	dump    bool
)

var rootCmd = &cobra.Command{
	Use:   "sicasm sourceFile",
	Short: "Two-pass SIC/XE assembler",
	Long: `sicasm translates SIC/XE assembly source into a flat binary object
image, written next to the source file, and prints the resolved symbol
table and an annotated listing to the console.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&outPath, "output", "o", "", "object file path (default: source path with .exe extension)")
	rootCmd.Flags().BoolVar(&dump, "dump", false, "pretty-print the assembled records and symbol table")
}

func run(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	res, asmErr := asm.Assemble(string(source))

	res.WriteSymbols(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout())
	res.WriteListing(cmd.OutOrStdout())

	if dump {
		pp.Println(res.Symbols)
		pp.Println(res.Records)
	}

	target := outPath
	if target == "" {
		target = asm.ObjectFileName(args[0])
	}
	out, err := os.Create(target)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(res.Object); err != nil {
		return err
	}

	// A record that failed to encode leaves a hole in the image, so the run
	// still counts as failed even though the image was written.
	return asmErr
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

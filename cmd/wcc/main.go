// Command wcc assembles and runs WebAssembly text modules produced by the
// code generator.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"wcc/internal/runtime"
	"wcc/internal/wasmgen"
)

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "wcc",
		Short:         "WebAssembly text module tool",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.AddCommand(newBuildCmd(), newRunCmd(), newCheckCmd())
	return root
}

func newBuildCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "build <file.wat>",
		Short: "Assemble a WAT module into a wasm binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wasm, err := assemble(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".wasm"
			}
			return os.WriteFile(output, wasm, 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	return cmd
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file.wat|file.wasm>",
		Short: "Run a module and print its entry point's result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var wasm []byte
			var err error
			if filepath.Ext(args[0]) == ".wasm" {
				wasm, err = os.ReadFile(args[0])
			} else {
				wasm, err = assemble(args[0])
			}
			if err != nil {
				return err
			}
			ret, err := runtime.NewRunner().Run(wasm)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ret)
			return nil
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.wat>",
		Short: "Verify that a WAT module assembles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := assemble(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return nil
		},
	}
}

func assemble(path string) ([]byte, error) {
	wat, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return wasmgen.WatToWasm(string(wat))
}

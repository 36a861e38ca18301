package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shiftsat/compiler/shiftsat"
)

func newCompileCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "compile <input.json>",
		Short: "Compile a schedule configuration into a SolverRequest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadScheduleInput(args[0])
			if err != nil {
				return err
			}
			cfg, err := buildConfig(in)
			if err != nil {
				return err
			}
			builder, err := shiftsat.NewBuilder(cfg)
			if err != nil {
				return err
			}
			req, err := builder.Compile()
			if err != nil {
				return err
			}
			if !builder.CanSolve() {
				logEntry().Warn("compilation produced pre-solve coverage/rule errors; request is not solvable as-is")
			}
			out, err := json.MarshalIndent(req, "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(outPath, out)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the SolverRequest JSON here instead of stdout")
	return cmd
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := fmt.Println(string(data))
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shiftsat/compiler/shiftsat"
)

func newAnalyzeCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "analyze <input.json> <response.json>",
		Short: "Analyze a solver response against the schedule configuration that produced its request",
		Args:  cobra.ExactArgs(2),
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
			if _, err := builder.Compile(); err != nil {
				return err
			}

			raw, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading solver response %s: %w", args[1], err)
			}
			var resp shiftsat.SolverResponse
			if err := json.Unmarshal(raw, &resp); err != nil {
				return fmt.Errorf("parsing solver response %s: %w", args[1], err)
			}

			result, err := builder.Analyze(resp)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(outPath, out)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the analysis JSON here instead of stdout")
	return cmd
}

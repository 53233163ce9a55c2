package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/output"
)

func newInspectCmd() *cobra.Command {
	var (
		asJSON bool
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [report.xlsx]",
		Short: "Summarize a generated workbook",
		Long: `Reads a workbook back and lists its sheets, used ranges, print areas
and chart series references.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := chinookreport.Inspect(args[0])
			if err != nil {
				return fmt.Errorf("inspection failed: %w", err)
			}

			if asJSON {
				return output.WriteJSON(cmd.OutOrStdout(), wb, pretty)
			}
			output.WriteWorkbook(cmd.OutOrStdout(), wb)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON instead of a table")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

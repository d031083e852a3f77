package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"meetflow/internal/app"
	"meetflow/internal/app/export"
	"meetflow/internal/app/model"
)

var (
	outputFilePath string
	status         string
	limit          int
)

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "output", "o", "", "set the output .xlsx path")
	Cmd.Flags().StringVarP(&status, "status", "s", "", "only export meetings with this status")
	Cmd.Flags().IntVar(&limit, "limit", 1000, "maximum number of meetings to export")

	Cmd.MarkFlagRequired("output")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored meetings to excel",
	Long: `Export stored meetings to excel

- One row per meeting, plus a second sheet listing every action item`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		repo, cleanup, err := app.OpenRepository()
		if err != nil {
			return err
		}
		defer cleanup()

		var meetings []model.Meeting
		if status != "" {
			meetings, err = repo.ListByStatus(ctx, status, limit, 0)
		} else {
			meetings, err = repo.List(ctx, limit, 0)
		}
		if err != nil {
			return err
		}

		if err := export.ToExcel(meetings, outputFilePath); err != nil {
			return err
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
		return nil
	},
}

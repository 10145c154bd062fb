package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"word-quiz/internal/domain"
)

const scoresSheet = "Scores"

// NewScoresCmd lists high scores, with an export subcommand for spreadsheets.
func NewScoresCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "List high scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			records, err := rt.scores.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			return writeScoresTable(cmd.OutOrStdout(), records)
		},
	}
	cmd.AddCommand(newScoresExportCmd(configPath))
	return cmd
}

func newScoresExportCmd(configPath *string) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export high scores to an .xlsx spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			records, err := rt.scores.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			data, err := exportScores(records)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d scores to %s\n", len(records), outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "scores.xlsx", "output file")
	return cmd
}

func writeScoresTable(out io.Writer, records []domain.ScoreRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, "no scores yet")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCORE\tDIFFICULTY")
	for _, rec := range records {
		fmt.Fprintf(w, "%d\t%.1f\t%s\n", rec.ID, rec.Score, rec.Difficulty)
	}
	return w.Flush()
}

// exportScores renders the records as a single-sheet workbook.
func exportScores(records []domain.ScoreRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), scoresSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []string{"ID", "Score", "Difficulty"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(scoresSheet, cell, header)
	}
	for rowIndex, rec := range records {
		row := []interface{}{rec.ID, rec.Score, rec.Difficulty.String()}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(scoresSheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

package history

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "History"

var exportHeader = []any{"ID", "Created", "Product", "Link", "Caption", "Hashtags", "Posting time", "Status", "Has image"}

// ExportXLSX writes items as a spreadsheet, one row per entry, in list order.
func ExportXLSX(w io.Writer, items []Item) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, it := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		hasImage := "no"
		if it.ImageURL != "" {
			hasImage = "yes"
		}
		row := []any{
			it.ID,
			it.CreatedAt().Local().Format(time.DateTime),
			it.ProductName,
			it.ProductLink,
			it.Plan.PostCaption,
			strings.Join(it.Plan.Hashtags, " "),
			it.Plan.PostingTimeSuggestion,
			string(it.Status),
			hasImage,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}

package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"RateSpread/internal/domain/models"
	"RateSpread/pkg/util"
)

// WriteCSV persists a spread series as a date-keyed delimited file.
// Existing files are overwritten; last write wins.
func WriteCSV(path string, sp *models.SpreadSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", sp.LabelA, sp.LabelB, sp.SpreadLabel}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range sp.Rows {
		rec := []string{
			r.Date.Format(util.DateFormat),
			strconv.FormatFloat(r.A, 'f', -1, 64),
			strconv.FormatFloat(r.B, 'f', -1, 64),
			strconv.FormatFloat(r.Spread, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row %s: %w", rec[0], err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

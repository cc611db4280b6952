package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"RateSpread/internal/domain/models"
)

func sampleSpread() *models.SpreadSeries {
	return &models.SpreadSeries{
		LabelA:      "PMMS_30Y",
		LabelB:      "Treasury_10Y",
		SpreadLabel: "PMMS_Treasury_Spread",
		Rows: []models.SpreadRow{
			{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), A: 6.62, B: 4.02, Spread: 260},
			{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), A: 6.66, B: 4.03, Spread: 263},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spread.csv")
	if err := WriteCSV(path, sampleSpread()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	header := records[0]
	if header[0] != "date" || header[1] != "PMMS_30Y" || header[3] != "PMMS_Treasury_Spread" {
		t.Fatalf("unexpected header %v", header)
	}
	if records[1][0] != "2024-01-03" || records[1][3] != "260" {
		t.Fatalf("unexpected first row %v", records[1])
	}
}

func TestWriteCSVOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spread.csv")
	sp := sampleSpread()
	if err := WriteCSV(path, sp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sp.Rows = sp.Rows[:1]
	if err := WriteCSV(path, sp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row after rewrite, got %d", len(records))
	}
}

package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"RateSpread/internal/domain/models"
	"RateSpread/pkg/config"
	"RateSpread/pkg/logger"
)

type stubSource struct {
	series map[string]*models.Series
	cc30   models.FetchOutcome
}

func (s *stubSource) FetchSeries(_ context.Context, id, label string, _, _ time.Time) models.FetchOutcome {
	src, ok := s.series[id]
	if !ok {
		return models.FetchFailed(models.FailNotFound, fmt.Errorf("no series %s", id))
	}
	return models.Fetched(&models.Series{ID: id, Label: label, Obs: src.Obs})
}

func (s *stubSource) FetchCC30(_ context.Context, label string, _, _ time.Time) models.FetchOutcome {
	if s.cc30.Series != nil {
		s.cc30.Series.Label = label
	}
	return s.cc30
}

// dailySeries builds one observation per calendar day over [from, to].
func dailySeries(id string, from, to time.Time, value func(i int) float64) *models.Series {
	s := &models.Series{ID: id}
	i := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		s.Obs = append(s.Obs, models.Observation{Date: d, Value: value(i)})
		i++
	}
	return s
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Analysis.StartDate = "2024-01-01"
	cfg.Analysis.EndDate = "2024-03-31"
	cfg.Report.OutputDir = t.TempDir()
	cfg.Report.DisableCharts = true
	return cfg
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return records
}

func TestPipelineEndToEnd(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	pmms := dailySeries("MORTGAGE30US", from, to, func(i int) float64 { return 6.0 + 0.01*float64(i) })
	treasury := dailySeries("DGS10", from, to, func(i int) float64 { return 4.0 + 0.005*float64(i) })
	cc30 := dailySeries("OBMMIFHA30YF", from, to, func(i int) float64 {
		return 5.5 + 0.008*float64(i) + 0.0001*float64(i*i)
	})

	cfg := testConfig(t)
	src := &stubSource{
		series: map[string]*models.Series{"MORTGAGE30US": pmms, "DGS10": treasury},
		cc30:   models.Fetched(cc30),
	}
	p := NewPipeline(cfg, src, testLogger(t))
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	// Both series cover every day, so the joined rows are the 13 full-week
	// Wednesdays from 2024-01-03 to 2024-03-27 plus the partial final week
	// labeled 2024-04-03.
	records := readCSV(t, filepath.Join(cfg.Report.OutputDir, "pmms_treasury_spread.csv"))
	const wantRows = 14
	if len(records) != wantRows+1 {
		t.Fatalf("expected %d data rows, got %d", wantRows, len(records)-1)
	}
	if records[1][0] != "2024-01-03" {
		t.Fatalf("unexpected first date %s", records[1][0])
	}
	// Jan 3 is day index 2: pmms 6.02, treasury 4.01, spread 201 bps.
	got, err := strconv.ParseFloat(records[1][3], 64)
	if err != nil {
		t.Fatalf("parse spread: %v", err)
	}
	if diff := got - 201.0; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("first spread %v, want 201", got)
	}

	// Second analysis exported as well.
	pss := readCSV(t, filepath.Join(cfg.Report.OutputDir, "primary_secondary_spread.csv"))
	if len(pss) != wantRows+1 {
		t.Fatalf("expected %d pss30 rows, got %d", wantRows, len(pss)-1)
	}
}

func TestPipelineIdempotent(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	src := &stubSource{
		series: map[string]*models.Series{
			"MORTGAGE30US": dailySeries("MORTGAGE30US", from, to, func(i int) float64 { return 6.0 + 0.01*float64(i) }),
			"DGS10":        dailySeries("DGS10", from, to, func(i int) float64 { return 4.0 }),
		},
		cc30: models.FetchFailed(models.FailNotFound, fmt.Errorf("unavailable")),
	}

	cfg := testConfig(t)
	p := NewPipeline(cfg, src, testLogger(t))
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	path := filepath.Join(cfg.Report.OutputDir, "pmms_treasury_spread.csv")
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("pipeline output not idempotent")
	}
}

func TestPipelineSkipsFailedDependents(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	src := &stubSource{
		series: map[string]*models.Series{
			"MORTGAGE30US": dailySeries("MORTGAGE30US", from, to, func(i int) float64 { return 6.5 }),
		},
		cc30: models.FetchFailed(models.FailNetwork, fmt.Errorf("timeout")),
	}

	cfg := testConfig(t)
	p := NewPipeline(cfg, src, testLogger(t))
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("run should skip failed dependents, got %v", err)
	}

	if _, err := os.Stat(filepath.Join(cfg.Report.OutputDir, "pmms_treasury_spread.csv")); !os.IsNotExist(err) {
		t.Fatalf("treasury spread should not have been exported")
	}
}

func TestPipelineFailsWithoutPrimary(t *testing.T) {
	src := &stubSource{
		series: map[string]*models.Series{},
		cc30:   models.FetchFailed(models.FailNotFound, fmt.Errorf("unavailable")),
	}
	p := NewPipeline(testConfig(t), src, testLogger(t))
	if err := p.Run(context.Background()); err == nil {
		t.Fatalf("expected error when primary series is unavailable")
	}
}

func TestPipelineProxySpreadConstant(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	pmms := dailySeries("MORTGAGE30US", from, to, func(i int) float64 { return 6.0 + 0.01*float64(i) })

	proxy := &models.Series{ID: "CC30_PROXY"}
	for _, o := range pmms.Obs {
		proxy.Obs = append(proxy.Obs, models.Observation{Date: o.Date, Value: o.Value - 0.50})
	}

	cfg := testConfig(t)
	src := &stubSource{
		series: map[string]*models.Series{"MORTGAGE30US": pmms},
		cc30:   models.FetchOutcome{Series: proxy, Proxy: true, Note: "proxy: MORTGAGE30US - 0.50"},
	}
	p := NewPipeline(cfg, src, testLogger(t))
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	// proxy = primary - 0.50 at every shared date, so PSS30 is exactly
	// 50 bps on every row; the degenerate regression degrades to a skip.
	records := readCSV(t, filepath.Join(cfg.Report.OutputDir, "primary_secondary_spread.csv"))
	for i, rec := range records[1:] {
		v, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			t.Fatalf("row %d: %v", i, err)
		}
		if diff := v - 50; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("row %d spread %v, want 50", i, v)
		}
	}
	if _, err := os.Stat(filepath.Join(cfg.Report.OutputDir, "regression_analysis.png")); !os.IsNotExist(err) {
		t.Fatalf("regression chart should not exist for degenerate fit")
	}
}

package usecase

import (
	"context"
	"fmt"

	"RateSpread/internal/domain/models"
	drepo "RateSpread/internal/domain/repository"
	"RateSpread/internal/services/align"
	"RateSpread/internal/services/regression"
	"RateSpread/internal/services/report"
	"RateSpread/internal/services/spread"
	"RateSpread/pkg/config"
	"RateSpread/pkg/logger"
)

// Column labels used across CSV exports, charts, and logs.
const (
	LabelPMMS     = "PMMS_30Y"
	LabelTreasury = "Treasury_10Y"
	LabelCC30     = "CC30"

	SpreadTreasury = "PMMS_Treasury_Spread"
	SpreadPSS30    = "PSS30"
)

// Capabilities holds optional features resolved once at startup.
type Capabilities struct {
	Charts bool
}

// Pipeline runs the spread analyses in a fixed order: fetch, weekly
// alignment, spread, report, regression.
type Pipeline struct {
	cfg    *config.Config
	log    *logger.Logger
	source drepo.SeriesSource
	caps   Capabilities
}

func NewPipeline(cfg *config.Config, source drepo.SeriesSource, log *logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		log:    log,
		source: source,
		caps:   Capabilities{Charts: !cfg.Report.DisableCharts},
	}
}

// Run executes both analyses. A failed dependent fetch skips its analysis
// block; a failed primary fetch fails the run.
func (p *Pipeline) Run(ctx context.Context) error {
	start, end := p.cfg.Start(), p.cfg.End()
	p.log.Info("mortgage spread analysis",
		logger.Date("start", start),
		logger.Date("end", end),
		logger.Bool("charts", p.caps.Charts))
	if !p.caps.Charts {
		p.log.Warn("charts disabled, chart files will be skipped")
	}

	pmms := p.source.FetchSeries(ctx, p.cfg.Analysis.PMMSSeries, LabelPMMS, start, end)
	if !pmms.OK() {
		return fmt.Errorf("fetch %s: %w", p.cfg.Analysis.PMMSSeries, pmms.Err)
	}
	pmmsWeekly := align.ToWeekly(pmms.Series, p.cfg.Weekday())

	treasury := p.source.FetchSeries(ctx, p.cfg.Analysis.TreasurySeries, LabelTreasury, start, end)
	if treasury.OK() {
		if err := p.treasurySpread(pmmsWeekly, treasury.Series); err != nil {
			return err
		}
	} else {
		p.log.Warn("treasury series unavailable, skipping spread analysis",
			logger.String("reason", treasury.Reason.String()),
			logger.Error(treasury.Err))
	}

	cc30 := p.source.FetchCC30(ctx, LabelCC30, start, end)
	if cc30.OK() {
		if cc30.Proxy {
			p.log.Warn("cc30 is an approximation", logger.String("note", cc30.Note))
		}
		if err := p.primarySecondarySpread(pmmsWeekly, cc30.Series); err != nil {
			return err
		}
	} else {
		p.log.Warn("cc30 series unavailable, skipping primary-secondary analysis",
			logger.String("reason", cc30.Reason.String()),
			logger.Error(cc30.Err))
	}

	p.log.Info("analysis complete")
	return nil
}

// treasurySpread runs the PMMS vs 10-year Treasury spread analysis.
func (p *Pipeline) treasurySpread(pmmsWeekly, treasury *models.Series) error {
	weekly := align.ToWeekly(treasury, p.cfg.Weekday())
	sp := spread.Calculate(pmmsWeekly, weekly, SpreadTreasury)
	if sp.Len() == 0 {
		p.log.Warn("no common weekly dates for treasury spread")
		return nil
	}

	files := p.cfg.Report.Files
	if err := p.report(sp, files.TreasurySpreadCSV, files.TreasurySpreadChart,
		"30-Year PMMS vs 10-Year Treasury Spread"); err != nil {
		return err
	}

	if p.caps.Charts {
		path := p.cfg.OutputPath(files.RatesComparison)
		if err := report.PlotRates(path, sp, "30-Year PMMS vs 10-Year Treasury Rate"); err != nil {
			return fmt.Errorf("rates comparison chart: %w", err)
		}
		p.log.Info("chart saved", logger.String("file", path))
	}
	return nil
}

// primarySecondarySpread runs the PMMS vs CC30 spread analysis and the
// PSS30-on-CC30 regressions.
func (p *Pipeline) primarySecondarySpread(pmmsWeekly, cc30 *models.Series) error {
	weekly := align.ToWeekly(cc30, p.cfg.Weekday())
	sp := spread.Calculate(pmmsWeekly, weekly, SpreadPSS30)
	if sp.Len() == 0 {
		p.log.Warn("no common weekly dates for primary-secondary spread")
		return nil
	}

	files := p.cfg.Report.Files
	if err := p.report(sp, files.PSS30CSV, files.PSS30Chart,
		"Primary-Secondary Spread (PSS30): PMMS vs Fannie Mae CC30"); err != nil {
		return err
	}

	return p.regressions(sp)
}

// report logs describe() statistics, exports the CSV, draws the spread
// chart, and logs the tail rows.
func (p *Pipeline) report(sp *models.SpreadSeries, csvName, chartName, title string) error {
	stats := report.Describe(sp.Spreads())
	p.log.Info("spread summary statistics (basis points)",
		logger.String("spread", sp.SpreadLabel),
		logger.Int("count", stats.Count),
		logger.Float64("mean", stats.Mean),
		logger.Float64("std", stats.Std),
		logger.Float64("min", stats.Min),
		logger.Float64("q25", stats.Q25),
		logger.Float64("median", stats.Median),
		logger.Float64("q75", stats.Q75),
		logger.Float64("max", stats.Max))

	csvPath := p.cfg.OutputPath(csvName)
	if err := report.WriteCSV(csvPath, sp); err != nil {
		return fmt.Errorf("export %s: %w", sp.SpreadLabel, err)
	}
	p.log.Info("data saved", logger.String("file", csvPath))

	if p.caps.Charts {
		chartPath := p.cfg.OutputPath(chartName)
		if err := report.PlotSpread(chartPath, sp, title, "Spread (basis points)",
			p.cfg.Analysis.StressPeriods); err != nil {
			return fmt.Errorf("spread chart: %w", err)
		}
		p.log.Info("chart saved", logger.String("file", chartPath))
	}

	p.logTail(sp)
	return nil
}

// logTail logs the most recent weekly rows, like the original report's
// trailing data table.
func (p *Pipeline) logTail(sp *models.SpreadSeries) {
	n := p.cfg.Report.TailRows
	if n <= 0 || sp.Len() == 0 {
		return
	}
	if n > sp.Len() {
		n = sp.Len()
	}
	p.log.Info("recent weekly data", logger.Int("rows", n))
	for _, r := range sp.Rows[sp.Len()-n:] {
		p.log.Info("row",
			logger.Date("date", r.Date),
			logger.Float64(sp.LabelA, r.A),
			logger.Float64(sp.LabelB, r.B),
			logger.Float64(sp.SpreadLabel, r.Spread))
	}
}

// regressions fits PSS30 on CC30 for degrees 1..3 and reports fit
// quality. In-sample only, by design of the source analysis.
func (p *Pipeline) regressions(sp *models.SpreadSeries) error {
	_, x := sp.Columns() // CC30 column
	y := sp.Spreads()

	fits := make([]*models.RegressionFit, 0, regression.MaxDegree)
	for degree := 1; degree <= regression.MaxDegree; degree++ {
		fit, err := regression.Fit(x, y, degree)
		if err != nil {
			// Degenerate inputs (e.g. a constant proxy spread) degrade to
			// a notice instead of failing the whole run.
			p.log.Warn("regression skipped",
				logger.Int("degree", degree),
				logger.Error(err))
			return nil
		}
		fits = append(fits, fit)

		fields := []logger.Field{
			logger.Int("degree", degree),
			logger.Float64("intercept", fit.Intercept),
			logger.Float64("r2", fit.R2),
			logger.Float64("rmse_bps", fit.RMSE),
		}
		for i, c := range fit.Coefficients {
			fields = append(fields, logger.Float64(fmt.Sprintf("coef_x%d", i+1), c))
		}
		p.log.Info("regression results", fields...)
		if degree == 1 {
			p.log.Info(fmt.Sprintf("equation: %s = %.4f + %.4f * %s",
				sp.SpreadLabel, fit.Intercept, fit.Coefficients[0], sp.LabelB))
		}
	}

	if p.caps.Charts {
		path := p.cfg.OutputPath(p.cfg.Report.Files.RegressionChart)
		if err := report.PlotRegression(path, x, y, fits,
			sp.LabelB+" (%)", sp.SpreadLabel+" (bps)"); err != nil {
			return fmt.Errorf("regression chart: %w", err)
		}
		p.log.Info("chart saved", logger.String("file", path))
	}
	return nil
}

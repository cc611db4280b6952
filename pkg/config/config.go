package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"RateSpread/pkg/util"
)

// StressPeriod is a named historical window shaded on spread charts.
type StressPeriod struct {
	Name  string `yaml:"name" validate:"required"`
	Start string `yaml:"start" validate:"required"`
	End   string `yaml:"end" validate:"required"`
}

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Fred        struct {
		BaseURL  string        `yaml:"base_url" default:"https://api.stlouisfed.org/fred" validate:"required,url"`
		APIKey   string        `yaml:"api_key"`
		Timeout  time.Duration `yaml:"timeout" default:"30s"`
		CacheTTL time.Duration `yaml:"cache_ttl" default:"1h"`
	} `yaml:"fred"`
	Analysis struct {
		StartDate      string         `yaml:"start_date" default:"2000-01-01" validate:"required"`
		EndDate        string         `yaml:"end_date"` // empty means today, filled at load
		TargetWeekday  string         `yaml:"target_weekday" default:"Wednesday"`
		PMMSSeries     string         `yaml:"pmms_series" default:"MORTGAGE30US" validate:"required"`
		TreasurySeries string         `yaml:"treasury_series" default:"DGS10" validate:"required"`
		CC30Candidates []string       `yaml:"cc30_candidates"`
		ProxyOffset    float64        `yaml:"proxy_offset" default:"0.5"`
		StressPeriods  []StressPeriod `yaml:"stress_periods" validate:"dive"`
	} `yaml:"analysis"`
	Report struct {
		OutputDir     string `yaml:"output_dir" default:"."`
		DisableCharts bool   `yaml:"disable_charts"`
		TailRows      int    `yaml:"tail_rows" default:"20" validate:"gte=0"`
		Files         struct {
			TreasurySpreadCSV   string `yaml:"treasury_spread_csv" default:"pmms_treasury_spread.csv"`
			TreasurySpreadChart string `yaml:"treasury_spread_chart" default:"pmms_treasury_spread_chart.png"`
			RatesComparison     string `yaml:"rates_comparison" default:"rates_comparison.png"`
			PSS30CSV            string `yaml:"pss30_csv" default:"primary_secondary_spread.csv"`
			PSS30Chart          string `yaml:"pss30_chart" default:"primary_secondary_spread_chart.png"`
			RegressionChart     string `yaml:"regression_chart" default:"regression_analysis.png"`
		} `yaml:"files"`
	} `yaml:"report"`
	Logger struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error fatal panic"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logger"`
}

var validate = validator.New()

// Load reads and parses a YAML configuration file. An empty path or a
// missing file yields the built-in defaults, which reproduce the original
// analysis run exactly.
func Load(path string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	c.fillDerived()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML (and .env) and overrides with
// environment variables.
func LoadWithEnv(path string) (*Config, error) {
	// Missing .env is fine; environment may be set directly.
	_ = godotenv.Load()

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("FRED_API_KEY"); v != "" {
		c.Fred.APIKey = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		c.Report.OutputDir = v
	}
	if v := os.Getenv("CC30_CANDIDATES"); v != "" {
		c.Analysis.CC30Candidates = strings.Split(v, ",")
	}

	return c, nil
}

// fillDerived fills slice defaults and the open-ended end date, neither of
// which struct tags can express.
func (c *Config) fillDerived() {
	if len(c.Analysis.CC30Candidates) == 0 {
		c.Analysis.CC30Candidates = []string{"OBMMIFHA30YF", "OBMMIC30YF"}
	}
	if len(c.Analysis.StressPeriods) == 0 {
		c.Analysis.StressPeriods = []StressPeriod{
			{Name: "Dot-com recession", Start: "2001-03-01", End: "2001-11-01"},
			{Name: "Great Recession", Start: "2007-12-01", End: "2009-06-01"},
			{Name: "COVID-19 recession", Start: "2020-02-01", End: "2020-04-01"},
		}
	}
	if c.Analysis.EndDate == "" {
		c.Analysis.EndDate = time.Now().Format(util.DateFormat)
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if _, err := util.ParseDate(c.Analysis.StartDate); err != nil {
		return fmt.Errorf("analysis.start_date: %w", err)
	}
	end, err := util.ParseDate(c.Analysis.EndDate)
	if err != nil {
		return fmt.Errorf("analysis.end_date: %w", err)
	}
	start, _ := util.ParseDate(c.Analysis.StartDate)
	if end.Before(start) {
		return fmt.Errorf("analysis.end_date %s before start_date %s", c.Analysis.EndDate, c.Analysis.StartDate)
	}
	if _, err := util.ParseWeekday(c.Analysis.TargetWeekday); err != nil {
		return fmt.Errorf("analysis.target_weekday: %w", err)
	}
	for _, sp := range c.Analysis.StressPeriods {
		if _, err := sp.Range(); err != nil {
			return fmt.Errorf("analysis.stress_periods[%s]: %w", sp.Name, err)
		}
	}
	return nil
}

// Start returns the parsed analysis start date.
func (c *Config) Start() time.Time {
	t, _ := util.ParseDate(c.Analysis.StartDate)
	return t
}

// End returns the parsed analysis end date.
func (c *Config) End() time.Time {
	t, _ := util.ParseDate(c.Analysis.EndDate)
	return t
}

// Weekday returns the parsed alignment weekday.
func (c *Config) Weekday() time.Weekday {
	wd, _ := util.ParseWeekday(c.Analysis.TargetWeekday)
	return wd
}

// OutputPath joins a report file name onto the output directory.
func (c *Config) OutputPath(name string) string {
	return filepath.Join(c.Report.OutputDir, name)
}

// Range returns the parsed stress period window.
func (sp StressPeriod) Range() (r [2]time.Time, err error) {
	if r[0], err = util.ParseDate(sp.Start); err != nil {
		return r, err
	}
	if r[1], err = util.ParseDate(sp.End); err != nil {
		return r, err
	}
	if r[1].Before(r[0]) {
		return r, fmt.Errorf("end %s before start %s", sp.End, sp.Start)
	}
	return r, nil
}

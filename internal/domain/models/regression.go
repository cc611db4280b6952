package models

// RegressionFit holds an in-sample least-squares fit of one variable on
// polynomial powers of another.
type RegressionFit struct {
	Degree       int
	Intercept    float64
	Coefficients []float64 // powers 1..Degree
	R2           float64
	RMSE         float64
	Fitted       []float64 // predictions in input-row order
}

// SummaryStats summarizes a value column, pandas describe() style.
type SummaryStats struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

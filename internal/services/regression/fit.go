// Package regression fits least-squares polynomial models of one series
// on another.
package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"RateSpread/internal/domain/models"
)

// MaxDegree is the highest polynomial order the fitter supports.
const MaxDegree = 3

// Fit fits y on powers of x up to degree (1..MaxDegree) by QR least
// squares. Pairs where either value is NaN are dropped first. The fit is
// in-sample only: R² and RMSE are computed on the fitting data.
func Fit(x, y []float64, degree int) (*models.RegressionFit, error) {
	if degree < 1 || degree > MaxDegree {
		return nil, fmt.Errorf("degree %d out of range 1..%d", degree, MaxDegree)
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("length mismatch: %d vs %d", len(x), len(y))
	}

	xs, ys := dropMissing(x, y)
	n := len(xs)
	if n < degree+1 {
		return nil, fmt.Errorf("need at least %d complete rows, have %d", degree+1, n)
	}

	// Vandermonde design matrix: columns are x^0 .. x^degree.
	design := mat.NewDense(n, degree+1, nil)
	for i, v := range xs {
		p := 1.0
		for j := 0; j <= degree; j++ {
			design.Set(i, j, p)
			p *= v
		}
	}

	var qr mat.QR
	qr.Factorize(design)

	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, mat.NewDense(n, 1, ys)); err != nil {
		return nil, fmt.Errorf("solve least squares: %w", err)
	}

	var fittedMat mat.Dense
	fittedMat.Mul(design, &beta)

	fit := &models.RegressionFit{
		Degree:       degree,
		Intercept:    beta.At(0, 0),
		Coefficients: make([]float64, degree),
		Fitted:       make([]float64, n),
	}
	for j := 1; j <= degree; j++ {
		fit.Coefficients[j-1] = beta.At(j, 0)
	}

	mean := stat.Mean(ys, nil)
	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		fit.Fitted[i] = fittedMat.At(i, 0)
		r := ys[i] - fit.Fitted[i]
		ssRes += r * r
		d := ys[i] - mean
		ssTot += d * d
	}
	if ssTot == 0 {
		return nil, fmt.Errorf("dependent variable is constant")
	}

	fit.R2 = 1 - ssRes/ssTot
	fit.RMSE = math.Sqrt(ssRes / float64(n))
	return fit, nil
}

// dropMissing removes pairs with a NaN in either column.
func dropMissing(x, y []float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

// Predict evaluates the fitted polynomial at v.
func Predict(fit *models.RegressionFit, v float64) float64 {
	out := fit.Intercept
	p := 1.0
	for _, c := range fit.Coefficients {
		p *= v
		out += c * p
	}
	return out
}

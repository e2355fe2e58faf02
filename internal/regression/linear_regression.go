// Package regression implements ordinary least squares fitting via the
// normal equation, sized for the small dense systems feature
// engineering produces.
package regression

import (
	"math"

	"github.com/quantlab-oss/tradekit/pkg/errors"
)

// singularEpsilon is the pivot magnitude below which the normal
// equation matrix is treated as singular.
const singularEpsilon = 1e-10

// LinearRegression fits y = b0 + b1*x1 + ... + bn*xn by solving the
// normal equation (XtX)^-1 Xty with an explicit intercept column.
type LinearRegression struct {
	coefficients []float64
	trained      bool
}

// NewLinearRegression creates an untrained model.
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{}
}

// Train fits the model. Each row of features must have the same width
// and pair with one target. A collinear design matrix leaves the model
// untrained and returns a typed error.
func (m *LinearRegression) Train(features [][]float64, targets []float64) error {
	if len(features) == 0 || len(targets) == 0 || len(features) != len(targets) {
		return errors.Newf(errors.ErrCodeInvalidLength,
			"training set mismatch, got %d feature rows and %d targets", len(features), len(targets))
	}

	nFeatures := len(features[0])
	for _, row := range features {
		if len(row) != nFeatures {
			return errors.Newf(errors.ErrCodeInvalidLength,
				"feature rows must all have width %d", nFeatures)
		}
	}

	// Design matrix with a leading column of ones for the intercept.
	design := make([][]float64, len(features))
	for i, row := range features {
		design[i] = make([]float64, nFeatures+1)
		design[i][0] = 1.0
		copy(design[i][1:], row)
	}

	xt := transpose(design)
	xtxInv, err := inverse(multiply(xt, design))
	if err != nil {
		m.trained = false
		return err
	}

	m.coefficients = multiplyVector(xtxInv, multiplyVector(xt, targets))
	m.trained = true

	return nil
}

// Predict evaluates the fitted model on one feature row.
func (m *LinearRegression) Predict(features []float64) (float64, error) {
	if !m.trained {
		return 0, errors.New(errors.ErrCodeModelNotTrained, "model has not been trained")
	}

	if len(features)+1 != len(m.coefficients) {
		return 0, errors.Newf(errors.ErrCodeInvalidLength,
			"expected %d features, got %d", len(m.coefficients)-1, len(features))
	}

	prediction := m.coefficients[0]
	for i, value := range features {
		prediction += m.coefficients[i+1] * value
	}

	return prediction, nil
}

// PredictBatch evaluates the model on every row.
func (m *LinearRegression) PredictBatch(features [][]float64) ([]float64, error) {
	predictions := make([]float64, len(features))

	for i, row := range features {
		prediction, err := m.Predict(row)
		if err != nil {
			return nil, err
		}

		predictions[i] = prediction
	}

	return predictions, nil
}

// Evaluate returns the mean squared error over the given set.
func (m *LinearRegression) Evaluate(features [][]float64, targets []float64) (float64, error) {
	if len(features) != len(targets) {
		return 0, errors.Newf(errors.ErrCodeInvalidLength,
			"evaluation set mismatch, got %d feature rows and %d targets", len(features), len(targets))
	}

	mse := 0.0
	for i, row := range features {
		prediction, err := m.Predict(row)
		if err != nil {
			return 0, err
		}

		residual := targets[i] - prediction
		mse += residual * residual
	}

	return mse / float64(len(features)), nil
}

// RSquared returns the coefficient of determination over the given
// set. A constant target series yields 0.
func (m *LinearRegression) RSquared(features [][]float64, targets []float64) (float64, error) {
	if len(features) != len(targets) {
		return 0, errors.Newf(errors.ErrCodeInvalidLength,
			"evaluation set mismatch, got %d feature rows and %d targets", len(features), len(targets))
	}

	meanTarget := 0.0
	for _, target := range targets {
		meanTarget += target
	}
	meanTarget /= float64(len(targets))

	ssRes := 0.0
	ssTot := 0.0

	for i, row := range features {
		prediction, err := m.Predict(row)
		if err != nil {
			return 0, err
		}

		residual := targets[i] - prediction
		total := targets[i] - meanTarget

		ssRes += residual * residual
		ssTot += total * total
	}

	if ssTot == 0.0 {
		return 0.0, nil
	}

	return 1.0 - ssRes/ssTot, nil
}

// Coefficients returns the fitted weights, intercept first.
func (m *LinearRegression) Coefficients() []float64 {
	return m.coefficients
}

// Trained reports whether Train has completed successfully.
func (m *LinearRegression) Trained() bool {
	return m.trained
}

func transpose(matrix [][]float64) [][]float64 {
	if len(matrix) == 0 {
		return [][]float64{}
	}

	rows := len(matrix)
	cols := len(matrix[0])

	result := make([][]float64, cols)
	for j := range result {
		result[j] = make([]float64, rows)
		for i := 0; i < rows; i++ {
			result[j][i] = matrix[i][j]
		}
	}

	return result
}

func multiply(a, b [][]float64) [][]float64 {
	m := len(a)
	n := len(b[0])
	p := len(a[0])

	result := make([][]float64, m)
	for i := range result {
		result[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			for k := 0; k < p; k++ {
				result[i][j] += a[i][k] * b[k][j]
			}
		}
	}

	return result
}

func multiplyVector(a [][]float64, b []float64) []float64 {
	result := make([]float64, len(a))

	for i, row := range a {
		for j, value := range row {
			result[i] += value * b[j]
		}
	}

	return result
}

// inverse runs Gauss-Jordan elimination with partial pivoting on an
// augmented [A | I] matrix.
func inverse(matrix [][]float64) ([][]float64, error) {
	n := len(matrix)

	aug := make([][]float64, n)
	for i := range aug {
		aug[i] = make([]float64, 2*n)
		copy(aug[i], matrix[i])
		aug[i][i+n] = 1.0
	}

	for i := 0; i < n; i++ {
		maxRow := i
		for k := i + 1; k < n; k++ {
			if math.Abs(aug[k][i]) > math.Abs(aug[maxRow][i]) {
				maxRow = k
			}
		}

		aug[i], aug[maxRow] = aug[maxRow], aug[i]

		if math.Abs(aug[i][i]) < singularEpsilon {
			return nil, errors.New(errors.ErrCodeModelSingularInput,
				"normal equation matrix is singular, features may be collinear")
		}

		pivot := aug[i][i]
		for j := 0; j < 2*n; j++ {
			aug[i][j] /= pivot
		}

		for k := 0; k < n; k++ {
			if k == i {
				continue
			}

			factor := aug[k][i]
			for j := 0; j < 2*n; j++ {
				aug[k][j] -= factor * aug[i][j]
			}
		}
	}

	result := make([][]float64, n)
	for i := range result {
		result[i] = aug[i][n:]
	}

	return result, nil
}

package fit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/goburst/exgauss"
)

var (
	// ErrNonConvergence reports a fit that exhausted its iteration budget
	// or damping range without reaching a minimum.
	ErrNonConvergence = errors.New("least squares did not converge")

	// ErrSingularJacobian reports a solution whose Jacobian is too
	// ill-conditioned to yield a covariance matrix.
	ErrSingularJacobian = errors.New("singular Jacobian at solution")
)

const (
	// DefaultMaxIterations bounds the Levenberg-Marquardt loop when the
	// caller passes no budget.
	DefaultMaxIterations = 400

	sseTolerance  = 1e-12 // relative SSE improvement below which we stop
	gradTolerance = 1e-10
	lambdaInit    = 1e-3
	lambdaMax     = 1e12
	diffStep      = 1.5e-8 // ~sqrt(machine epsilon), forward differences
)

// Result holds the output of one nonlinear least-squares fit.
type Result struct {
	Params        exgauss.Params
	Covariance    *mat.SymDense
	Uncertainties []float64 // sqrt of covariance diagonal, per parameter
	Jacobian      *mat.Dense
	SSE           float64
	Iterations    int
}

// Curve fits the sum-of-exGaussian model to (xs, ys) by Levenberg-Marquardt
// starting from initial. maxIter <= 0 selects DefaultMaxIterations.
//
// Failure to converge, a damping blow-up, or a rank-deficient solution are
// reported as errors; Curve never panics on bad data.
func Curve(xs, ys []float64, initial exgauss.Params, maxIter int) (*Result, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d coordinates, %d samples", ErrNonConvergence, len(xs), len(ys))
	}
	n, p := len(xs), len(initial)
	if n <= p {
		return nil, fmt.Errorf("%w: %d samples for %d parameters", ErrNonConvergence, n, p)
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	theta := initial.Copy()
	r := residualVec(xs, ys, theta)
	sse := mat.Dot(r, r)
	if math.IsNaN(sse) || math.IsInf(sse, 0) {
		return nil, fmt.Errorf("%w: infeasible initial guess", ErrNonConvergence)
	}

	lambda := lambdaInit
	converged := false
	iter := 0

	for ; iter < maxIter && !converged; iter++ {
		j := jacobian(xs, theta)

		var jtj mat.SymDense
		jtj.SymOuterK(1, j.T())

		grad := mat.NewVecDense(p, nil)
		grad.MulVec(j.T(), r)
		if mat.Norm(grad, 2) < gradTolerance {
			converged = true
			break
		}
		grad.ScaleVec(-1, grad)

		// Damped normal equations: retry with stronger damping until the
		// step is accepted or lambda blows up.
		for {
			damped := dampDiagonal(&jtj, lambda)

			var chol mat.Cholesky
			var delta mat.VecDense
			ok := chol.Factorize(damped)
			if ok {
				ok = chol.SolveVecTo(&delta, grad) == nil
			}
			if !ok {
				lambda *= 10
				if lambda > lambdaMax {
					return nil, fmt.Errorf("%w: damping exceeded %g", ErrNonConvergence, lambdaMax)
				}
				continue
			}

			trial := theta.Copy()
			for i := range trial {
				trial[i] += delta.AtVec(i)
			}
			trialRes := residualVec(xs, ys, trial)
			trialSSE := mat.Dot(trialRes, trialRes)

			if !math.IsNaN(trialSSE) && trialSSE < sse {
				if sse-trialSSE < sseTolerance*(sse+sseTolerance) {
					converged = true
				}
				theta, r, sse = trial, trialRes, trialSSE
				lambda = math.Max(lambda/10, 1e-12)
				break
			}

			lambda *= 10
			if lambda > lambdaMax {
				return nil, fmt.Errorf("%w: damping exceeded %g", ErrNonConvergence, lambdaMax)
			}
		}
	}

	if !converged {
		return nil, fmt.Errorf("%w: after %d iterations", ErrNonConvergence, iter)
	}

	j := jacobian(xs, theta)
	cov, unc, err := covariance(j, sse, n, p)
	if err != nil {
		return nil, err
	}

	return &Result{
		Params:        theta,
		Covariance:    cov,
		Uncertainties: unc,
		Jacobian:      j,
		SSE:           sse,
		Iterations:    iter,
	}, nil
}

// residualVec returns ys - model(xs) as a vector.
func residualVec(xs, ys []float64, p exgauss.Params) *mat.VecDense {
	r := mat.NewVecDense(len(xs), nil)
	for i, x := range xs {
		r.SetVec(i, ys[i]-exgauss.Evaluate(x, p))
	}
	return r
}

// jacobian computes the forward-difference Jacobian of the residuals with
// respect to the parameters. Residuals are ys - f, so each column is the
// negated model sensitivity.
func jacobian(xs []float64, p exgauss.Params) *mat.Dense {
	n := len(xs)
	j := mat.NewDense(n, len(p), nil)

	base := exgauss.EvaluateAll(xs, p)
	for col := range p {
		h := diffStep * math.Max(math.Abs(p[col]), 1)
		bumped := p.Copy()
		bumped[col] += h
		for row, x := range xs {
			j.Set(row, col, -(exgauss.Evaluate(x, bumped)-base[row])/h)
		}
	}
	return j
}

// dampDiagonal returns JtJ with its diagonal inflated by (1+lambda),
// Marquardt style. Zero diagonal entries get an absolute floor so damping
// always regularizes.
func dampDiagonal(jtj *mat.SymDense, lambda float64) *mat.SymDense {
	p, _ := jtj.Dims()
	damped := mat.NewSymDense(p, nil)
	damped.CopySym(jtj)
	for i := 0; i < p; i++ {
		d := jtj.At(i, i)
		if d == 0 {
			d = 1e-12
		}
		damped.SetSym(i, i, d*(1+lambda))
	}
	return damped
}

// covariance estimates the parameter covariance sigma^2 (JtJ)^-1 and the
// per-parameter uncertainties from its diagonal.
func covariance(j *mat.Dense, sse float64, n, p int) (*mat.SymDense, []float64, error) {
	var jtj mat.SymDense
	jtj.SymOuterK(1, j.T())

	var chol mat.Cholesky
	if !chol.Factorize(&jtj) {
		return nil, nil, ErrSingularJacobian
	}
	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSingularJacobian, err)
	}

	sigma2 := sse / float64(n-p)
	var cov mat.SymDense
	cov.ScaleSym(sigma2, &inv)

	unc := make([]float64, p)
	for i := range unc {
		unc[i] = math.Sqrt(cov.At(i, i))
	}
	return &cov, unc, nil
}

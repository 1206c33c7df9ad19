// Package exgauss implements sums of exponentially-modified Gaussian pulses.
//
// An exGaussian is the convolution of a Gaussian and an exponential
// distribution: a pulse with a Gaussian rise and an exponential decay tail.
// The model here is a sum of k such pulses that share one decay timescale,
// encoded as a flat parameter vector of k (amplitude, location, scale)
// triples followed by the shared timescale:
//
//	params = [a0, u0, sd0, a1, u1, sd1, ..., ts]
//
// The shared trailing timescale is the defining constraint of the family:
// every component decays at the same rate, so the vector length is always
// 3k+1, never 4k.
//
// # Usage
//
// Build a two-component model and evaluate it:
//
//	p, err := exgauss.New(10, 5.0, 1.0, 4, 15.0, 0.8, 2.0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y := exgauss.Evaluate(6.2, p)
//	area := exgauss.Integral(30.0, p) // approaches p.TotalArea()
//
// Both Evaluate and Integral are pure functions of (x, params); the number
// of components is implied by the vector length via (len-1)/3.
package exgauss

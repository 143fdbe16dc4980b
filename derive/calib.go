// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derive

import "math"

// ABZeroPoint is the AB magnitude of a flux of 1 nanojansky.
const ABZeroPoint = 31.4

// Calibration converts instrumental fluxes to calibrated magnitudes.
// The photometric zero-point lives in the calibration, so magnitudes
// must always be computed through it.
type Calibration interface {
	// InstFluxToMagnitude returns the magnitude and magnitude error
	// for the given instrumental flux and flux error.
	InstFluxToMagnitude(flux, fluxErr float64) (mag, magErr float64)
}

// PhotoCalib is a spatially constant photometric calibration,
// with Mean nanojansky per instrumental flux unit and Err the
// uncertainty on Mean. Magnitudes are AB.
type PhotoCalib struct {
	// Mean is the calibration scale in nJy per instrumental unit.
	Mean float64

	// Err is the one-sigma error on Mean.
	Err float64
}

// InstFluxToNanojansky returns the calibrated flux and its error.
func (pc PhotoCalib) InstFluxToNanojansky(flux, fluxErr float64) (nJy, nJyErr float64) {
	nJy = flux * pc.Mean
	nJyErr = math.Abs(nJy) * math.Hypot(fluxErr/flux, pc.Err/pc.Mean)
	return
}

// InstFluxToMagnitude implements [Calibration]. Non-positive fluxes give NaN.
func (pc PhotoCalib) InstFluxToMagnitude(flux, fluxErr float64) (mag, magErr float64) {
	nJy := flux * pc.Mean
	if !(nJy > 0) {
		return math.NaN(), math.NaN()
	}
	mag = -2.5*math.Log10(nJy) + ABZeroPoint
	magErr = 2.5 / math.Ln10 * math.Hypot(fluxErr/flux, pc.Err/pc.Mean)
	return
}

// ZeroPoint is a calibration given directly as a magnitude zero-point,
// as used for catalogs that store fluxes in counts with a fixed ZP.
type ZeroPoint float64

// InstFluxToMagnitude implements [Calibration]. Non-positive fluxes give NaN.
func (zp ZeroPoint) InstFluxToMagnitude(flux, fluxErr float64) (mag, magErr float64) {
	if !(flux > 0) {
		return math.NaN(), math.NaN()
	}
	mag = -2.5*math.Log10(flux) + float64(zp)
	magErr = 2.5 / math.Ln10 * math.Abs(fluxErr/flux)
	return
}

// Package units collects the physical constants and unit conversions used
// throughout the analysis. Everything downstream works in cgs, so the SI
// values exist only to make the provenance of the cgs ones obvious.
package units

import (
	"math"
)

const (
	// CODATA 2018 values.
	GSI    = 6.67430e-11 // m^3 kg^-1 s^-2
	MSunSI = 1.988416e30 // kg

	// Basic conversions.
	MCm  = 1e2            // cm per m
	KgG  = 1e3            // g per kg
	AUCm = 1.495978707e13 // cm per AU
	CmKm = 1e-5           // km per cm

	// The same constants in cgs.
	G    = GSI * (MCm * MCm * MCm) / KgG // = 6.67430e-8 cm^3 g^-1 s^-2
	MSun = MSunSI * KgG                  // g

	// Mass of the simulated star in solar masses. The [Star] config
	// section can override this for snapshots of other systems.
	DefaultStarMass = 3.227471
)

// StarMassG converts a stellar mass in solar masses to grams.
func StarMassG(msun float64) float64 {
	return msun * MSun
}

// OrderOfMagnitude returns the largest power of ten no greater than x.
// x must be positive.
func OrderOfMagnitude(x float64) float64 {
	return math.Pow(10, math.Floor(math.Log10(x)))
}

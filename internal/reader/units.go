package reader

import (
	"math"

	"github.com/fluxbio/sbmlio/internal/xmldoc"
)

// resolveUnits folds every base-unit term of a unit definition into one
// real conversion factor relative to SI base units. Each term contributes
// (multiplier * 10^scale)^exponent; the fold is a commutative product, so
// term order never affects the result.
func (ex *extractor) resolveUnits(def *xmldoc.Element) (float64, error) {
	factor := 1.0
	for _, unit := range ex.listOf(def, "listOfUnits", "unit") {
		scale, err := floatOrDefault(unit, "", "scale", 0)
		if err != nil {
			return 0, err
		}
		exponent, err := floatOrDefault(unit, "", "exponent", 1)
		if err != nil {
			return 0, err
		}
		multiplier, err := floatOrDefault(unit, "", "multiplier", 1)
		if err != nil {
			return 0, err
		}
		factor *= math.Pow(multiplier*math.Pow(10, scale), exponent)
	}
	return factor, nil
}

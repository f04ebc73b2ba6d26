package engine

import "math"

// volumetricDivisor is the industry-standard cm³-per-kg constant. Carriers
// bill by whichever of actual or volumetric weight is larger, so low-density
// bulky packages are not underpriced.
const volumetricDivisor = 5000.0

// VolumetricKg converts package dimensions to a volumetric weight in kg.
// Returns 0 unless all three dimensions are positive: partial dimensions are
// treated as absent.
func VolumetricKg(lengthCm, widthCm, heightCm float64) float64 {
	if lengthCm <= 0 || widthCm <= 0 || heightCm <= 0 {
		return 0
	}
	return lengthCm * widthCm * heightCm / volumetricDivisor / 1000.0
}

// ChargeableKg is the billable weight: the greater of physical and volumetric.
func ChargeableKg(weightGrams int64, lengthCm, widthCm, heightCm float64) float64 {
	physical := float64(weightGrams) / 1000.0
	return math.Max(physical, VolumetricKg(lengthCm, widthCm, heightCm))
}

// BillableUnits rounds the chargeable weight up to whole kg with a 1 kg
// minimum, the unit the base rate is charged against.
func BillableUnits(chargeableKg float64) int64 {
	units := int64(math.Ceil(chargeableKg))
	if units < 1 {
		return 1
	}
	return units
}

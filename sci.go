package carboncue

// CalculateSCI computes a Software Carbon Intensity score:
// (operationalEmissions + embodiedEmissions) / functionalUnit.
//
// Emissions of zero are valid. The functional unit must be a positive integer;
// otherwise an *InvalidFunctionalUnitError is returned before any division.
// functionalUnitType and regionCode are opaque labels carried through
// unchanged; no cross-unit validation is performed.
//
// The calculation is pure and safe to call concurrently.
func CalculateSCI(operationalEmissions, embodiedEmissions float64, functionalUnit int, functionalUnitType, regionCode string) (SCIScore, error) {
	return NewSCIScore(operationalEmissions, embodiedEmissions, functionalUnit, functionalUnitType, regionCode)
}

// CalculateSCI computes a Software Carbon Intensity score. It is transport
// independent and needs no open session; see the package-level CalculateSCI.
func (c *Client) CalculateSCI(operationalEmissions, embodiedEmissions float64, functionalUnit int, functionalUnitType, regionCode string) (SCIScore, error) {
	return CalculateSCI(operationalEmissions, embodiedEmissions, functionalUnit, functionalUnitType, regionCode)
}

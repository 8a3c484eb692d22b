package carboncue

import (
	"fmt"
	"strings"
	"time"
)

// Provider identifies a supported cloud provider.
type Provider string

// Supported cloud providers.
const (
	ProviderAWS          Provider = "aws"
	ProviderAzure        Provider = "azure"
	ProviderGCP          Provider = "gcp"
	ProviderDigitalOcean Provider = "digitalocean"
	ProviderOther        Provider = "other"
)

// ParseProvider converts a provider string into a Provider. Matching is
// case-insensitive.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(s)) {
	case ProviderAWS:
		return ProviderAWS, nil
	case ProviderAzure:
		return ProviderAzure, nil
	case ProviderGCP:
		return ProviderGCP, nil
	case ProviderDigitalOcean:
		return ProviderDigitalOcean, nil
	case ProviderOther:
		return ProviderOther, nil
	default:
		return "", &InvalidProviderError{Provider: s}
	}
}

// valid reports whether p is one of the enumerated providers.
func (p Provider) valid() bool {
	switch p {
	case ProviderAWS, ProviderAzure, ProviderGCP, ProviderDigitalOcean, ProviderOther:
		return true
	default:
		return false
	}
}

// Region is an immutable cloud region identity: a region code plus the
// provider it belongs to. Construct via NewRegion; all fields are validated
// there and cannot be changed afterwards.
type Region struct {
	code     string
	provider Provider
}

// NewRegion validates and constructs a Region.
func NewRegion(code string, provider Provider) (Region, error) {
	if code == "" {
		return Region{}, &ValidationError{Field: "code", Message: "region code must not be empty"}
	}
	if !provider.valid() {
		return Region{}, &ValidationError{
			Field:   "provider",
			Message: fmt.Sprintf("unknown provider %q", string(provider)),
		}
	}
	return Region{code: code, provider: provider}, nil
}

// Code returns the provider-native region identifier.
func (r Region) Code() string { return r.code }

// Provider returns the cloud provider the region belongs to.
func (r Region) Provider() Provider { return r.provider }

func (r Region) String() string {
	return string(r.provider) + "/" + r.code
}

// CarbonIntensity is an immutable snapshot of grid carbon intensity for a
// cloud region at a point in time. Construct via NewCarbonIntensity; there are
// no setters.
type CarbonIntensity struct {
	region       string
	gramsPerKWh  float64
	fossilPct    *float64
	renewablePct *float64
	source       string
	timestamp    time.Time
}

// CarbonIntensityOption sets an optional field during construction.
type CarbonIntensityOption func(*CarbonIntensity)

// WithFossilFuelPercentage sets the share of generation from fossil fuels.
func WithFossilFuelPercentage(pct float64) CarbonIntensityOption {
	return func(ci *CarbonIntensity) {
		ci.fossilPct = &pct
	}
}

// WithRenewablePercentage sets the share of generation from renewables.
func WithRenewablePercentage(pct float64) CarbonIntensityOption {
	return func(ci *CarbonIntensity) {
		ci.renewablePct = &pct
	}
}

// WithTimestamp overrides the snapshot timestamp. Without this option the
// timestamp defaults to construction time.
func WithTimestamp(ts time.Time) CarbonIntensityOption {
	return func(ci *CarbonIntensity) {
		ci.timestamp = ts
	}
}

// NewCarbonIntensity validates and constructs a CarbonIntensity snapshot.
// Intensity must be strictly positive; percentage options, if supplied, must
// be within [0,100].
func NewCarbonIntensity(region string, gramsPerKWh float64, source string, opts ...CarbonIntensityOption) (CarbonIntensity, error) {
	ci := CarbonIntensity{
		region:      region,
		gramsPerKWh: gramsPerKWh,
		source:      source,
	}
	for _, opt := range opts {
		opt(&ci)
	}

	if region == "" {
		return CarbonIntensity{}, &ValidationError{Field: "region", Message: "region must not be empty"}
	}
	if gramsPerKWh <= 0 {
		return CarbonIntensity{}, &ValidationError{
			Field:   "carbon_intensity",
			Message: fmt.Sprintf("must be greater than 0, got %g", gramsPerKWh),
		}
	}
	if err := validatePercentage("fossil_fuel_percentage", ci.fossilPct); err != nil {
		return CarbonIntensity{}, err
	}
	if err := validatePercentage("renewable_percentage", ci.renewablePct); err != nil {
		return CarbonIntensity{}, err
	}
	if ci.timestamp.IsZero() {
		ci.timestamp = time.Now().UTC()
	}
	return ci, nil
}

func validatePercentage(field string, pct *float64) error {
	if pct == nil {
		return nil
	}
	if *pct < 0 || *pct > 100 {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between 0 and 100, got %g", *pct),
		}
	}
	return nil
}

// Region returns the cloud region the snapshot describes.
func (ci CarbonIntensity) Region() string { return ci.region }

// Intensity returns the grid carbon intensity in gCO2eq per kWh.
func (ci CarbonIntensity) Intensity() float64 { return ci.gramsPerKWh }

// FossilFuelPercentage returns the fossil fuel share of generation, if known.
func (ci CarbonIntensity) FossilFuelPercentage() (float64, bool) {
	if ci.fossilPct == nil {
		return 0, false
	}
	return *ci.fossilPct, true
}

// RenewablePercentage returns the renewable share of generation, if known.
func (ci CarbonIntensity) RenewablePercentage() (float64, bool) {
	if ci.renewablePct == nil {
		return 0, false
	}
	return *ci.renewablePct, true
}

// Source returns the name of the data provider the snapshot came from.
func (ci CarbonIntensity) Source() string { return ci.source }

// Timestamp returns when the snapshot was fetched.
func (ci CarbonIntensity) Timestamp() time.Time { return ci.timestamp }

// SCIScore is an immutable Software Carbon Intensity result. The score is
// derived inside NewSCIScore from the emissions and functional unit; it cannot
// be set independently.
type SCIScore struct {
	score              float64
	operational        float64
	embodied           float64
	functionalUnit     int
	functionalUnitType string
	region             string
}

// NewSCIScore validates inputs and computes the SCI score:
// (operational + embodied) / functionalUnit. The functional unit check happens
// before the division is evaluated. No rounding is applied.
func NewSCIScore(operationalEmissions, embodiedEmissions float64, functionalUnit int, functionalUnitType, regionCode string) (SCIScore, error) {
	if operationalEmissions < 0 {
		return SCIScore{}, &ValidationError{
			Field:   "operational_emissions",
			Message: fmt.Sprintf("must not be negative, got %g", operationalEmissions),
		}
	}
	if embodiedEmissions < 0 {
		return SCIScore{}, &ValidationError{
			Field:   "embodied_emissions",
			Message: fmt.Sprintf("must not be negative, got %g", embodiedEmissions),
		}
	}
	if functionalUnit <= 0 {
		return SCIScore{}, &InvalidFunctionalUnitError{FunctionalUnit: functionalUnit}
	}

	return SCIScore{
		score:              (operationalEmissions + embodiedEmissions) / float64(functionalUnit),
		operational:        operationalEmissions,
		embodied:           embodiedEmissions,
		functionalUnit:     functionalUnit,
		functionalUnitType: functionalUnitType,
		region:             regionCode,
	}, nil
}

// Score returns emissions per functional unit.
func (s SCIScore) Score() float64 { return s.score }

// OperationalEmissions returns the operational emissions input in gCO2eq.
func (s SCIScore) OperationalEmissions() float64 { return s.operational }

// EmbodiedEmissions returns the embodied emissions input in gCO2eq.
func (s SCIScore) EmbodiedEmissions() float64 { return s.embodied }

// FunctionalUnit returns the functional unit count the score is normalized by.
func (s SCIScore) FunctionalUnit() int { return s.functionalUnit }

// FunctionalUnitType returns the caller-supplied unit label (e.g. "requests").
func (s SCIScore) FunctionalUnitType() string { return s.functionalUnitType }

// Region returns the caller-supplied region label.
func (s SCIScore) Region() string { return s.region }

// Package region translates cloud provider region identifiers into the
// Electricity Maps grid zone codes used for carbon intensity lookups.
//
// The mapping is a static, versioned table (see zones.go). All operations are
// pure lookups with no I/O and are safe for concurrent use.
package region

import (
	"fmt"
	"sort"
	"strings"
)

// UnsupportedProviderError is returned when a provider has no zone table.
type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("Unsupported cloud provider: %s", e.Provider)
}

// UnsupportedRegionError is returned when a provider is known but the region
// is absent from that provider's table.
type UnsupportedRegionError struct {
	Provider string
	Region   string
}

func (e *UnsupportedRegionError) Error() string {
	return fmt.Sprintf("Unsupported region: %s for provider %s", e.Region, e.Provider)
}

// ZoneID returns the Electricity Maps zone code for a cloud region.
// Provider matching is case-insensitive; region matching is case-sensitive
// against the maintained table.
func ZoneID(regionCode, provider string) (string, error) {
	zones, ok := providerZones[strings.ToLower(provider)]
	if !ok {
		return "", &UnsupportedProviderError{Provider: provider}
	}
	zone, ok := zones[regionCode]
	if !ok {
		return "", &UnsupportedRegionError{Provider: provider, Region: regionCode}
	}
	return zone, nil
}

// SupportedRegions returns the sorted region identifiers known for a provider.
func SupportedRegions(provider string) ([]string, error) {
	zones, ok := providerZones[strings.ToLower(provider)]
	if !ok {
		return nil, &UnsupportedProviderError{Provider: provider}
	}
	regions := make([]string, 0, len(zones))
	for r := range zones {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions, nil
}

// SupportedProviders returns the sorted provider identifiers known to the mapper.
func SupportedProviders() []string {
	providers := make([]string, 0, len(providerZones))
	for p := range providerZones {
		providers = append(providers, p)
	}
	sort.Strings(providers)
	return providers
}

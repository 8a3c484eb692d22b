// Package main provides a maintenance tool that checks the region mapper's
// zone codes against the live Electricity Maps zone index.
//
// The provider→region→zone table is curated data; when Electricity Maps
// renames or retires a zone the table drifts silently. Run this before
// releases:
//
//	go run ./tools/validate-zones [--api-key KEY]
//
// Flags:
//
//	--api-key   Electricity Maps credential (default: ELECTRICITY_MAPS_API_KEY env)
//	--base-url  API root (default: https://api.electricitymap.org/v3)
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rshade/carboncue-go/region"
)

// zoneInfo is one entry of the Electricity Maps /zones index.
type zoneInfo struct {
	ZoneName    string `json:"zoneName"`
	CountryName string `json:"countryName"`
}

func main() {
	apiKey := flag.String("api-key", os.Getenv("ELECTRICITY_MAPS_API_KEY"), "Electricity Maps API key")
	baseURL := flag.String("base-url", "https://api.electricitymap.org/v3", "Electricity Maps API root")
	flag.Parse()

	fmt.Println("Fetching Electricity Maps zone index...")
	zones, err := fetchZones(*baseURL, *apiKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching zone index: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Upstream knows %d zones\n", len(zones))

	var missing int
	for _, provider := range region.SupportedProviders() {
		regions, err := region.SupportedRegions(provider)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing regions for %s: %v\n", provider, err)
			os.Exit(1)
		}

		for _, r := range regions {
			zone, err := region.ZoneID(r, provider)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error resolving %s/%s: %v\n", provider, r, err)
				os.Exit(1)
			}
			if _, ok := zones[zone]; !ok {
				fmt.Printf("MISSING  %s/%s -> %s not in upstream zone index\n", provider, r, zone)
				missing++
			}
		}
	}

	if missing > 0 {
		fmt.Fprintf(os.Stderr, "%d mapped zone codes are unknown upstream; update region/zones.go\n", missing)
		os.Exit(1)
	}
	fmt.Println("All mapped zone codes exist upstream")
}

// fetchZones retrieves the upstream zone index keyed by zone code.
func fetchZones(baseURL, apiKey string) (map[string]zoneInfo, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	req, err := http.NewRequest(http.MethodGet, baseURL+"/zones", nil)
	if err != nil {
		return nil, err
	}
	if apiKey != "" {
		req.Header.Set("auth-token", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch zones: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var zones map[string]zoneInfo
	if err := json.NewDecoder(resp.Body).Decode(&zones); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return zones, nil
}

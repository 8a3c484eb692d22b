package region

// providerZones maps cloud provider identifiers to their region→zone tables.
// Zone codes are Electricity Maps zone identifiers.
//
// The mapping is curated data, not derived: cloud regions are assigned to
// electrical grid zones by where the data centers physically sit. Keep this
// table in sync with the Electricity Maps zone taxonomy
// (https://api.electricitymap.org/v3/zones); run ./tools/validate-zones to
// check every code against the live zone index.
var providerZones = map[string]map[string]string{
	"aws": {
		"us-east-1":      "US-VA",       // Virginia
		"us-east-2":      "US-OH",       // Ohio
		"us-west-1":      "US-CAL-CISO", // N. California (CAISO)
		"us-west-2":      "US-NW-PACW",  // Oregon (PacifiCorp West)
		"ca-central-1":   "CA-QC",       // Montreal (hydro-heavy)
		"eu-west-1":      "IE",          // Ireland
		"eu-west-2":      "GB",          // London
		"eu-west-3":      "FR",          // Paris
		"eu-central-1":   "DE",          // Frankfurt
		"eu-north-1":     "SE",          // Stockholm
		"ap-southeast-1": "SG",          // Singapore
		"ap-southeast-2": "AU-NSW",      // Sydney
		"ap-northeast-1": "JP-TK",       // Tokyo
		"ap-south-1":     "IN-WE",       // Mumbai
		"sa-east-1":      "BR-CS",       // São Paulo
	},
	"azure": {
		"eastus":             "US-VA",        // Virginia
		"eastus2":            "US-VA",        // Virginia
		"centralus":          "US-CENT-SWPP", // Iowa (SPP)
		"westus":             "US-CAL-CISO",  // California
		"westus2":            "US-NW-PACW",   // Washington
		"northeurope":        "IE",           // Ireland
		"westeurope":         "NL",           // Netherlands
		"uksouth":            "GB",           // London
		"ukwest":             "GB",           // Cardiff
		"francecentral":      "FR",           // Paris
		"germanywestcentral": "DE",           // Frankfurt
		"swedencentral":      "SE",           // Gävle
		"southeastasia":      "SG",           // Singapore
		"australiaeast":      "AU-NSW",       // Sydney
		"japaneast":          "JP-TK",        // Tokyo
		"brazilsouth":        "BR-CS",        // São Paulo
	},
	"gcp": {
		"us-west1":             "US-NW-PACW",   // Oregon
		"us-west2":             "US-CAL-LDWP",  // Los Angeles
		"us-central1":          "US-CENT-SWPP", // Iowa
		"us-east1":             "US-CAR-SC",    // South Carolina
		"us-east4":             "US-VA",        // N. Virginia
		"europe-west1":         "BE",           // Belgium
		"europe-west2":         "GB",           // London
		"europe-west3":         "DE",           // Frankfurt
		"europe-west4":         "NL",           // Netherlands
		"europe-north1":        "FI",           // Finland
		"asia-southeast1":      "SG",           // Singapore
		"asia-northeast1":      "JP-TK",        // Tokyo
		"asia-south1":          "IN-WE",        // Mumbai
		"australia-southeast1": "AU-VIC",       // Melbourne
		"southamerica-east1":   "BR-CS",        // São Paulo
	},
	"digitalocean": {
		"nyc1": "US-NY-NYIS",  // New York
		"nyc2": "US-NY-NYIS",  // New York
		"nyc3": "US-NY-NYIS",  // New York
		"sfo2": "US-CAL-CISO", // San Francisco
		"sfo3": "US-CAL-CISO", // San Francisco
		"tor1": "CA-ON",       // Toronto
		"ams3": "NL",          // Amsterdam
		"lon1": "GB",          // London
		"fra1": "DE",          // Frankfurt
		"sgp1": "SG",          // Singapore
		"blr1": "IN-SO",       // Bangalore
		"syd1": "AU-NSW",      // Sydney
	},
}

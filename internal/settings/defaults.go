package settings

// DefaultPrograms are the preset reward programs with their published
// one-way economy baseline rates and booking links.
func DefaultPrograms() []RewardProgram {
	return []RewardProgram{
		{
			ID:                 "flyingblue",
			Name:               "Flying Blue (Air France/KLM)",
			Miles:              22500,
			Threshold:          1.5,
			BookURL:            "https://www.flyingblue.com/en/book-award",
			Color:              "bg-blue-600",
			AvailabilitySource: "flyingblue",
		},
		{
			ID:                 "aadvantage",
			Name:               "AA AAdvantage (via Iberia)",
			Miles:              30000,
			Threshold:          1.5,
			BookURL:            "https://www.aa.com/aadvantage-program/redeem-miles/flights",
			Color:              "bg-red-600",
			AvailabilitySource: "american",
		},
		{
			ID:                 "virginatlantic",
			Name:               "Virgin Atlantic Flying Club",
			Miles:              30000,
			Threshold:          1.5,
			BookURL:            "https://www.virginatlantic.com/en/us/flying-club/spend-miles",
			Color:              "bg-pink-600",
			AvailabilitySource: "virginatlantic",
		},
		{
			ID:                 "skymileseco",
			Name:               "Delta SkyMiles (Economy)",
			Miles:              35000,
			Threshold:          1.5,
			BookURL:            "https://www.delta.com/us/en/skymiles/redeem-miles/book-a-flight",
			Color:              "bg-indigo-600",
			AvailabilitySource: "delta",
		},
	}
}

// DefaultRoutes are the preset saved routes.
func DefaultRoutes() []Route {
	return []Route{
		{
			ID:          "opo-ord",
			Label:       "Porto → Chicago",
			Origin:      "OPO",
			OriginCity:  "Porto",
			Destination: "ORD",
			DestCity:    "Chicago",
			Date:        "2026-05-27",
		},
		{
			ID:          "ams-msp",
			Label:       "Amsterdam → Minneapolis",
			Origin:      "AMS",
			OriginCity:  "Amsterdam",
			Destination: "MSP",
			DestCity:    "Minneapolis",
			Date:        "2026-07-27",
		},
	}
}

// DefaultSettings assembles the fallback document used when nothing valid
// is stored.
func DefaultSettings() *AppSettings {
	return &AppSettings{
		Version:  SchemaVersion,
		Routes:   DefaultRoutes(),
		Programs: DefaultPrograms(),
	}
}

package core

// stateAbbrev maps full state names to USPS abbreviations, including DC and
// the territories that report SSBG data.
var stateAbbrev = map[string]string{
	"Alabama":                  "AL",
	"Alaska":                   "AK",
	"Arizona":                  "AZ",
	"Arkansas":                 "AR",
	"California":               "CA",
	"Colorado":                 "CO",
	"Connecticut":              "CT",
	"Delaware":                 "DE",
	"Florida":                  "FL",
	"Georgia":                  "GA",
	"Hawaii":                   "HI",
	"Idaho":                    "ID",
	"Illinois":                 "IL",
	"Indiana":                  "IN",
	"Iowa":                     "IA",
	"Kansas":                   "KS",
	"Kentucky":                 "KY",
	"Louisiana":                "LA",
	"Maine":                    "ME",
	"Maryland":                 "MD",
	"Massachusetts":            "MA",
	"Michigan":                 "MI",
	"Minnesota":                "MN",
	"Mississippi":              "MS",
	"Missouri":                 "MO",
	"Montana":                  "MT",
	"Nebraska":                 "NE",
	"Nevada":                   "NV",
	"New Hampshire":            "NH",
	"New Jersey":               "NJ",
	"New Mexico":               "NM",
	"New York":                 "NY",
	"North Carolina":           "NC",
	"North Dakota":             "ND",
	"Ohio":                     "OH",
	"Oklahoma":                 "OK",
	"Oregon":                   "OR",
	"Pennsylvania":             "PA",
	"Rhode Island":             "RI",
	"South Carolina":           "SC",
	"South Dakota":             "SD",
	"Tennessee":                "TN",
	"Texas":                    "TX",
	"Utah":                     "UT",
	"Vermont":                  "VT",
	"Virginia":                 "VA",
	"Washington":               "WA",
	"West Virginia":            "WV",
	"Wisconsin":                "WI",
	"Wyoming":                  "WY",
	"District of Columbia":     "DC",
	"Puerto Rico":              "PR",
	"Guam":                     "GU",
	"U.S. Virgin Islands":      "VI",
	"American Samoa":           "AS",
	"Northern Mariana Islands": "MP",
}

// StateAbbrev returns the USPS abbreviation for a full state name, or the
// empty string for names outside the reporting set.
func StateAbbrev(name string) string {
	return stateAbbrev[name]
}

// KnownState reports whether name is a reporting state or territory.
func KnownState(name string) bool {
	_, ok := stateAbbrev[name]
	return ok
}

package signal

import "strings"

// GeoMatch returns hit when state appears in text, otherwise miss.
//
// The state itself is matched as a case-insensitive substring. When state is a
// US postal code its full name is also tried ("CA" finds "California"); when it
// is a full name the postal code is tried as a whole word only, since two
// letters occur inside too many ordinary words. An empty state occurs in
// every text and is a hit.
func GeoMatch(state, text string, hit, miss float64) float64 {
	state = strings.TrimSpace(state)
	if state == "" {
		return hit
	}

	lowerText := strings.ToLower(text)
	lowerState := strings.ToLower(state)
	if strings.Contains(lowerText, lowerState) {
		return hit
	}

	if name, ok := stateNames[strings.ToUpper(state)]; ok {
		if strings.Contains(lowerText, strings.ToLower(name)) {
			return hit
		}
		return miss
	}

	if code, ok := stateCodes[lowerState]; ok && containsWord(lowerText, strings.ToLower(code)) {
		return hit
	}
	return miss
}

// containsWord reports whether word occurs in text delimited by non-letters.
func containsWord(text, word string) bool {
	for _, tok := range strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z')
	}) {
		if tok == word {
			return true
		}
	}
	return false
}

// stateNames maps USPS postal codes to state and territory names.
var stateNames = map[string]string{
	"AL": "Alabama",
	"AK": "Alaska",
	"AZ": "Arizona",
	"AR": "Arkansas",
	"CA": "California",
	"CO": "Colorado",
	"CT": "Connecticut",
	"DE": "Delaware",
	"DC": "District of Columbia",
	"FL": "Florida",
	"GA": "Georgia",
	"HI": "Hawaii",
	"ID": "Idaho",
	"IL": "Illinois",
	"IN": "Indiana",
	"IA": "Iowa",
	"KS": "Kansas",
	"KY": "Kentucky",
	"LA": "Louisiana",
	"ME": "Maine",
	"MD": "Maryland",
	"MA": "Massachusetts",
	"MI": "Michigan",
	"MN": "Minnesota",
	"MS": "Mississippi",
	"MO": "Missouri",
	"MT": "Montana",
	"NE": "Nebraska",
	"NV": "Nevada",
	"NH": "New Hampshire",
	"NJ": "New Jersey",
	"NM": "New Mexico",
	"NY": "New York",
	"NC": "North Carolina",
	"ND": "North Dakota",
	"OH": "Ohio",
	"OK": "Oklahoma",
	"OR": "Oregon",
	"PA": "Pennsylvania",
	"RI": "Rhode Island",
	"SC": "South Carolina",
	"SD": "South Dakota",
	"TN": "Tennessee",
	"TX": "Texas",
	"UT": "Utah",
	"VT": "Vermont",
	"VA": "Virginia",
	"WA": "Washington",
	"WV": "West Virginia",
	"WI": "Wisconsin",
	"WY": "Wyoming",
	"AS": "American Samoa",
	"GU": "Guam",
	"MP": "Northern Mariana Islands",
	"PR": "Puerto Rico",
	"VI": "U.S. Virgin Islands",
}

// stateCodes is the inverse of stateNames, keyed by lower-cased name.
var stateCodes = func() map[string]string {
	m := make(map[string]string, len(stateNames))
	for code, name := range stateNames {
		m[strings.ToLower(name)] = code
	}
	return m
}()

package classify

import "strings"

// referenceCountries is the fixed list used for company country inference.
// Match precedence follows list order, not the order names appear in the
// scanned text.
var referenceCountries = []string{
	"Afghanistan", "Albania", "Algeria", "Argentina", "Australia", "Austria",
	"Bangladesh", "Belgium", "Bolivia", "Brazil", "Bulgaria", "Cambodia",
	"Cameroon", "Canada", "Chile", "China", "Colombia", "Croatia", "Cuba",
	"Czech Republic", "Denmark", "Ecuador", "Egypt", "Estonia", "Ethiopia",
	"Finland", "France", "Germany", "Ghana", "Greece", "Hungary", "Iceland",
	"India", "Indonesia", "Iran", "Iraq", "Ireland", "Israel", "Italy",
	"Japan", "Jordan", "Kenya", "Latvia", "Lebanon", "Lithuania",
	"Luxembourg", "Malaysia", "Mexico", "Morocco", "Netherlands",
	"New Zealand", "Nigeria", "Norway", "Pakistan", "Peru", "Philippines",
	"Poland", "Portugal", "Romania", "Russia", "Saudi Arabia", "Senegal",
	"Serbia", "Singapore", "Slovakia", "Slovenia", "South Africa",
	"South Korea", "Spain", "Sweden", "Switzerland", "Taiwan", "Thailand",
	"Tunisia", "Turkey", "Ukraine", "United Arab Emirates", "United Kingdom",
	"United States", "Uruguay", "Venezuela", "Vietnam",
}

// inferCountry scans text for the first reference country name present,
// case-insensitively. Spaces in the matched name are replaced with hyphens.
// Returns "" when no country is mentioned.
func inferCountry(text string) string {
	lowered := strings.ToLower(text)
	for _, country := range referenceCountries {
		if strings.Contains(lowered, strings.ToLower(country)) {
			return strings.ReplaceAll(country, " ", "-")
		}
	}
	return ""
}

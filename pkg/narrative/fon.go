package narrative

import "strings"

// fonCities maps French city names of the covered axes to their Fon names.
var fonCities = map[string]string{
	"Cotonou":    "Kutɔnu",
	"Porto-Novo": "Xɔgbonu",
	"Abomey":     "Agbomɛ",
	"Ouidah":     "Glexwé",
	"Bohicon":    "Bɔxikɔn",
	"Allada":     "Alada",
}

// FonCityName renders a city as "Fon (French)" when the city has a known Fon
// name, matching case-insensitively on the part before any comma. unknown
// cities pass through unchanged.
func FonCityName(cityFr string) string {
	baseName := strings.TrimSpace(strings.SplitN(cityFr, ",", 2)[0])
	for fr, fon := range fonCities {
		if strings.EqualFold(fr, baseName) {
			return fon + " (" + fr + ")"
		}
	}
	return cityFr
}

// TitleCase uppercases the first letter of every word, mirroring how request
// inputs are normalized before the Fon lookup.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

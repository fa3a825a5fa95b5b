package usecase

import "strings"

// tipTopics is checked in this fixed order; the first case-insensitive
// substring match of the topic wins.
var tipTopics = []string{"nebula", "galaxy", "planet", "mars"}

var tipTable = map[string][]string{
	"nebula": {
		"Try viewing nebulae with different filters to see various elements",
		"Nebulae are stellar nurseries where new stars are born",
		"The colors in nebulae indicate different chemical elements",
	},
	"galaxy": {
		"Our Milky Way contains over 100 billion stars",
		"Galaxies rotate, with spiral arms moving like waves",
		"Look for the galaxy's central black hole in deep images",
	},
	"planet": {
		"Each planet has unique atmospheric conditions",
		"Temperature varies greatly across planetary surfaces",
		"Study surface features to understand geological history",
	},
	"mars": {
		"Mars has the largest volcano in the solar system",
		"Mars has polar ice caps made of water and dry ice",
		"Dust storms on Mars can last for months",
	},
	"default": {
		"Use dark sky locations for better astronomical viewing",
		"Try astronomy apps to identify objects in the night sky",
		"The best viewing is often just after sunset or before sunrise",
	},
}

// AstronomyTips returns the full tip list for the first matching topic
// keyword, or the default list when nothing matches. Callers truncate.
func AstronomyTips(topic string) []string {
	lowered := strings.ToLower(topic)
	for _, key := range tipTopics {
		if strings.Contains(lowered, key) {
			return tipTable[key]
		}
	}
	return tipTable["default"]
}

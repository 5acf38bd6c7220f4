package edhrec

import "regexp"

// LabelNotAvailable is recorded when a cardview has no label or its label has no percentage.
const LabelNotAvailable = "N/A"

// a run of digits directly followed by a percent sign, ex. "62%" in "62% of 3012 decks"
var percentageRegex = regexp.MustCompile(`\d+%`)

// ExtractPercentage returns the first percentage in a cardview label.
func ExtractPercentage(label string) (string, bool) {
	match := percentageRegex.FindString(label)
	if match == "" {
		return "", false
	}
	return match, true
}

// the first "normal" image of a printing embedded in a card page,
// ex. "image_uris":[{"normal":"https://cards.scryfall.io/normal/front/..."}]
var imageURLRegex = regexp.MustCompile(`"image_uris":\[\{"normal":"([^"]+)"`)

// ExtractImageURL returns the image url of the last printing embedded in a card page.
// Pages list every printing of a card, the last one is the current printing.
func ExtractImageURL(body string) (string, bool) {
	matches := imageURLRegex.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return "", false
	}
	return matches[len(matches)-1][1], true
}

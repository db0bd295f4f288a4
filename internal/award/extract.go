package award

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Plausibility band for a one-way transatlantic economy award. Matches
// outside this range are discarded as noise: dollar prices, flight numbers,
// and unrelated figures that happen to sit near a mileage keyword.
const (
	MinPlausibleMiles = 8_000
	MaxPlausibleMiles = 200_000
)

// Mileage mentions come in three textual shapes: comma-grouped thousands
// followed by a mileage keyword, a "<N>k" shorthand, and comma-grouped
// thousands directly preceding a program name. Only the middle shape is
// shorthand; the shape decides normalization, never the surrounding text
// (program tokens like "SkyMiles" contain a "k" of their own).
var milesPatterns = []struct {
	re        *regexp.Regexp
	shorthand bool
}{
	{re: regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})+)\s*(?:miles|points|award)`)},
	{re: regexp.MustCompile(`(?i)(\d+)k\s*(?:miles|points)`), shorthand: true},
	{re: regexp.MustCompile(`(?i)(\d+),(\d{3})\s*(?:Flying Blue|SkyMiles|AAdvantage|miles)`)},
}

// ExtractMiles mines free search-result text for a plausible award mileage
// figure. It returns the median of all plausible matches and true, or 0 and
// false when nothing plausible was found. Duplicate mentions across results
// are intentionally not deduplicated: repetition is itself a weak confidence
// signal. This is a best-effort heuristic; callers must label its output as
// a low-confidence estimate.
func ExtractMiles(text string) (int, bool) {
	var found []int

	for _, pat := range milesPatterns {
		for _, m := range pat.re.FindAllStringSubmatch(text, -1) {
			val, ok := parseMatch(m, pat.shorthand)
			if !ok {
				continue
			}
			if val >= MinPlausibleMiles && val <= MaxPlausibleMiles {
				found = append(found, val)
			}
		}
	}

	if len(found) == 0 {
		return 0, false
	}

	// Median, not mean, to resist outlier skew. On an even-length list the
	// upper-middle element is taken (floor(len/2) into the sorted slice).
	sort.Ints(found)
	return found[len(found)/2], true
}

func parseMatch(m []string, shorthand bool) (int, bool) {
	if shorthand {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return n * 1000, true
	}

	digits := strings.ReplaceAll(m[1], ",", "")
	if len(m) > 2 && m[2] != "" {
		digits += m[2]
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

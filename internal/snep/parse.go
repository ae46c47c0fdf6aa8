package snep

import (
	"regexp"
	"strings"

	"github.com/camilh/snep-tools/internal/chart"
)

// SNEP lists collaborations in one artist string. Splitting happens on
// FEAT/FT (any casing), "&", commas, and a capitalized "X" between names;
// the first four artists fill the fixed slots.
const marker = "|SEPARATOR|"

var textSeparators = []string{
	" FT. ", " FT ", " ft ", "FEAT.", "FEAT", "feat.", "feat", "Feat.", "Feat", "&", ",",
}

var (
	xSeparator  = regexp.MustCompile(`\b([A-Z][A-Za-z\s]+?)\s+X\s+([A-Z][A-Za-z\s]+?)\b`)
	longDigits  = regexp.MustCompile(`\d{3,}`)
	xStopWords  = regexp.MustCompile(`(?i)\b(THE|AND|OF|FOR|WITH|IN|ON|AT)\b`)
	parenGroup  = regexp.MustCompile(`\(([^)]*)\)`)
	featInParen = regexp.MustCompile(`(?i)\b(?:feat\.?|ft\.?|featuring)\s+(.+)`)
	featSplit   = regexp.MustCompile(`\s*[&,]\s*`)
	spaceRun    = regexp.MustCompile(`\s+`)
)

// splitX rewrites "Name X Name" into a separated pair when both sides look
// like artist names. Long digit runs and common English stop-words around
// the X disqualify the match.
func splitX(s string) string {
	return xSeparator.ReplaceAllStringFunc(s, func(m string) string {
		groups := xSeparator.FindStringSubmatch(m)
		a := strings.TrimSpace(groups[1])
		b := strings.TrimSpace(groups[2])
		if len(a) < 2 || len(b) < 2 {
			return m
		}
		if longDigits.MatchString(a+b) || xStopWords.MatchString(a+" "+b) {
			return m
		}
		return a + marker + b
	})
}

// SplitArtists separates an artist string into the primary and up to three
// featured slots.
func SplitArtists(s string) (artists [4]string) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return
	}

	for _, sep := range textSeparators {
		cleaned = strings.ReplaceAll(cleaned, sep, marker)
	}
	cleaned = splitX(cleaned)

	i := 0
	for _, part := range strings.Split(cleaned, marker) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i == len(artists) {
			break
		}
		artists[i] = part
		i++
	}
	return
}

// CleanTitle strips parenthesized segments from a title and pulls out the
// artists named in any "(feat. ...)" group.
func CleanTitle(title string) (clean string, feat []string) {
	clean = strings.TrimSpace(title)
	if clean == "" {
		return
	}

	for _, group := range parenGroup.FindAllStringSubmatch(clean, -1) {
		m := featInParen.FindStringSubmatch(group[1])
		if m == nil {
			continue
		}
		for _, name := range featSplit.Split(m[1], -1) {
			if name = strings.TrimSpace(name); name != "" {
				feat = append(feat, name)
			}
		}
	}

	clean = parenGroup.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(spaceRun.ReplaceAllString(clean, " "))
	return
}

// mergeFeat fills empty artist slots with feat. artists that aren't already
// present under any casing.
func mergeFeat(artists [4]string, feat []string) [4]string {
	have := make(map[string]bool)
	for _, a := range artists {
		if a != "" {
			have[strings.ToUpper(a)] = true
		}
	}

	for _, f := range feat {
		if have[strings.ToUpper(f)] {
			continue
		}
		for i := range artists {
			if artists[i] == "" {
				artists[i] = f
				have[strings.ToUpper(f)] = true
				break
			}
		}
	}
	return artists
}

// buildEntry assembles one chart row from the raw scraped fields.
func buildEntry(rank int, rawTitle, rawArtist, publisher string) chart.Entry {
	title, feat := CleanTitle(rawTitle)
	artists := mergeFeat(SplitArtists(rawArtist), feat)

	return chart.Entry{
		Rank:      rank,
		Title:     title,
		Artist:    artists[0],
		Artist2:   artists[1],
		Artist3:   artists[2],
		Artist4:   artists[3],
		Publisher: strings.TrimSpace(publisher),
	}
}

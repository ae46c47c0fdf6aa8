package cmd

import (
	"fmt"
	"regexp"
	"time"

	"github.com/camilh/snep-tools/internal/chart"
)

type parsedWeek struct {
	Year int
	Week int

	// WholeYear is set when the argument named a year with no week part.
	WholeYear bool
}

// parseWeekRangeFromArgs turns command arguments into an inclusive week
// range. No arguments means 2020-W01 through the current ISO week.
func parseWeekRangeFromArgs(args []string) (startYear, startWeek, endYear, endWeek int, err error) {
	switch len(args) {
	case 0:
		nowYear, nowWeek := time.Now().ISOWeek()
		return 2020, 1, nowYear, nowWeek, nil

	case 1:
		return getImplicitWeekRange(args[0])

	case 2:
		return getExplicitWeekRange(args[0], args[1])

	default:
		err = fmt.Errorf("Expected at most two week arguments")
	}
	return
}

func getImplicitWeekRange(ws string) (startYear, startWeek, endYear, endWeek int, err error) {
	parsed, err := parseSingleWeekstring(ws)
	if err != nil {
		return
	}

	startYear = parsed.Year
	endYear = parsed.Year
	if parsed.WholeYear {
		startWeek = 1
		endWeek = isoWeeksInYear(parsed.Year)
	} else {
		startWeek = parsed.Week
		endWeek = parsed.Week
	}
	return
}

func getExplicitWeekRange(startString, endString string) (startYear, startWeek, endYear, endWeek int, err error) {
	startParsed, err := parseSingleWeekstring(startString)
	if err != nil {
		return
	}
	startYear = startParsed.Year
	startWeek = startParsed.Week
	if startParsed.WholeYear {
		startWeek = 1
	}

	endParsed, err := parseSingleWeekstring(endString)
	if err != nil {
		return
	}
	endYear = endParsed.Year
	endWeek = endParsed.Week
	if endParsed.WholeYear {
		endWeek = isoWeeksInYear(endParsed.Year)
	}
	return
}

var yearPattern = regexp.MustCompile(`^\d{4}$`)

func parseSingleWeekstring(ws string) (parsedWeek, error) {
	if yearPattern.MatchString(ws) {
		year, _, err := chart.ParseWeek(ws + "-W01")
		if err != nil {
			return parsedWeek{}, fmt.Errorf("Parsing weekstring as year: %w", err)
		}
		return parsedWeek{Year: year, WholeYear: true}, nil
	}

	year, week, err := chart.ParseWeek(ws)
	if err != nil {
		return parsedWeek{}, err
	}
	return parsedWeek{Year: year, Week: week}, nil
}

// isoWeeksInYear reports whether the year has 52 or 53 ISO weeks.
// December 28th always falls in the last ISO week of its year.
func isoWeeksInYear(year int) int {
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

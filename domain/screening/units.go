package screening

import (
	"regexp"
	"strconv"
	"strings"

	"oncosense/domain/core"
)

// concentrationUnits maps unit suffixes to molar (or ug/ml) multipliers.
// Unknown units map to 0; see ParseConcentration.
var concentrationUnits = map[string]float64{
	"nM":    1e-9,
	"uM":    1e-6,
	"mM":    1e-3,
	"ug/ml": 1,
}

var (
	digitsPattern        = regexp.MustCompile(`\d+`)
	concentrationPattern = regexp.MustCompile(`([\d.-]+)(\D*)`)
)

// ParseTime returns the duration encoded by s in minutes.
// "24hr" is 1440, "30min" is 30.
func ParseTime(s string) (int, error) {
	match := digitsPattern.FindString(s)
	if match == "" {
		return 0, core.NewParseError("time", s)
	}
	value, err := strconv.Atoi(match)
	if err != nil {
		return 0, core.NewParseError("time", s)
	}
	if strings.Contains(s, "hr") {
		value *= 60
	}
	return value, nil
}

// ParseConcentration returns the concentration encoded by s in base units.
// The no-dosage sentinel is 0. A unit outside the table also yields 0
// rather than an error, which keeps results comparable with existing exports.
func ParseConcentration(s string) (float64, error) {
	if s == SentinelDosage {
		return 0, nil
	}
	m := concentrationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, core.NewParseError("concentration", s)
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, core.NewParseError("concentration", s)
	}
	return value * concentrationUnits[strings.TrimSpace(m[2])], nil
}

// Decode converts a condition value on the given axis into a comparable magnitude
func Decode(col FixedColumn, s string) (float64, error) {
	if col == FixedTime {
		minutes, err := ParseTime(s)
		return float64(minutes), err
	}
	return ParseConcentration(s)
}

package carbon

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups thousands for display.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatKg formats a kg CO2e amount with one decimal place and thousand
// separators, e.g. "5,625.0 kg CO2".
func FormatKg(kg float64) string {
	return FormatNumber(kg, 1) + " kg CO2"
}

// FormatNumber formats f with the given precision and thousand separators.
func FormatNumber(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', precision, 64)
	}

	s := strconv.FormatFloat(math.Abs(f), 'f', precision, 64)
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return strconv.FormatFloat(f, 'f', precision, 64)
	}

	out := printer.Sprintf("%d", n)
	if hasFrac {
		out += "." + frac
	}
	if f < 0 && strings.Trim(s, "0.") != "" {
		out = "-" + out
	}
	return out
}

// FormatFraction formats a 0-1 fraction as a whole percentage.
func FormatFraction(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

package services

import (
	"fmt"
	"strconv"
)

// FormatCurrency renders an amount in minor units as a US-locale dollar
// string, e.g. 15795 -> "$157.95", 1234567 -> "$12,345.67".
func FormatCurrency(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	dollars := strconv.FormatInt(cents/100, 10)
	var grouped []byte
	for i, c := range []byte(dollars) {
		if i > 0 && (len(dollars)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, c)
	}
	out := fmt.Sprintf("$%s.%02d", grouped, cents%100)
	if neg {
		return "-" + out
	}
	return out
}

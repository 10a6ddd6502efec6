package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMoney renders an amount with the currency symbol and thousand
// separators, e.g. "₸12,500" or "₸150.50". Whole amounts drop the
// decimal part the way the console displayed them.
func FormatMoney(symbol string, amount float64) string {
	if symbol == "" {
		symbol = "₸"
	}
	whole := math.Trunc(amount)
	if amount == whole {
		return symbol + groupThousands(int64(whole))
	}
	return fmt.Sprintf("%s%s", symbol, strconv.FormatFloat(amount, 'f', 2, 64))
}

func groupThousands(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return sign + out.String()
}

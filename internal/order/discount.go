package order

import "strings"

// validDiscounts is the fixed allow-list of discount codes.
var validDiscounts = []string{"FROZENYUMMY", "FROZENBASIC", "FROZENPREMIUM"}

// IsValidDiscount reports whether code matches the allow-list,
// case-insensitively. The empty string is not a valid code.
func IsValidDiscount(code string) bool {
	upper := strings.ToUpper(code)
	for _, valid := range validDiscounts {
		if upper == valid {
			return true
		}
	}
	return false
}

package utils

import "strings"

// NormalizePhone strips everything but digits. Customers are keyed by this
// form, so "(11) 98765-4321" and "11987654321" resolve to the same record.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

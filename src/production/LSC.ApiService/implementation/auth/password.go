package auth

import "strings"

const (
	minPasswordLength = 8
	passwordSymbols   = "@$!%*?&"
)

// MeetsPasswordPolicy reports whether s contains, somewhere, a run of at least eight
// characters from [A-Za-z0-9@$!%*?&] such that the rest of that line from the run's start
// holds a lowercase letter, an uppercase letter, a digit and one of @$!%*?&.
// The run does not need to span the whole password.
func MeetsPasswordPolicy(s string) bool {
	runes := []rune(s)
	for i := 0; i+minPasswordLength <= len(runes); i++ {
		if !allPasswordChars(runes[i : i+minPasswordLength]) {
			continue
		}
		if lineHasAllClasses(runes[i:]) {
			return true
		}
	}
	return false
}

func allPasswordChars(rs []rune) bool {
	for _, r := range rs {
		if !isLower(r) && !isUpper(r) && !isDigit(r) && !strings.ContainsRune(passwordSymbols, r) {
			return false
		}
	}
	return true
}

// lineHasAllClasses scans up to the first line terminator
func lineHasAllClasses(rs []rune) bool {
	var lower, upper, digit, symbol bool
	for _, r := range rs {
		if isLineTerminator(r) {
			break
		}
		switch {
		case isLower(r):
			lower = true
		case isUpper(r):
			upper = true
		case isDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
		if lower && upper && digit && symbol {
			return true
		}
	}
	return false
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}

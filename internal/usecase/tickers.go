package usecase

import "strings"

// NormalizeTickers trims, upper-cases and de-duplicates raw tickers, keeping
// first-seen order and at most limit entries. Symbols with characters outside
// A-Z 0-9 . - ^ = are returned separately and do not count toward limit.
func NormalizeTickers(raw []string, limit int) (symbols, invalid []string) {
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		sym := strings.ToUpper(strings.TrimSpace(r))
		if sym == "" {
			continue
		}
		if _, dup := seen[sym]; dup {
			continue
		}
		seen[sym] = struct{}{}
		if !ValidSymbol(sym) {
			invalid = append(invalid, sym)
			continue
		}
		if limit > 0 && len(symbols) >= limit {
			continue
		}
		symbols = append(symbols, sym)
	}
	return symbols, invalid
}

// ValidSymbol reports whether s is a plausible upper-case ticker.
func ValidSymbol(s string) bool {
	if s == "" || len(s) > 20 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '-', r == '^', r == '=':
		default:
			return false
		}
	}
	return true
}

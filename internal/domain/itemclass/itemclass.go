// Package itemclass holds the pure classification rules applied to item
// requirements: currency detection, found-in-raid attributes and the
// description filter used to narrow objective items.
package itemclass

import (
	"strings"
	"unicode"

	"github.com/raidledger/raidledger/internal/domain/catalog"
)

var currencyNameTokens = []string{"rouble", "ruble", "rubl", "euro", "dollar"}

var currencyShortNames = map[string]bool{"rub": true, "eur": true, "usd": true}

var currencySymbols = []string{"₽", "$", "€"}

// IsCurrency reports whether an item is in-game money.
func IsCurrency(name, shortName string) bool {
	n := strings.ToLower(name)
	for _, tok := range currencyNameTokens {
		if strings.Contains(n, tok) {
			return true
		}
	}
	s := strings.ToLower(strings.TrimSpace(shortName))
	if currencyShortNames[s] {
		return true
	}
	for _, sym := range currencySymbols {
		if strings.Contains(s, sym) {
			return true
		}
	}
	return false
}

// HasFIRAttribute reports whether any attribute marks the requirement as
// found in raid.
func HasFIRAttribute(attrs []catalog.Attribute) bool {
	for _, a := range attrs {
		if isFIRName(a.Name) || isFIRName(a.Type) {
			return true
		}
	}
	return false
}

func isFIRName(s string) bool {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) || r == '_' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	n := b.String()
	return n == "fir" || strings.Contains(n, "findinraid") || strings.Contains(n, "foundinraid")
}

// NormalizeKey keeps only lowercase letters and digits so names scraped from
// the wiki can be matched against catalog names.
func NormalizeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DescriptionNames reports whether an objective item passes the description
// filter: with no description every item passes, otherwise the item name or
// short name must appear in it.
func DescriptionNames(description, name, shortName string) bool {
	d := strings.ToLower(strings.TrimSpace(description))
	if d == "" {
		return true
	}
	if n := strings.ToLower(strings.TrimSpace(name)); n != "" && strings.Contains(d, n) {
		return true
	}
	if s := strings.ToLower(strings.TrimSpace(shortName)); s != "" && strings.Contains(d, s) {
		return true
	}
	return false
}

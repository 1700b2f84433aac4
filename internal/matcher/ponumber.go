// Package matcher locates 5-digit purchase-order and invoice numbers in text.
package matcher

import (
	"regexp"

	"poextract/internal/domain"
)

var (
	standaloneNumber = regexp.MustCompile(`\b\d{5}\b`)
	labeledNumber    = regexp.MustCompile(`(?i)(?:invoice\s*(?:no(?:\.|:)?|number|num)?\s*:?)(\d{5})`)
)

// FindStandalone returns every word-boundary-delimited 5-digit number in text, in order.
func FindStandalone(text string) []string {
	return standaloneNumber.FindAllString(text, -1)
}

// FindLabeled returns the first "invoice"-labeled 5-digit number in text.
// span is the full matched text and digits the number alone.
func FindLabeled(text string) (span, digits string, ok bool) {
	m := labeledNumber.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[0], m[1], true
}

// Find returns the PO number in text. Any standalone 5-digit number wins over
// a labeled one; among standalone numbers the first wins.
func Find(text string) (*domain.POMatch, bool) {
	if numbers := FindStandalone(text); len(numbers) > 0 {
		return &domain.POMatch{Number: numbers[0], Span: numbers[0]}, true
	}
	if span, digits, ok := FindLabeled(text); ok {
		return &domain.POMatch{Number: digits, Span: span, Labeled: true}, true
	}
	return nil, false
}

// FindFirst runs Find over each text in order and returns the first match.
func FindFirst(texts ...string) (*domain.POMatch, bool) {
	for _, text := range texts {
		if m, ok := Find(text); ok {
			return m, true
		}
	}
	return nil, false
}

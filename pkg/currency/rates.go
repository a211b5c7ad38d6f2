package currency

import (
	"time"

	"github.com/centsible/centsible/pkg/money"
	log "github.com/sirupsen/logrus"
)

// Rates is a table of exchange rates, each expressed against a single base
// currency. The mapping may be partial.
type Rates struct {
	BaseCurrency string
	Rates        map[string]float64
	UpdatedAt    time.Time
}

// ResolveRate returns the exchange rate from one currency to another, and
// whether a rate could be resolved at all. Cross rates between two non-base
// currencies are composed through the base. The lookup is deliberately a flat
// set of branches rather than recursion, so a malformed table with a
// self-referential base cannot loop.
func ResolveRate(from, to string, rates *Rates) (float64, bool) {
	if from == to {
		return 1, true
	}
	if rates == nil {
		return 0, false
	}
	if from == rates.BaseCurrency {
		rate, ok := rates.Rates[to]
		return rate, ok
	}
	if to == rates.BaseCurrency {
		rate, ok := rates.Rates[from]
		if !ok || rate == 0 {
			return 0, false
		}
		return 1 / rate, true
	}
	// from -> base -> to
	fromRate, ok := rates.Rates[from]
	if !ok || fromRate == 0 {
		return 0, false
	}
	toRate, ok := rates.Rates[to]
	if !ok {
		return 0, false
	}
	return toRate / fromRate, true
}

// ConvertCents converts an amount between currencies, rounding to the nearest
// cent. A missing rate is not an error: the original amount is returned
// unchanged so a budget still renders with best-effort numbers.
func ConvertCents(amount money.Cents, from, to string, rates *Rates) money.Cents {
	converted, _ := ConvertCentsTagged(amount, from, to, rates)
	return converted
}

// ConvertCentsTagged behaves like ConvertCents and additionally reports
// whether a real conversion happened, for callers that must distinguish
// "converted" from "passed through".
func ConvertCentsTagged(amount money.Cents, from, to string, rates *Rates) (money.Cents, bool) {
	if from == to {
		return amount, true
	}
	rate, ok := ResolveRate(from, to, rates)
	if !ok {
		log.Warnf("no exchange rate available for %s -> %s, returning amount unconverted", from, to)
		return amount, false
	}
	converted, err := money.Multiply(amount, rate)
	if err != nil {
		log.Warnf("conversion of %d from %s to %s failed (%v), returning amount unconverted", amount, from, to, err)
		return amount, false
	}
	return converted, true
}

package prices

import (
	"regexp"
	"strconv"
	"strings"
)

// PricePattern extracts currency amounts from free text. Kept as an
// interface so non-euro locales can be added without touching the
// pipeline.
type PricePattern interface {
	// FindFirst returns the first price in the text, or false.
	FindFirst(text string) (float64, bool)

	// FindAll returns every price in the text, in order of appearance.
	FindAll(text string) []float64
}

// EuroPattern matches currency-prefixed (`€12.34`, `EUR 12.34`) and
// currency-suffixed (`12,34€`, `12.34 EUR`) decimals. A comma is treated
// as a decimal separator.
type EuroPattern struct {
	prefixed *regexp.Regexp
	suffixed *regexp.Regexp
}

func NewEuroPattern() *EuroPattern {
	return &EuroPattern{
		prefixed: regexp.MustCompile(`(?:€|EUR)\s*(\d{1,4}(?:[.,]\d{1,2})?)`),
		suffixed: regexp.MustCompile(`(\d{1,4}(?:[.,]\d{1,2})?)\s*(?:€|EUR)`),
	}
}

func (p *EuroPattern) FindFirst(text string) (float64, bool) {
	all := p.FindAll(text)
	if len(all) == 0 {
		return 0, false
	}
	return all[0], true
}

func (p *EuroPattern) FindAll(text string) []float64 {
	type hit struct {
		pos   int
		value float64
	}

	var hits []hit

	collect := func(re *regexp.Regexp) {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			raw := text[m[2]:m[3]]
			value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
			if err != nil || value <= 0 {
				continue
			}
			hits = append(hits, hit{pos: m[0], value: value})
		}
	}

	collect(p.prefixed)
	collect(p.suffixed)

	// Order by position; drop the duplicate when both expressions
	// matched around the same number.
	var out []float64
	used := make(map[int]bool)
	for {
		best := -1
		for i, h := range hits {
			if used[i] {
				continue
			}
			if best == -1 || h.pos < hits[best].pos {
				best = i
			}
		}
		if best == -1 {
			break
		}
		used[best] = true

		dup := false
		for i, h := range hits {
			if i != best && used[i] && h.value == hits[best].value &&
				abs(h.pos-hits[best].pos) < 8 {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, hits[best].value)
		}
	}

	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

package board

import (
	"strconv"

	"boardcode-go/types"
)

// Warning is a data-validation finding for the board author. Bindings are
// authoritative and are never rewritten because of a warning.
type Warning struct {
	Symbol string
	Other  string
	Pin    types.PinIndex
	Msg    string
}

func (w Warning) String() string { return w.Msg }

// seriesWarnings flags two labels of the same series (same prefix, different
// number, e.g. A5 and A6) bound to one pin. Silkscreen series normally
// advance one pin per label, so a shared pin usually means a mislabelled
// row in the table.
func seriesWarnings(r *Registry) []Warning {
	type seen struct {
		symbol string
		number int
	}
	first := map[string]map[types.PinIndex]seen{} // prefix -> pin -> first label
	var out []Warning
	for _, sym := range r.order {
		p, ok := r.table[sym].Pin()
		if !ok {
			continue
		}
		prefix, n, ok := splitSeries(sym)
		if !ok {
			continue
		}
		byPin := first[prefix]
		if byPin == nil {
			byPin = map[types.PinIndex]seen{}
			first[prefix] = byPin
		}
		prev, dup := byPin[p.Index()]
		if !dup {
			byPin[p.Index()] = seen{symbol: sym, number: n}
			continue
		}
		if prev.number == n {
			continue
		}
		out = append(out, Warning{
			Symbol: prev.symbol,
			Other:  sym,
			Pin:    p.Index(),
			Msg: strconv.Quote(prev.symbol) + " and " + strconv.Quote(sym) +
				" both bind " + p.String() + "; check the board's label table",
		})
	}
	return out
}

// splitSeries splits "A5" into ("A", 5). Labels without a trailing number
// (SDA, NEOPIXEL) or without a letter prefix are not part of a series.
func splitSeries(sym string) (string, int, bool) {
	i := len(sym)
	for i > 0 && sym[i-1] >= '0' && sym[i-1] <= '9' {
		i--
	}
	if i == len(sym) || i == 0 {
		return "", 0, false
	}
	for j := 0; j < i; j++ {
		c := sym[j]
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '_') {
			return "", 0, false
		}
	}
	n, err := strconv.Atoi(sym[i:])
	if err != nil {
		return "", 0, false
	}
	return sym[:i], n, true
}

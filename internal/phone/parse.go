package phone

import (
	"strconv"
	"strings"

	"github.com/allyourbase/numcanon/internal/numplan"
)

// Parser resolves text to canonical numbers using a numbering-plan oracle.
// It holds no mutable state and is safe for concurrent use.
type Parser struct {
	oracle numplan.Oracle
}

// NewParser creates a Parser. If oracle is nil, numplan.Default() is used.
func NewParser(oracle numplan.Oracle) *Parser {
	if oracle == nil {
		oracle = numplan.Default()
	}
	return &Parser{oracle: oracle}
}

// ParseCanonical parses an already-canonical "+<digits>" string. The national
// part left after the longest matching calling code must be fully valid.
func (p *Parser) ParseCanonical(text string) (Number, bool) {
	digits, ok := strings.CutPrefix(text, "+")
	if !ok {
		return Number{}, false
	}
	cc, rest, ok := p.oracle.MatchCallingCode(digits)
	if !ok {
		return Number{}, false
	}
	return p.ParseParts(cc, rest)
}

// ParseParts builds a number from a calling code and national significant
// number, succeeding only if the oracle considers it fully valid.
func (p *Parser) ParseParts(callingCode int, national string) (Number, bool) {
	if !p.oracle.IsValid(callingCode, national) {
		return Number{}, false
	}
	return Number{callingCode: callingCode, national: national}, true
}

// ParseContextual parses text that may lack an international prefix.
//
// A leading '+' defers to ParseCanonical. Otherwise the digits are resolved
// under callingCode when it is positive, or under region's calling code. The
// digits are first tried as already starting with that calling code, then as
// a domestic number. A number without '+' is never assigned any other code.
func (p *Parser) ParseContextual(text string, callingCode int, region string) (Number, bool) {
	d := Normalize(text)
	if d.Empty() {
		return Number{}, false
	}
	if d.Plus {
		return p.ParseCanonical("+" + d.Digits)
	}
	if callingCode <= 0 {
		callingCode = p.oracle.CallingCodeForRegion(region)
	}
	if callingCode <= 0 {
		return Number{}, false
	}

	if rest, ok := strings.CutPrefix(d.Digits, strconv.Itoa(callingCode)); ok {
		if n, ok := p.resolve(callingCode, rest); ok {
			return n, true
		}
	}
	return p.resolve(callingCode, d.Digits)
}

func (p *Parser) resolve(callingCode int, digits string) (Number, bool) {
	if digits == "" {
		return Number{}, false
	}
	nsn, ok := p.oracle.NationalNumber(callingCode, digits)
	if !ok {
		return Number{}, false
	}
	return Number{callingCode: callingCode, national: nsn}, true
}

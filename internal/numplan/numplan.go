// Package numplan answers numbering-plan questions for the normalization engine:
// calling codes, national number validity and the structural constants the
// regional heuristics need. The engine only talks to the Oracle interface, so
// any metadata source can be substituted.
package numplan

// Oracle is the numbering-plan capability consumed by the parsers and the
// candidate generator. Implementations must be pure and safe for concurrent use.
type Oracle interface {
	// CallingCodeForRegion returns the calling code for an ISO 3166-1 region,
	// or 0 when the region is unknown.
	CallingCodeForRegion(region string) int
	// RegionForCallingCode returns the main region for a calling code, or ""
	// when the code is not registered.
	RegionForCallingCode(callingCode int) string
	// MatchCallingCode splits digits into the longest registered calling-code
	// prefix and the remaining digits.
	MatchCallingCode(digits string) (callingCode int, rest string, ok bool)
	// IsValid reports whether national is the national significant number of
	// a fully valid, assignable number under callingCode.
	IsValid(callingCode int, national string) bool
	// NationalNumber resolves domestically dialled digits (possibly carrying a
	// trunk prefix) to the national significant number of a fully valid number.
	NationalNumber(callingCode int, digits string) (string, bool)
	// SubscriberLength is the number of digits after the area code, excluding
	// any mobile prefix digit. Zero when the region has no area-code plan.
	SubscriberLength(region string) int
	// AreaCodeLength is the fixed area-code length for the region, or zero.
	AreaCodeLength(region string) int
	// MobilePrefix returns the digit that marks mobile subscriber numbers.
	MobilePrefix(region string) (byte, bool)
}

// Plan holds the structural constants of a numbering plan that the metadata
// library does not expose directly.
type Plan struct {
	AreaCodeLength   int
	SubscriberLength int
	MobilePrefix     byte // 0 when the plan has none
	// RetiredPrefix marks a MobilePrefix that libphonenumber no longer
	// accepts. Numbers written with it are still valid registrations.
	RetiredPrefix bool
}

// DefaultPlans maps calling codes to their structural constants.
var DefaultPlans = map[int]Plan{
	1:  {AreaCodeLength: 3, SubscriberLength: 7},
	52: {MobilePrefix: '1', RetiredPrefix: true},
	55: {AreaCodeLength: 2, SubscriberLength: 8, MobilePrefix: '9'},
}

// maxCallingCodeLen is the longest calling code in ITU E.164.
const maxCallingCodeLen = 3

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

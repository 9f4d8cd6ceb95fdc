package numplan

import (
	"strconv"
	"strings"
	"sync"

	"github.com/nyaruka/phonenumbers"
)

// LibPhoneNumber implements Oracle on top of the libphonenumber metadata
// compiled into github.com/nyaruka/phonenumbers.
type LibPhoneNumber struct {
	plans map[int]Plan
}

var _ Oracle = (*LibPhoneNumber)(nil)

// NewLibPhoneNumber creates an oracle using the given structural constants.
// If plans is nil, DefaultPlans is used.
func NewLibPhoneNumber(plans map[int]Plan) *LibPhoneNumber {
	if plans == nil {
		plans = DefaultPlans
	}
	return &LibPhoneNumber{plans: plans}
}

var (
	defaultOracle     *LibPhoneNumber
	defaultOracleOnce sync.Once
)

// Default returns the shared libphonenumber-backed oracle.
func Default() *LibPhoneNumber {
	defaultOracleOnce.Do(func() {
		defaultOracle = NewLibPhoneNumber(nil)
	})
	return defaultOracle
}

func (o *LibPhoneNumber) CallingCodeForRegion(region string) int {
	if region == "" {
		return 0
	}
	return phonenumbers.GetCountryCodeForRegion(strings.ToUpper(region))
}

func (o *LibPhoneNumber) RegionForCallingCode(callingCode int) string {
	if callingCode <= 0 {
		return ""
	}
	region := phonenumbers.GetRegionCodeForCountryCode(callingCode)
	if region == phonenumbers.UNKNOWN_REGION {
		return ""
	}
	return region
}

func (o *LibPhoneNumber) MatchCallingCode(digits string) (int, string, bool) {
	if !isDigits(digits) || digits[0] == '0' {
		return 0, "", false
	}
	for n := min(maxCallingCodeLen, len(digits)-1); n >= 1; n-- {
		cc, err := strconv.Atoi(digits[:n])
		if err != nil {
			continue
		}
		if o.RegionForCallingCode(cc) != "" {
			return cc, digits[n:], true
		}
	}
	return 0, "", false
}

func (o *LibPhoneNumber) IsValid(callingCode int, national string) bool {
	nsn, ok := o.NationalNumber(callingCode, national)
	return ok && nsn == national
}

func (o *LibPhoneNumber) NationalNumber(callingCode int, digits string) (string, bool) {
	if callingCode <= 0 || !isDigits(digits) {
		return "", false
	}
	// libphonenumber rejects the retired mobile prefix outright, so the
	// prefixed form is valid exactly when the number behind it is.
	if p, ok := o.plans[callingCode]; ok && p.RetiredPrefix && p.MobilePrefix != 0 {
		if rest, ok := strings.CutPrefix(digits, string(p.MobilePrefix)); ok {
			if nsn, ok := o.parse(callingCode, rest); ok && nsn == rest {
				return digits, true
			}
		}
	}
	return o.parse(callingCode, digits)
}

// parse returns the national significant number of a valid number.
func (o *LibPhoneNumber) parse(callingCode int, digits string) (string, bool) {
	if digits == "" {
		return "", false
	}
	num, err := phonenumbers.Parse("+"+strconv.Itoa(callingCode)+digits, "")
	if err != nil {
		return "", false
	}
	if int(num.GetCountryCode()) != callingCode || !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	return phonenumbers.GetNationalSignificantNumber(num), true
}

func (o *LibPhoneNumber) SubscriberLength(region string) int {
	return o.plan(region).SubscriberLength
}

func (o *LibPhoneNumber) AreaCodeLength(region string) int {
	return o.plan(region).AreaCodeLength
}

func (o *LibPhoneNumber) MobilePrefix(region string) (byte, bool) {
	p := o.plan(region)
	return p.MobilePrefix, p.MobilePrefix != 0
}

func (o *LibPhoneNumber) plan(region string) Plan {
	return o.plans[o.CallingCodeForRegion(region)]
}

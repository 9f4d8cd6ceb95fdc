package testutil

import (
	"strconv"
	"strings"
)

// StubRegion describes one region of a StubOracle numbering plan.
type StubRegion struct {
	Region           string
	CallingCode      int
	AreaCodeLength   int
	SubscriberLength int
	MobilePrefix     byte
}

// StubOracle is a numbering plan where exactly the listed E.164 strings are
// valid. A single leading '0' is treated as a trunk prefix.
type StubOracle struct {
	regions []StubRegion
	valid   map[string]bool
}

// StubRegions covers the regions the engine tests exercise.
var StubRegions = []StubRegion{
	{Region: "US", CallingCode: 1, AreaCodeLength: 3, SubscriberLength: 7},
	{Region: "CA", CallingCode: 1, AreaCodeLength: 3, SubscriberLength: 7},
	{Region: "FR", CallingCode: 33},
	{Region: "GB", CallingCode: 44},
	{Region: "DE", CallingCode: 49},
	{Region: "MX", CallingCode: 52, MobilePrefix: '1'},
	{Region: "BR", CallingCode: 55, AreaCodeLength: 2, SubscriberLength: 8, MobilePrefix: '9'},
	{Region: "IE", CallingCode: 353},
}

// NewStubOracle returns an oracle over StubRegions accepting the given numbers.
func NewStubOracle(valid ...string) *StubOracle {
	o := &StubOracle{regions: StubRegions, valid: make(map[string]bool, len(valid))}
	for _, v := range valid {
		o.valid[v] = true
	}
	return o
}

func (o *StubOracle) region(name string) (StubRegion, bool) {
	for _, r := range o.regions {
		if strings.EqualFold(r.Region, name) {
			return r, true
		}
	}
	return StubRegion{}, false
}

func (o *StubOracle) CallingCodeForRegion(region string) int {
	r, _ := o.region(region)
	return r.CallingCode
}

func (o *StubOracle) RegionForCallingCode(callingCode int) string {
	for _, r := range o.regions {
		if r.CallingCode == callingCode {
			return r.Region
		}
	}
	return ""
}

func (o *StubOracle) MatchCallingCode(digits string) (int, string, bool) {
	for n := min(3, len(digits)-1); n >= 1; n-- {
		cc, err := strconv.Atoi(digits[:n])
		if err != nil || digits[0] == '0' {
			continue
		}
		if o.RegionForCallingCode(cc) != "" {
			return cc, digits[n:], true
		}
	}
	return 0, "", false
}

func (o *StubOracle) IsValid(callingCode int, national string) bool {
	return o.valid["+"+strconv.Itoa(callingCode)+national]
}

func (o *StubOracle) NationalNumber(callingCode int, digits string) (string, bool) {
	if o.IsValid(callingCode, digits) {
		return digits, true
	}
	if rest, ok := strings.CutPrefix(digits, "0"); ok && o.IsValid(callingCode, rest) {
		return rest, true
	}
	return "", false
}

func (o *StubOracle) SubscriberLength(region string) int {
	r, _ := o.region(region)
	return r.SubscriberLength
}

func (o *StubOracle) AreaCodeLength(region string) int {
	r, _ := o.region(region)
	return r.AreaCodeLength
}

func (o *StubOracle) MobilePrefix(region string) (byte, bool) {
	r, _ := o.region(region)
	return r.MobilePrefix, r.MobilePrefix != 0
}

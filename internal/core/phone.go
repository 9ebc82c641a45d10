package core

import "github.com/nyaruka/phonenumbers"

// DefaultRegion is the region used to interpret numbers without a country code.
const DefaultRegion = "US"

// NormalizePhone formats raw as an E.164 number ("+15551234567") when it is a
// possible number for region. Anything else is shown as typed and flagged.
func NormalizePhone(raw, region string) Cell {
	if region == "" {
		region = DefaultRegion
	}

	num, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsPossibleNumber(num) {
		return Cell{Value: raw, Flagged: true}
	}
	return Cell{Value: phonenumbers.Format(num, phonenumbers.E164)}
}

// Package phone normalizes lead phone numbers for outbound channels.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Leads without a country prefix are assumed domestic.
const defaultRegion = "US"

// NormalizeE164 returns the number in E.164 form. Input that cannot be
// parsed or is not a valid number comes back trimmed but otherwise
// untouched, so a bad number still reaches the audit trail as submitted.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return trimmed
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

package enums

import "fmt"

// AttemptOutcome classifies a single delivery attempt record.
type AttemptOutcome string

const (
	AttemptOutcomeAttempted            AttemptOutcome = "attempted"
	AttemptOutcomeSuccessful           AttemptOutcome = "successful"
	AttemptOutcomeFailed               AttemptOutcome = "failed"
	AttemptOutcomeCustomerNotAvailable AttemptOutcome = "customer_not_available"
	AttemptOutcomeWrongAddress         AttemptOutcome = "wrong_address"
	AttemptOutcomeRefused              AttemptOutcome = "refused"
	AttemptOutcomeOther                AttemptOutcome = "other"
)

var validAttemptOutcomes = []AttemptOutcome{
	AttemptOutcomeAttempted,
	AttemptOutcomeSuccessful,
	AttemptOutcomeFailed,
	AttemptOutcomeCustomerNotAvailable,
	AttemptOutcomeWrongAddress,
	AttemptOutcomeRefused,
	AttemptOutcomeOther,
}

// String implements fmt.Stringer.
func (o AttemptOutcome) String() string {
	return string(o)
}

// IsValid reports whether the value is a known AttemptOutcome.
func (o AttemptOutcome) IsValid() bool {
	for _, candidate := range validAttemptOutcomes {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseAttemptOutcome converts raw input into an AttemptOutcome.
func ParseAttemptOutcome(value string) (AttemptOutcome, error) {
	for _, candidate := range validAttemptOutcomes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid attempt outcome %q", value)
}

package job

import (
	"fmt"

	"jobmatch/internal/pkg/errs"
)

// Type selects how a job finds its contractor.
//
//   - Immediate: short-notice work claimed directly; expires when nobody claims it in time
//   - Scheduled: claimed directly for a fixed start date
//   - Bidding: contractors submit quotes and the customer picks one
type Type int

const (
	UnknownType Type = iota
	Immediate
	Scheduled
	Bidding
)

var typeNames = map[Type]string{
	Immediate: "IMMEDIATE",
	Scheduled: "SCHEDULED",
	Bidding:   "BIDDING",
}

// ParseType converts the persisted or wire name of a job type.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("jobType", fmt.Errorf("%q is not a valid job type", s))
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Validate rejects UnknownType and out-of-range values.
func (t Type) Validate() error {
	if _, ok := typeNames[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("jobType", fmt.Errorf("%d is not a valid job type", t))
	}
	return nil
}

// IsClaimable reports whether contractors may claim jobs of this type directly.
func (t Type) IsClaimable() bool {
	return t == Immediate || t == Scheduled
}

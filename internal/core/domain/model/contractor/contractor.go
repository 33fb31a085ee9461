package contractor

import (
	"errors"
	"fmt"
	"math"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"
	"jobmatch/internal/pkg/guard"
)

var (
	// ErrContractorIsNotConstructed is returned when using an improperly initialized Contractor.
	ErrContractorIsNotConstructed = errors.New("Contractor must be created via RestoreContractor constructor")
)

// Verification is the outcome of the contractor onboarding review.
type Verification string

const (
	VerificationPending  Verification = "PENDING"
	VerificationVerified Verification = "VERIFIED"
	VerificationRejected Verification = "REJECTED"
)

// ParseVerification converts the persisted name of a verification status.
func ParseVerification(s string) (Verification, error) {
	switch v := Verification(s); v {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return v, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("verification", fmt.Errorf("%q is not a valid verification status", s))
	}
}

// Contractor is a business that employs workers and receives job matches inside its
// coverage radius. The matching core only reads contractors; profile management lives
// elsewhere, so there is no NewContractor.
//
// Business rules:
//   - Coverage radius is a finite, non-negative number of kilometers
//   - Only active and verified contractors are matched
//   - Every worker belongs to exactly this contractor
type Contractor struct {
	id             kernel.UUID
	userID         kernel.UUID
	name           string
	location       kernel.Location
	coverageRadius float64
	active         bool
	verification   Verification
	workers        []Worker
	guard          guard.ConstructorGuard
}

// RestoreContractor reconstructs a Contractor from the directory.
//
// Parameters:
//   - id: contractor identifier used by claims and quotes
//   - userID: account that receives the contractor's notifications
//   - location: base location used for distance calculations
//   - coverageRadiusKm: maximum match distance in kilometers
//   - workers: the contractor's workers with their skills
//
// Returns:
//   - *Contractor: restored contractor
//   - error: aggregated validation error
func RestoreContractor(
	id, userID kernel.UUID,
	name string,
	location kernel.Location,
	coverageRadiusKm float64,
	active bool,
	verification Verification,
	workers []Worker,
) (*Contractor, error) {
	c := &Contractor{
		name:   name,
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		location.Validate(),
		c.setCoverageRadius(coverageRadiusKm),
		c.setVerification(verification),
		c.setWorkers(id, workers),
	); err != nil {
		return nil, err
	}

	c.id = id
	c.userID = userID
	c.location = location
	return c, nil
}

// Validate ensures the Contractor instance was properly constructed.
func (c *Contractor) Validate() error {
	if c == nil {
		return ErrContractorIsNotConstructed
	}
	return c.guard.Validate(ErrContractorIsNotConstructed)
}

func (c *Contractor) ID() kernel.UUID {
	return c.id
}

// UserID returns the account that receives this contractor's notifications.
func (c *Contractor) UserID() kernel.UUID {
	return c.userID
}

func (c *Contractor) Name() string {
	return c.name
}

func (c *Contractor) Location() kernel.Location {
	return c.location
}

// CoverageRadius returns the maximum match distance in kilometers.
func (c *Contractor) CoverageRadius() float64 {
	return c.coverageRadius
}

func (c *Contractor) IsActive() bool {
	return c.active
}

func (c *Contractor) Verification() Verification {
	return c.verification
}

// Workers returns a copy of the contractor's workers.
func (c *Contractor) Workers() []Worker {
	return append([]Worker(nil), c.workers...)
}

// IsMatchable reports whether the contractor may receive matches at all.
func (c *Contractor) IsMatchable() bool {
	return c.active && c.verification == VerificationVerified
}

// HasSkillFor reports whether at least one worker has at least one of the required
// skills. An empty requirement is satisfied by every contractor.
func (c *Contractor) HasSkillFor(required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, w := range c.workers {
		if kernel.SkillsOverlap(w.Skills, required) {
			return true
		}
	}
	return false
}

// Worker looks up one of the contractor's workers.
func (c *Contractor) Worker(id kernel.UUID) (Worker, bool) {
	for _, w := range c.workers {
		if w.ID.IsEqual(id) {
			return w, true
		}
	}
	return Worker{}, false
}

// ForeignWorkers returns the ids that do not belong to this contractor, in input order.
func (c *Contractor) ForeignWorkers(ids []kernel.UUID) []kernel.UUID {
	var foreign []kernel.UUID
	for _, id := range ids {
		if _, ok := c.Worker(id); !ok {
			foreign = append(foreign, id)
		}
	}
	return foreign
}

func (c *Contractor) setCoverageRadius(km float64) error {
	if math.IsNaN(km) || math.IsInf(km, 0) || km < 0 {
		return errs.NewValueIsInvalidErrorWithCause("coverageRadius", fmt.Errorf("%v is not a non-negative distance", km))
	}
	c.coverageRadius = km
	return nil
}

func (c *Contractor) setVerification(v Verification) error {
	parsed, err := ParseVerification(string(v))
	if err != nil {
		return err
	}
	c.verification = parsed
	return nil
}

func (c *Contractor) setWorkers(contractorID kernel.UUID, workers []Worker) error {
	out := make([]Worker, 0, len(workers))
	for _, w := range workers {
		if err := w.ID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("workers", err)
		}
		if !w.ContractorID.IsEqual(contractorID) {
			return errs.NewValueIsInvalidErrorWithCause("workers",
				fmt.Errorf("worker %s belongs to contractor %s", w.ID, w.ContractorID))
		}
		w.Skills = kernel.NormalizeSkills(w.Skills)
		out = append(out, w)
	}
	c.workers = out
	return nil
}

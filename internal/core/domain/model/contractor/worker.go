package contractor

import "jobmatch/internal/core/domain/model/kernel"

// Worker is a person employed by a contractor. Skills are normalized by
// RestoreContractor.
type Worker struct {
	ID           kernel.UUID
	ContractorID kernel.UUID
	Name         string
	Skills       []string
}

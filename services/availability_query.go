package services

import (
	"time"

	"rental-backend/models"
)

// AvailabilityQuery is the read-only surface UI collaborators use to
// validate a candidate range before submitting a reservation. It never
// mutates the ledger and its answer is advisory: Confirm re-checks.
type AvailabilityQuery struct {
	Ledger *AvailabilityService
}

func NewAvailabilityQuery(ledger *AvailabilityService) *AvailabilityQuery {
	return &AvailabilityQuery{Ledger: ledger}
}

type CandidateResult struct {
	Free            bool        `json:"free"`
	ConflictingDays []time.Time `json:"conflictingDays"`
}

// ValidateCandidate reports whether the range is free and, when it is not,
// which days are in the way, so the caller can explain the rejection.
func (q *AvailabilityQuery) ValidateCandidate(propertyID uint, r models.DateRange) (CandidateResult, error) {
	days, err := q.Ledger.conflictingDays(q.Ledger.DB, propertyID, r)
	if err != nil {
		return CandidateResult{}, err
	}
	return CandidateResult{
		Free:            len(days) == 0,
		ConflictingDays: days,
	}, nil
}

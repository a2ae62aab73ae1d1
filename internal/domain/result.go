package domain

import "net/http"

// Outcome classifies how an ingestion branch finished.
type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeNotFound    Outcome = "not_found"
	OutcomeValidation  Outcome = "validation_error"
	OutcomeUpstream    Outcome = "upstream_error"
	OutcomePersistence Outcome = "persistence_error"
)

// IngestionResult reports one pipeline branch to its caller. It is
// transient and never persisted.
type IngestionResult struct {
	Outcome  Outcome
	Inserted int
	Reason   string
}

// Success builds a successful result carrying the number of new rows.
func Success(inserted int) IngestionResult {
	return IngestionResult{Outcome: OutcomeSuccess, Inserted: inserted}
}

// Failure builds a failed result with the failing kind and cause.
func Failure(outcome Outcome, err error) IngestionResult {
	r := IngestionResult{Outcome: outcome}
	if err != nil {
		r.Reason = err.Error()
	}
	return r
}

// OK reports whether the branch completed without error.
func (r IngestionResult) OK() bool {
	return r.Outcome == OutcomeSuccess
}

// StatusCode maps the outcome to the HTTP-style code of the caller-facing
// envelope. Not-yet-published data is 404, not an upstream outage.
func (r IngestionResult) StatusCode() int {
	switch r.Outcome {
	case OutcomeSuccess:
		return http.StatusOK
	case OutcomeNotFound:
		return http.StatusNotFound
	case OutcomeValidation:
		return http.StatusUnprocessableEntity
	case OutcomeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

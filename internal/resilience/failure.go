package resilience

import (
	"time"

	"github.com/sells-group/zipcensus/internal/model"
)

// NewFailure converts an error record into its persisted form. Success
// records yield false.
func NewFailure(r model.Record, now time.Time) (model.Failure, bool) {
	if r.OK() {
		return model.Failure{}, false
	}
	errType := Permanent
	if r.Cause != nil {
		errType = ClassifyError(r.Cause)
	}
	return model.Failure{
		ZIP:       r.ZIP,
		Stage:     r.Stage,
		Error:     r.Error,
		ErrorType: errType,
		FailedAt:  now.UTC(),
	}, true
}

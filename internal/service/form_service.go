package service

import (
	"context"

	"signup-form/internal/domain"
	"signup-form/internal/metrics"
	"signup-form/internal/validator"
	"signup-form/pkg/logger"
)

// Recorder receives the outcome of each validation pass.
// The default implementation feeds Prometheus; tests swap in a mock.
type Recorder interface {
	RecordSubmission(outcome string)
	RecordFieldError(field string)
}

type promRecorder struct{}

func (promRecorder) RecordSubmission(outcome string) { metrics.RecordSubmission(outcome) }
func (promRecorder) RecordFieldError(field string)   { metrics.RecordFieldError(field) }

// FormService validates signup submissions on the trusted side of the
// boundary. It holds no per-request state, so one instance serves every
// concurrent request.
type FormService struct {
	logger   *logger.Logger
	recorder Recorder
}

// NewFormService creates a form service that reports to Prometheus
func NewFormService(log *logger.Logger) *FormService {
	return NewFormServiceWithRecorder(log, promRecorder{})
}

// NewFormServiceWithRecorder creates a form service with a custom recorder
func NewFormServiceWithRecorder(log *logger.Logger, recorder Recorder) *FormService {
	return &FormService{
		logger:   log,
		recorder: recorder,
	}
}

// ValidateSubmission runs the shared schema over a decoded request body.
// Root-level issues (the body is not an object) are returned untouched and
// not counted as a submission; the caller decides how to answer them.
func (s *FormService) ValidateSubmission(ctx context.Context, input any) validator.Result {
	result := validator.Validate(input)
	if _, isRoot := result.RootIssue(); isRoot {
		return result
	}

	log := s.logger.WithContext(ctx)
	if result.OK() {
		s.recorder.RecordSubmission(metrics.OutcomeAccepted)
		log.Debug("Form submission accepted")
		return result
	}

	s.recorder.RecordSubmission(metrics.OutcomeRejected)

	// A field may fail several checks; it is counted once, in report order.
	seen := make(map[domain.Field]bool, len(domain.Fields))
	fields := make([]string, 0, len(domain.Fields))
	for _, fe := range result.FieldErrors() {
		if seen[fe.Field] {
			continue
		}
		seen[fe.Field] = true
		s.recorder.RecordFieldError(fe.Field.String())
		fields = append(fields, fe.Field.String())
	}

	// Only field names are logged; values may contain passwords.
	log.WithFields(map[string]any{
		"fields": fields,
		"issues": len(result.Issues),
	}).Info("Form submission rejected")
	return result
}

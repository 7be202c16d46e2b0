package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"signup-form/internal/domain"
)

func TestNewState_AllUntouched(t *testing.T) {
	s := NewState()

	for _, f := range domain.Fields {
		assert.Equal(t, StatusUntouched, s.Fields[f].Status, f.String())
	}
	assert.False(t, s.HasErrors())
}

func TestReduce_LocalValidated(t *testing.T) {
	s := Reduce(NewState(), LocalValidated{Errors: map[domain.Field]string{
		domain.FieldEmail: "Invalid email",
	}})

	msg, ok := s.Error(domain.FieldEmail)
	assert.True(t, ok)
	assert.Equal(t, "Invalid email", msg)
	assert.Equal(t, SourceLocal, s.Fields[domain.FieldEmail].Source)
	assert.Equal(t, StatusValid, s.Fields[domain.FieldPassword].Status)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	before := NewState()

	_ = Reduce(before, LocalValidated{Errors: map[domain.Field]string{domain.FieldEmail: "x"}})

	assert.Equal(t, StatusUntouched, before.Fields[domain.FieldEmail].Status)
}

func TestReduce_ServerRejectedOverridesOnlyNamedFields(t *testing.T) {
	s := Reduce(NewState(), LocalValidated{Errors: map[domain.Field]string{
		domain.FieldEmail: "Invalid email",
	}})

	s = Reduce(s, ServerRejected{Errors: map[string]string{
		"yearsOfExperience": "Number must be greater than or equal to 1",
		"unknownField":      "ignored",
	}})

	msg, ok := s.Error(domain.FieldYearsOfExperience)
	assert.True(t, ok)
	assert.Equal(t, "Number must be greater than or equal to 1", msg)
	assert.Equal(t, SourceServer, s.Fields[domain.FieldYearsOfExperience].Source)

	// absent fields keep their prior state
	msg, ok = s.Error(domain.FieldEmail)
	assert.True(t, ok)
	assert.Equal(t, "Invalid email", msg)
	assert.Equal(t, StatusValid, s.Fields[domain.FieldGithubURL].Status)
	assert.Len(t, s.Errors(), 2)
}

func TestReduce_ServerMessagesAreSanitized(t *testing.T) {
	s := Reduce(NewState(), ServerRejected{Errors: map[string]string{
		"email":    `<b>Invalid</b> email & more<script>alert(1)</script>`,
		"password": "<img src=x>",
	}})

	msg, _ := s.Error(domain.FieldEmail)
	assert.Equal(t, "Invalid email & more", msg)
	msg, _ = s.Error(domain.FieldPassword)
	assert.Equal(t, fallbackServerMessage, msg)
}

func TestReduce_SubmitSucceededClearsEverything(t *testing.T) {
	s := Reduce(NewState(), ServerRejected{Errors: map[string]string{"email": "taken"}})
	s = Reduce(s, TransportFailed{Err: errors.New("x")})

	s = Reduce(s, SubmitSucceeded{})

	assert.False(t, s.HasErrors())
	assert.Empty(t, s.Notice)
	for _, f := range domain.Fields {
		assert.Equal(t, StatusValid, s.Fields[f].Status)
		assert.Equal(t, SourceNone, s.Fields[f].Source)
		assert.Empty(t, s.Fields[f].Message)
	}
}

func TestReduce_TransportFailedKeepsFieldState(t *testing.T) {
	s := Reduce(NewState(), LocalValidated{})

	s = Reduce(s, TransportFailed{Err: errors.New("connection refused")})

	assert.Equal(t, TransportFailureNotice, s.Notice)
	assert.Equal(t, StatusValid, s.Fields[domain.FieldEmail].Status)
}

func TestReduce_ZeroState(t *testing.T) {
	s := Reduce(State{}, ServerRejected{Errors: map[string]string{"email": "bad"}})

	msg, ok := s.Error(domain.FieldEmail)
	assert.True(t, ok)
	assert.Equal(t, "bad", msg)
	assert.Equal(t, StatusUntouched, s.Fields[domain.FieldPassword].Status)
}

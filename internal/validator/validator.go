// Package validator holds the signup schema shared by the form client and
// the HTTP endpoint. Both sides call Validate on the raw decoded input so the
// two trust domains can never disagree on what is valid.
package validator

import (
	"fmt"
	"math"

	playground "github.com/go-playground/validator/v10"

	"signup-form/internal/domain"
)

// engine is safe for concurrent use and caches parsed tags.
var engine = playground.New()

// Issue is one violated constraint. Path is the offending field name, or
// empty when the input as a whole has the wrong shape.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Result is the outcome of one validation pass. Value is set only when
// Issues is empty.
type Result struct {
	Value  *domain.UserRecord
	Issues []Issue
}

// OK reports whether the input satisfied every constraint.
func (r Result) OK() bool {
	return len(r.Issues) == 0
}

// FieldErrors projects the field-attributed issues onto domain errors,
// preserving order. Root issues are skipped.
func (r Result) FieldErrors() []domain.FieldError {
	out := make([]domain.FieldError, 0, len(r.Issues))
	for _, is := range r.Issues {
		f, ok := domain.ParseField(is.Path)
		if !ok {
			continue
		}
		out = append(out, domain.FieldError{Field: f, Message: is.Message})
	}
	return out
}

// RootIssue returns the first issue not attributed to any field.
func (r Result) RootIssue() (Issue, bool) {
	for _, is := range r.Issues {
		if is.Path == "" {
			return is, true
		}
	}
	return Issue{}, false
}

// FirstPerField keeps the first message reported for each field and drops
// the rest. Issues without a known field are ignored.
func FirstPerField(issues []Issue) map[domain.Field]string {
	out := make(map[domain.Field]string)
	for _, is := range issues {
		f, ok := domain.ParseField(is.Path)
		if !ok {
			continue
		}
		if _, seen := out[f]; !seen {
			out[f] = is.Message
		}
	}
	return out
}

type kind int

const (
	kindString kind = iota
	kindNumber
)

// check pairs a validator tag with the message reported when it fails.
type check struct {
	tag     string
	message string
}

type rule struct {
	field     domain.Field
	kind      kind
	missing   string
	wrongType string // empty means the generic "Expected x, received y"
	checks    []check
}

var rules = []rule{
	{
		field:   domain.FieldEmail,
		kind:    kindString,
		missing: MsgRequired,
		checks:  []check{{"email", MsgInvalidEmail}},
	},
	{
		field:   domain.FieldGithubURL,
		kind:    kindString,
		missing: MsgRequired,
		checks: []check{
			{"url", MsgInvalidURL},
			{"contains=" + GithubHost, MsgInvalidGithubURL},
		},
	},
	{
		field:     domain.FieldYearsOfExperience,
		kind:      kindNumber,
		missing:   MsgYearsRequired,
		wrongType: MsgYearsInvalidType,
		checks: []check{
			{fmt.Sprintf("gte=%d", MinYearsOfExperience), MsgYearsTooSmall},
			{fmt.Sprintf("lte=%d", MaxYearsOfExperience), MsgYearsTooLarge},
		},
	},
	{
		field:   domain.FieldPassword,
		kind:    kindString,
		missing: MsgRequired,
		checks: []check{
			{fmt.Sprintf("min=%d", MinPasswordLength), MsgPasswordTooShort},
			{fmt.Sprintf("max=%d", MaxPasswordLength), MsgPasswordTooLong},
		},
	},
	{
		field:   domain.FieldConfirmPassword,
		kind:    kindString,
		missing: MsgRequired,
	},
}

// Validate checks an arbitrary decoded JSON value against the signup schema.
// It never panics: malformed input is reported through the returned issues.
// Issues follow field declaration order, with every failing check of a field
// reported, and the password confirmation check last. The confirmation check
// only runs once every field is present with the right type; rule failures
// such as a short password do not suppress it.
func Validate(input any) Result {
	obj, ok := input.(map[string]any)
	if !ok {
		return Result{Issues: []Issue{{
			Message: fmt.Sprintf(msgExpectedType, "object", typeName(input)),
		}}}
	}

	var (
		issues  []Issue
		strs    = make(map[domain.Field]string, len(rules))
		numbers = make(map[domain.Field]float64, 1)
		// shapeOK stays true while every field is present with the right type
		shapeOK = true
	)
	for _, r := range rules {
		raw, present := obj[string(r.field)]
		if !present {
			shapeOK = false
			issues = append(issues, Issue{Path: string(r.field), Message: r.missing})
			continue
		}

		var value any
		switch r.kind {
		case kindString:
			s, ok := raw.(string)
			if !ok {
				shapeOK = false
				issues = append(issues, r.typeIssue("string", raw))
				continue
			}
			strs[r.field] = s
			value = s
		case kindNumber:
			n, ok := toNumber(raw)
			if !ok {
				shapeOK = false
				issues = append(issues, r.typeIssue("number", raw))
				continue
			}
			numbers[r.field] = n
			value = n
		}

		for _, c := range r.checks {
			if err := engine.Var(value, c.tag); err != nil {
				issues = append(issues, Issue{Path: string(r.field), Message: c.message})
			}
		}
	}

	password := strs[domain.FieldPassword]
	confirm := strs[domain.FieldConfirmPassword]
	if shapeOK && password != confirm {
		issues = append(issues, Issue{
			Path:    string(domain.FieldConfirmPassword),
			Message: MsgPasswordMismatch,
		})
	}

	if len(issues) > 0 {
		return Result{Issues: issues}
	}
	return Result{Value: &domain.UserRecord{
		Email:             strs[domain.FieldEmail],
		GithubURL:         strs[domain.FieldGithubURL],
		YearsOfExperience: numbers[domain.FieldYearsOfExperience],
		Password:          password,
		ConfirmPassword:   confirm,
	}}
}

func (r rule) typeIssue(expected string, got any) Issue {
	msg := r.wrongType
	if msg == "" {
		msg = fmt.Sprintf(msgExpectedType, expected, typeName(got))
	}
	return Issue{Path: string(r.field), Message: msg}
}

func toNumber(v any) (float64, bool) {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case int32:
		n = float64(t)
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int32, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Package tui renders the signup form in a terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"signup-form/internal/client"
	"signup-form/internal/domain"
)

// SuccessMessage is printed once the server accepts a submission.
const SuccessMessage = "Form submitted successfully"

var labels = map[domain.Field]string{
	domain.FieldEmail:             "email",
	domain.FieldGithubURL:         "Github Url",
	domain.FieldYearsOfExperience: "years of Experience",
	domain.FieldPassword:          "Password",
	domain.FieldConfirmPassword:   "Confirm Password",
}

// Label returns the prompt label shown for a field.
func Label(f domain.Field) string {
	if l, ok := labels[f]; ok {
		return l
	}
	return f.String()
}

// Renderer drives one form through a PromptDriver until it is accepted or
// the user gives up.
type Renderer struct {
	form   *client.Form
	driver PromptDriver
	// raw holds what the user last typed, used as prompt defaults.
	raw map[domain.Field]string
}

// NewRenderer creates a renderer for form
func NewRenderer(form *client.Form, driver PromptDriver) *Renderer {
	return &Renderer{
		form:   form,
		driver: driver,
		raw:    make(map[domain.Field]string, len(domain.Fields)),
	}
}

// Run prompts, submits and re-prompts on validation errors. After a
// transport failure the user is asked whether to retry the same values.
func (r *Renderer) Run(ctx context.Context) (client.Outcome, error) {
	for {
		values, err := r.collect(ctx)
		if err != nil {
			return 0, err
		}

		for {
			outcome, err := r.form.Submit(ctx, values)
			switch outcome {
			case client.OutcomeAccepted:
				return outcome, r.driver.Info(ctx, SuccessMessage)
			case client.OutcomeLocalInvalid, client.OutcomeServerRejected:
				if err := r.showErrors(ctx); err != nil {
					return outcome, err
				}
			case client.OutcomeTransportFailed:
				if infoErr := r.driver.Info(ctx, r.form.State().Notice); infoErr != nil {
					return outcome, infoErr
				}
				retry, cerr := r.driver.Confirm(ctx, ConfirmConfig{Message: "Retry submission?", Default: true})
				if cerr != nil {
					return outcome, cerr
				}
				if !retry {
					return outcome, err
				}
				continue
			default:
				return outcome, err
			}
			break
		}
	}
}

func (r *Renderer) showErrors(ctx context.Context) error {
	for _, fe := range r.form.State().Errors() {
		if err := r.driver.Info(ctx, fmt.Sprintf("  %s: %s", Label(fe.Field), fe.Message)); err != nil {
			return err
		}
	}
	return nil
}

// collect prompts for every field in declaration order.
func (r *Renderer) collect(ctx context.Context) (map[string]any, error) {
	state := r.form.State()
	values := make(map[string]any, len(domain.Fields))

	for _, f := range domain.Fields {
		cfg := InputConfig{Message: Label(f)}
		if msg, ok := state.Error(f); ok {
			cfg.Message = fmt.Sprintf("%s (%s)", Label(f), msg)
		}

		var (
			text string
			err  error
		)
		switch f {
		case domain.FieldPassword, domain.FieldConfirmPassword:
			text, err = r.driver.Password(ctx, cfg)
		default:
			cfg.Default = r.raw[f]
			text, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("prompt %s: %w", f, err)
		}
		r.raw[f] = text

		if f == domain.FieldYearsOfExperience {
			if v, ok := parseYears(text); ok {
				values[f.String()] = v
			}
			continue
		}
		values[f.String()] = text
	}
	return values, nil
}

// parseYears turns the typed years into a number when possible. Blank input
// reports no value; anything else unparseable is passed through as text so
// validation reports the type mismatch.
func parseYears(text string) (any, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return n, true
		}
		return text, true
	}
	return n, true
}

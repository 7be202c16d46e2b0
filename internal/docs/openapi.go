// Package docs describes the HTTP surface as an OpenAPI 3 document.
// The constraints are taken from the validator constants so the published
// contract follows the schema the server actually enforces.
package docs

import (
	"context"
	"fmt"
	"regexp"

	"github.com/getkin/kin-openapi/openapi3"

	"signup-form/internal/domain"
	"signup-form/internal/validator"
)

const (
	Title   = "Signup form API"
	Version = "1.0.0"
)

// UserRecordSchema returns the request body schema of the form endpoint.
func UserRecordSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty(string(domain.FieldEmail),
			openapi3.NewStringSchema().WithFormat("email")).
		WithProperty(string(domain.FieldGithubURL),
			openapi3.NewStringSchema().
				WithFormat("uri").
				WithPattern(regexp.QuoteMeta(validator.GithubHost))).
		WithProperty(string(domain.FieldYearsOfExperience),
			openapi3.NewFloat64Schema().
				WithMin(validator.MinYearsOfExperience).
				WithMax(validator.MaxYearsOfExperience)).
		WithProperty(string(domain.FieldPassword),
			openapi3.NewStringSchema().
				WithMinLength(validator.MinPasswordLength).
				WithMaxLength(validator.MaxPasswordLength)).
		WithProperty(string(domain.FieldConfirmPassword),
			openapi3.NewStringSchema())

	schema.Description = "confirmPassword must equal password."
	schema.Required = make([]string, 0, len(domain.Fields))
	for _, f := range domain.Fields {
		schema.Required = append(schema.Required, string(f))
	}
	return schema
}

func submitResponseSchema() *openapi3.Schema {
	server := openapi3.NewObjectSchema().
		WithAdditionalProperties(openapi3.NewStringSchema())
	server.Description = "First validation message per failing field."

	return openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("server", server)
}

func errorResponseSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema()).
		WithProperty("code", openapi3.NewStringSchema())
}

func jsonResponse(description string, schema *openapi3.Schema) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(description).WithJSONSchema(schema),
	}
}

// Build assembles and validates the document.
func Build(ctx context.Context, formPath, healthPath string) (*openapi3.T, error) {
	submit := openapi3.NewOperation()
	submit.OperationID = "submitForm"
	submit.Summary = "Validate a signup submission"
	submit.Description = "Validation failures are reported with status 200 and a server error map."
	submit.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(UserRecordSchema()),
	}
	submit.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, jsonResponse("Validation outcome", submitResponseSchema())),
		openapi3.WithStatus(400, jsonResponse("Body is not a JSON object", errorResponseSchema())),
		openapi3.WithStatus(413, jsonResponse("Body too large", errorResponseSchema())),
	)

	health := openapi3.NewOperation()
	health.OperationID = "healthLive"
	health.Summary = "Liveness probe"
	health.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, jsonResponse("Service is alive", openapi3.NewObjectSchema().
			WithProperty("status", openapi3.NewStringSchema()).
			WithProperty("time", openapi3.NewDateTimeSchema()))),
	)

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   Title,
			Version: Version,
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath(formPath, &openapi3.PathItem{Post: submit}),
			openapi3.WithPath(healthPath, &openapi3.PathItem{Get: health}),
		),
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi document invalid: %w", err)
	}
	return doc, nil
}

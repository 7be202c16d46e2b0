package docs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signup-form/internal/validator"
)

func TestBuild(t *testing.T) {
	doc, err := Build(context.Background(), "/api/form", "/health/live")
	require.NoError(t, err)

	assert.Equal(t, Title, doc.Info.Title)

	form := doc.Paths.Find("/api/form")
	require.NotNil(t, form)
	require.NotNil(t, form.Post)
	assert.Equal(t, "submitForm", form.Post.OperationID)
	assert.NotNil(t, form.Post.Responses.Status(200))
	assert.NotNil(t, form.Post.Responses.Status(400))

	health := doc.Paths.Find("/health/live")
	require.NotNil(t, health)
	assert.NotNil(t, health.Get)
}

func TestUserRecordSchema_MirrorsValidatorBounds(t *testing.T) {
	schema := UserRecordSchema()

	assert.ElementsMatch(t,
		[]string{"email", "githubUrl", "yearsOfExperience", "password", "confirmPassword"},
		schema.Required)

	years := schema.Properties["yearsOfExperience"].Value
	require.NotNil(t, years.Min)
	require.NotNil(t, years.Max)
	assert.Equal(t, float64(validator.MinYearsOfExperience), *years.Min)
	assert.Equal(t, float64(validator.MaxYearsOfExperience), *years.Max)

	password := schema.Properties["password"].Value
	assert.Equal(t, uint64(validator.MinPasswordLength), password.MinLength)
	require.NotNil(t, password.MaxLength)
	assert.Equal(t, uint64(validator.MaxPasswordLength), *password.MaxLength)

	assert.Equal(t, `github\.com`, schema.Properties["githubUrl"].Value.Pattern)
}

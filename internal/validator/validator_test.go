package validator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signup-form/internal/domain"
)

func validInput() map[string]any {
	return map[string]any{
		"email":             "a@b.com",
		"githubUrl":         "https://github.com/x",
		"yearsOfExperience": float64(5),
		"password":          "abcdefgh",
		"confirmPassword":   "abcdefgh",
	}
}

func with(key string, value any) map[string]any {
	in := validInput()
	in[key] = value
	return in
}

func without(key string) map[string]any {
	in := validInput()
	delete(in, key)
	return in
}

func TestValidate_Success(t *testing.T) {
	result := Validate(validInput())

	require.True(t, result.OK())
	require.NotNil(t, result.Value)
	assert.Equal(t, domain.UserRecord{
		Email:             "a@b.com",
		GithubURL:         "https://github.com/x",
		YearsOfExperience: 5,
		Password:          "abcdefgh",
		ConfirmPassword:   "abcdefgh",
	}, *result.Value)
}

func TestValidate_DecimalYearsAccepted(t *testing.T) {
	result := Validate(with("yearsOfExperience", 2.5))

	require.True(t, result.OK())
	assert.Equal(t, 2.5, result.Value.YearsOfExperience)
}

func TestValidate_UnknownKeysIgnored(t *testing.T) {
	result := Validate(with("nickname", "x"))

	assert.True(t, result.OK())
}

func TestValidate_PasswordMismatch(t *testing.T) {
	result := Validate(with("confirmPassword", "abcdefgX"))

	assert.False(t, result.OK())
	assert.Nil(t, result.Value)
	want := []Issue{{Path: "confirmPassword", Message: MsgPasswordMismatch}}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_PasswordMismatchSkippedOnShapeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]any
		want  []Issue
	}{
		{
			name:  "missing email",
			input: without("email"),
			want:  []Issue{{Path: "email", Message: MsgRequired}},
		},
		{
			name:  "years as string",
			input: with("yearsOfExperience", "5"),
			want:  []Issue{{Path: "yearsOfExperience", Message: MsgYearsInvalidType}},
		},
		{
			name:  "null github url",
			input: with("githubUrl", nil),
			want:  []Issue{{Path: "githubUrl", Message: "Expected string, received null"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input["confirmPassword"] = "different1"

			result := Validate(tt.input)

			if diff := cmp.Diff(tt.want, result.Issues); diff != "" {
				t.Fatalf("issues mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_YearsOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		years   any
		message string
	}{
		{"zero", float64(0), MsgYearsTooSmall},
		{"just below", 0.99, MsgYearsTooSmall},
		{"negative", float64(-3), MsgYearsTooSmall},
		{"just above", 10.01, MsgYearsTooLarge},
		{"far above", float64(99), MsgYearsTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(with("yearsOfExperience", tt.years))

			require.False(t, result.OK())
			assert.Equal(t, []Issue{{Path: "yearsOfExperience", Message: tt.message}}, result.Issues)
		})
	}
}

func TestValidate_YearsBoundsInclusive(t *testing.T) {
	for _, years := range []float64{1, 10} {
		assert.True(t, Validate(with("yearsOfExperience", years)).OK(), "years=%v", years)
	}
}

func TestValidate_YearsOutOfRangeFailsEvenWhenOthersInvalid(t *testing.T) {
	in := map[string]any{
		"email":             "nope",
		"yearsOfExperience": float64(11),
	}

	errs := FirstPerField(Validate(in).Issues)

	assert.Equal(t, MsgYearsTooLarge, errs[domain.FieldYearsOfExperience])
}

func TestValidate_GithubURL(t *testing.T) {
	tests := []struct {
		name string
		url  any
		want []Issue
	}{
		{
			name: "host is github",
			url:  "https://github.com/someone",
		},
		{
			name: "github.com only in path",
			url:  "https://example.com/github.com",
		},
		{
			name: "github.com only in query",
			url:  "https://example.com/?ref=github.com",
		},
		{
			name: "valid url without github",
			url:  "https://gitlab.com/someone",
			want: []Issue{{Path: "githubUrl", Message: MsgInvalidGithubURL}},
		},
		{
			name: "not a url",
			url:  "github.com",
			want: []Issue{{Path: "githubUrl", Message: MsgInvalidURL}},
		},
		{
			name: "neither url nor github",
			url:  "hello",
			want: []Issue{
				{Path: "githubUrl", Message: MsgInvalidURL},
				{Path: "githubUrl", Message: MsgInvalidGithubURL},
			},
		},
		{
			name: "empty",
			url:  "",
			want: []Issue{
				{Path: "githubUrl", Message: MsgInvalidURL},
				{Path: "githubUrl", Message: MsgInvalidGithubURL},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(with("githubUrl", tt.url))

			if diff := cmp.Diff(tt.want, result.Issues); diff != "" {
				t.Fatalf("issues mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_Email(t *testing.T) {
	assert.True(t, Validate(with("email", "first.last+tag@example.co.uk")).OK())

	for _, bad := range []string{"", "plain", "a@", "@b.com"} {
		result := Validate(with("email", bad))
		assert.Equal(t, []Issue{{Path: "email", Message: MsgInvalidEmail}}, result.Issues, "email=%q", bad)
	}
}

func TestValidate_PasswordLength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []Issue
	}{
		{name: "min length", password: "12345678"},
		{name: "max length", password: "12345678901234567890"},
		{
			name:     "too short",
			password: "1234567",
			want: []Issue{
				{Path: "password", Message: MsgPasswordTooShort},
				{Path: "confirmPassword", Message: MsgPasswordMismatch},
			},
		},
		{
			name:     "too long",
			password: "123456789012345678901",
			want: []Issue{
				{Path: "password", Message: MsgPasswordTooLong},
				{Path: "confirmPassword", Message: MsgPasswordMismatch},
			},
		},
		{
			name:     "length counts runes",
			password: "ééééééé",
			want: []Issue{
				{Path: "password", Message: MsgPasswordTooShort},
				{Path: "confirmPassword", Message: MsgPasswordMismatch},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := with("password", tt.password)
			if tt.want == nil {
				in["confirmPassword"] = tt.password
			}

			result := Validate(in)

			if diff := cmp.Diff(tt.want, result.Issues); diff != "" {
				t.Fatalf("issues mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_MissingAndWrongTypes(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]any
		want  Issue
	}{
		{"missing email", without("email"), Issue{"email", MsgRequired}},
		{"email number", with("email", float64(3)), Issue{"email", "Expected string, received number"}},
		{"github null", with("githubUrl", nil), Issue{"githubUrl", "Expected string, received null"}},
		{"missing years", without("yearsOfExperience"), Issue{"yearsOfExperience", MsgYearsRequired}},
		{"years string", with("yearsOfExperience", "5"), Issue{"yearsOfExperience", MsgYearsInvalidType}},
		{"years null", with("yearsOfExperience", nil), Issue{"yearsOfExperience", MsgYearsInvalidType}},
		{"confirm boolean", with("confirmPassword", true), Issue{"confirmPassword", "Expected string, received boolean"}},
		{"missing confirm", without("confirmPassword"), Issue{"confirmPassword", MsgRequired}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.input)

			assert.Equal(t, []Issue{tt.want}, result.Issues)
		})
	}
}

func TestValidate_ReportsEveryIssueInDeclarationOrder(t *testing.T) {
	in := map[string]any{
		"email":             "nope",
		"githubUrl":         "ftp-less",
		"yearsOfExperience": float64(0),
		"password":          "short",
		"confirmPassword":   "other",
	}

	want := []Issue{
		{Path: "email", Message: MsgInvalidEmail},
		{Path: "githubUrl", Message: MsgInvalidURL},
		{Path: "githubUrl", Message: MsgInvalidGithubURL},
		{Path: "yearsOfExperience", Message: MsgYearsTooSmall},
		{Path: "password", Message: MsgPasswordTooShort},
		{Path: "confirmPassword", Message: MsgPasswordMismatch},
	}
	if diff := cmp.Diff(want, Validate(in).Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	inputs := []any{
		validInput(),
		with("confirmPassword", "mismatch!"),
		map[string]any{},
		"not an object",
	}

	for _, in := range inputs {
		first := Validate(in)
		second := Validate(in)

		assert.Equal(t, first.OK(), second.OK())
		if diff := cmp.Diff(first.Issues, second.Issues); diff != "" {
			t.Fatalf("second pass differs (-first +second):\n%s", diff)
		}
	}
}

func TestValidate_NonObjectInput(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{nil, "Expected object, received null"},
		{[]any{1.0}, "Expected object, received array"},
		{"text", "Expected object, received string"},
		{float64(1), "Expected object, received number"},
	}

	for _, tt := range tests {
		result := Validate(tt.input)

		require.Len(t, result.Issues, 1)
		root, ok := result.RootIssue()
		require.True(t, ok)
		assert.Equal(t, tt.want, root.Message)
		assert.Empty(t, result.FieldErrors())
	}
}

func TestFirstPerField(t *testing.T) {
	issues := []Issue{
		{Path: "githubUrl", Message: MsgInvalidURL},
		{Path: "githubUrl", Message: MsgInvalidGithubURL},
		{Path: "", Message: "root"},
		{Path: "bogus", Message: "ignored"},
		{Path: "confirmPassword", Message: MsgPasswordMismatch},
	}

	got := FirstPerField(issues)

	assert.Equal(t, map[domain.Field]string{
		domain.FieldGithubURL:       MsgInvalidURL,
		domain.FieldConfirmPassword: MsgPasswordMismatch,
	}, got)
}

func TestResult_FieldErrors(t *testing.T) {
	result := Validate(with("confirmPassword", "different1"))

	assert.Equal(t, []domain.FieldError{
		{Field: domain.FieldConfirmPassword, Message: MsgPasswordMismatch},
	}, result.FieldErrors())
}

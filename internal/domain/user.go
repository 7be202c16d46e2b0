package domain

// Field identifies one input of the signup form.
// The set is closed: only the constants below are valid field identifiers.
type Field string

const (
	FieldEmail             Field = "email"
	FieldGithubURL         Field = "githubUrl"
	FieldYearsOfExperience Field = "yearsOfExperience"
	FieldPassword          Field = "password"
	FieldConfirmPassword   Field = "confirmPassword"
)

// Fields lists every field in declaration order.
// Error reporting and rendering both follow this order.
var Fields = []Field{
	FieldEmail,
	FieldGithubURL,
	FieldYearsOfExperience,
	FieldPassword,
	FieldConfirmPassword,
}

// ParseField maps a wire name onto a known Field.
func ParseField(name string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

func (f Field) String() string {
	return string(f)
}

// UserRecord is the validated shape of a signup submission.
// It only exists for the duration of one submit attempt or one request.
type UserRecord struct {
	Email             string  `json:"email"`
	GithubURL         string  `json:"githubUrl"`
	YearsOfExperience float64 `json:"yearsOfExperience"`
	Password          string  `json:"password"`
	ConfirmPassword   string  `json:"confirmPassword"`
}

// FieldError attributes a human readable message to a single field.
type FieldError struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return string(e.Field) + ": " + e.Message
}

// SubmitResponse is the body returned by the form endpoint.
// Exactly one of Success or Server is set; callers must inspect the body
// rather than the status code, which is 200 in both cases.
type SubmitResponse struct {
	Success bool              `json:"success,omitempty"`
	Server  map[string]string `json:"server,omitempty"`
}

// Accepted builds the response for a submission that passed validation.
func Accepted() SubmitResponse {
	return SubmitResponse{Success: true}
}

// Rejected builds the response carrying one message per failing field.
func Rejected(errs map[Field]string) SubmitResponse {
	server := make(map[string]string, len(errs))
	for f, msg := range errs {
		server[string(f)] = msg
	}
	return SubmitResponse{Server: server}
}

package validator

// Messages reported by the signup schema. Client and server display these
// verbatim, so changing one changes the user-facing text on both sides.
const (
	MsgRequired         = "Required"
	MsgInvalidEmail     = "Invalid email"
	MsgInvalidURL       = "Invalid url"
	MsgInvalidGithubURL = "Invalid Github Url"
	MsgYearsRequired    = "required Field"
	MsgYearsInvalidType = "Years of Experience is Needed"
	MsgYearsTooSmall    = "Number must be greater than or equal to 1"
	MsgYearsTooLarge    = "Number must be less than or equal to 10"
	MsgPasswordTooShort = "8 characters is too short"
	MsgPasswordTooLong  = "20 characters is too long"
	MsgPasswordMismatch = "Passwords do not match"

	// msgExpectedType is formatted with the expected and received type names.
	msgExpectedType = "Expected %s, received %s"
)

// Constraint bounds, shared with the OpenAPI document.
const (
	GithubHost           = "github.com"
	MinYearsOfExperience = 1
	MaxYearsOfExperience = 10
	MinPasswordLength    = 8
	MaxPasswordLength    = 20
)

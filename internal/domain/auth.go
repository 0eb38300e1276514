package domain

import "time"

// RoleAdmin is the only role issued by this system.
const RoleAdmin = "Admin"

// Credential is the caller-supplied username/password pair. It is never persisted or logged.
type Credential struct {
	Username string
	Password string
}

// SessionToken describes the claims carried by an issued session token.
type SessionToken struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// OutcomeKind enumerates the results of a login or registration attempt.
type OutcomeKind string

const (
	OutcomeSuccess            OutcomeKind = "SUCCESS"
	OutcomeInvalidCredentials OutcomeKind = "INVALID_CREDENTIALS"
	OutcomeUserNotFound       OutcomeKind = "USER_NOT_FOUND"
	OutcomeUserAlreadyExists  OutcomeKind = "USER_ALREADY_EXISTS"
	OutcomeValidationFailed   OutcomeKind = "VALIDATION_FAILED"
)

// Caller-visible outcome messages.
const (
	MessageLoginSuccess      = "Login Success"
	MessageInvalidUser       = "Invalid User"
	MessageIncorrectPassword = "Incorrect Password"
	MessageRequiredFields    = "Username and Password are required."
	MessagePasswordTooShort  = "Password must be at least 6 characters long."
	MessageAlreadyRegistered = "User is already registered!"
	MessageRegistered        = "User is registered! Please login"
)

// AuthOutcome is the result of a single Login or Register call.
type AuthOutcome struct {
	Kind     OutcomeKind
	Message  string
	Username string
	UserID   int64
	// Session is set only for a successful login.
	Session *IssuedToken
}

// IssuedToken is an encoded session token together with its claims.
type IssuedToken struct {
	Value  string
	Claims SessionToken
}

// Succeeded reports whether the outcome is a success.
func (o *AuthOutcome) Succeeded() bool {
	return o != nil && o.Kind == OutcomeSuccess
}

package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrDuplicateEmail indicates the email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrDuplicateUsername indicates the username is already taken.
var ErrDuplicateUsername = errors.New("username already taken")

// ErrUnauthorized indicates the caller is not allowed to perform the operation.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidCredentials indicates a failed identifier + password authentication.
// Handlers must surface this with the same generic message as ErrInactiveAccount
// so callers cannot tell which check failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInactiveAccount indicates the account exists but has been deactivated.
var ErrInactiveAccount = errors.New("account is inactive")

// ErrMissingPassword indicates a credential registration without a password.
var ErrMissingPassword = errors.New("password is required for email registration")

// ErrInvalidToken covers bad signature, malformed structure, expiry and wrong token type.
var ErrInvalidToken = errors.New("invalid or expired token")

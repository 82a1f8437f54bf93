package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates an unsupported Content-Type header.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates a malformed request body.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after valid JSON.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates the caller exceeded the request rate limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Messaging Errors
const (
	// ErrMessageEmpty indicates a message with neither text nor image.
	ErrMessageEmpty = 2001

	// ErrMessageTooLong indicates message text over the length limit.
	ErrMessageTooLong = 2002

	// ErrMessageNotFound indicates the referenced message id does not exist.
	ErrMessageNotFound = 2003

	// ErrRecipientNotFound indicates the counterpart user id does not exist.
	ErrRecipientNotFound = 2004

	// ErrImageInvalid indicates an image payload that is not a supported data URI.
	ErrImageInvalid = 2101

	// ErrImageTooLarge indicates an image payload over the size limit.
	ErrImageTooLarge = 2102
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrUnauthorized indicates a missing or invalid credential.
	ErrUnauthorized = 3001

	// ErrInvalidCredentials indicates a failed email/password check.
	ErrInvalidCredentials = 3002

	// ErrUserAlreadyExists indicates the signup email is already registered.
	ErrUserAlreadyExists = 3003

	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = 3004

	// ErrInvalidEmail indicates a malformed signup email.
	ErrInvalidEmail = 3005

	// ErrInvalidPassword indicates a password outside the accepted length range.
	ErrInvalidPassword = 3006

	// ErrMissingFields indicates required signup/profile fields were absent.
	ErrMissingFields = 3007
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified server internal error.
	ErrUnknown = 5000

	// ErrFileStorageFailed indicates an image upload or delete failure.
	ErrFileStorageFailed = 5001
)

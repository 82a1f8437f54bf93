package errs

import "net/http"

// errorMap holds the CustomError template for every application error code.
// A zero Status means the response is written as HTTP 200 with a non-zero
// business code, which is how the client distinguishes business failures.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Messaging Errors
	ErrMessageEmpty:      {Code: ErrMessageEmpty, Message: "Message must contain text or an image."},
	ErrMessageTooLong:    {Code: ErrMessageTooLong, Message: "Message is too long."},
	ErrMessageNotFound:   {Code: ErrMessageNotFound, Message: "Message not found.", Status: http.StatusNotFound},
	ErrRecipientNotFound: {Code: ErrRecipientNotFound, Message: "Recipient not found.", Status: http.StatusNotFound},
	ErrImageInvalid:      {Code: ErrImageInvalid, Message: "Unsupported image format."},
	ErrImageTooLarge:     {Code: ErrImageTooLarge, Message: "Image is too large (max %d MB)."},

	// 3xxx: User, Session, and Security Errors
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Incorrect email or password."},
	ErrUserAlreadyExists:  {Code: ErrUserAlreadyExists, Message: "An account with this email already exists."},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Account not found.", Status: http.StatusNotFound},
	ErrInvalidEmail:       {Code: ErrInvalidEmail, Message: "Invalid email address."},
	ErrInvalidPassword:    {Code: ErrInvalidPassword, Message: "Invalid password."},
	ErrMissingFields:      {Code: ErrMissingFields, Message: "All fields are required."},

	// 5xxx: Internal System Errors
	ErrUnknown:           {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrFileStorageFailed: {Code: ErrFileStorageFailed, Message: "Image upload failed. Please try again."},
}

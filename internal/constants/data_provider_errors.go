package constants

// Twitch provider error codes

// Credential-related errors
const (
	ErrCodeInvalidAPIKey        = "INVALID_API_KEY"
	ErrCodeRateLimited          = "RATE_LIMITED"
	ErrCodeNetworkError         = "NETWORK_ERROR"
	ErrCodeAuthenticationFailed = "AUTHENTICATION_FAILED"
)

// Lookup errors
const (
	ErrCodeResourceNotFound  = "RESOURCE_NOT_FOUND"
	ErrCodeInvalidDataFormat = "INVALID_DATA_FORMAT"
)

var DataProviderErrorMessages = map[string]string{
	ErrCodeInvalidAPIKey:        "The Twitch client id or secret is missing or has been revoked",
	ErrCodeRateLimited:          "Rate limit exceeded. Please try again later",
	ErrCodeNetworkError:         "Unable to reach the Twitch API",
	ErrCodeAuthenticationFailed: "Could not obtain a Twitch app access token",
	ErrCodeResourceNotFound:     "The requested Twitch user was not found",
	ErrCodeInvalidDataFormat:    "The data format is invalid",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := DataProviderErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}

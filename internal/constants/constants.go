package constants

const (
	// TokenCookieName is the cookie carrying the signed session token.
	TokenCookieName = "COLLAB_TOKEN"

	// ContextKeyIdentity is the Gin context key holding the validated claims.
	ContextKeyIdentity = "identity"

	// ContextKeyRequestID is the Gin context key holding the request id.
	ContextKeyRequestID = "request_id"

	MinPasswordLength = 8

	// IDSuffixLength is the number of random characters after an id prefix.
	IDSuffixLength = 12

	// JoinCodeLength is the length of the shareable project join code.
	JoinCodeLength = 5

	// MaxJoinCodeAttempts bounds the regenerate loop when a freshly
	// generated join code collides with an existing one.
	MaxJoinCodeAttempts = 5
)

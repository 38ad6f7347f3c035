/*
Package errs provides custom error types and application-level error code constants.

The numeric codes identify business and system failures both inside the server
and in the JSON envelope returned to clients. The HTTP status attached to each
code carries the coarse taxonomy (400, 401, 403, 404, 409, 500).
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrMissingFields indicates that one or more required fields were absent.
	ErrMissingFields = 1005

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Server, Nation and Lobby Errors
const (
	// ErrServerNotFound indicates that the referenced game server does not exist.
	ErrServerNotFound = 2101

	// ErrServerNameRequired indicates that a server was created without a name.
	ErrServerNameRequired = 2102

	// ErrServerSettingsInvalid indicates that maxPlayers, gameSpeed or victoryType is out of range.
	ErrServerSettingsInvalid = 2103

	// ErrNotHost indicates that a host-only action was attempted by another user.
	ErrNotHost = 2104

	// ErrGameAlreadyStarted indicates that the server is already in progress.
	ErrGameAlreadyStarted = 2105

	// ErrNoPlayers indicates that the server has no human-owned nations.
	ErrNoPlayers = 2106

	// ErrNotAllReady indicates that at least one human owner has not toggled ready.
	ErrNotAllReady = 2107

	// ErrNationExists indicates that the user already owns a nation in this server.
	ErrNationExists = 2201

	// ErrInviteInvalid indicates that an invite token is malformed, expired or of the wrong type.
	ErrInviteInvalid = 2301

	// ErrMessageContentTooLong indicates that a chat message exceeded the maximum length.
	ErrMessageContentTooLong = 2401

	// ErrMessageTypeInvalid indicates that a chat message type is neither "message" nor "emoji".
	ErrMessageTypeInvalid = 2402

	// ErrInvalidCursor indicates that the chat "since" cursor could not be parsed.
	ErrInvalidCursor = 2403

	// ErrFileInvalid indicates that an upload request names an unsupported file.
	ErrFileInvalid = 2501

	// ErrFileSizeTooLarge indicates that an upload exceeds the size limit.
	ErrFileSizeTooLarge = 2502
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrUnauthorized indicates a missing, malformed or expired bearer token.
	ErrUnauthorized = 3001

	// ErrEmailInUse indicates that registration used an email that already exists.
	ErrEmailInUse = 3002

	// ErrInvalidCredentials indicates a login with an unknown email or a wrong password.
	ErrInvalidCredentials = 3003

	// ErrUserNotFound indicates that the authenticated account no longer exists.
	ErrUserNotFound = 3004
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrFileStorageFailed indicates that object storage is unavailable or rejected the request.
	ErrFileStorageFailed = 5001
)

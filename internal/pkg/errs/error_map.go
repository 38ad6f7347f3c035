package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
// Codes without an explicit Status are treated as 400 Bad Request by NewError.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Malformed JSON body."},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrMissingFields:        {Code: ErrMissingFields, Message: "Missing required fields: %s."},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Server, Nation and Lobby Errors
	ErrServerNotFound:        {Code: ErrServerNotFound, Message: "Server not found.", Status: http.StatusNotFound},
	ErrServerNameRequired:    {Code: ErrServerNameRequired, Message: "Missing server name."},
	ErrServerSettingsInvalid: {Code: ErrServerSettingsInvalid, Message: "Invalid server settings: %s."},
	ErrNotHost:               {Code: ErrNotHost, Message: "Only the host can do that.", Status: http.StatusForbidden},
	ErrGameAlreadyStarted:    {Code: ErrGameAlreadyStarted, Message: "Game already started.", Status: http.StatusConflict},
	ErrNoPlayers:             {Code: ErrNoPlayers, Message: "No players."},
	ErrNotAllReady:           {Code: ErrNotAllReady, Message: "Not all players ready."},
	ErrNationExists:          {Code: ErrNationExists, Message: "Nation already exists.", Status: http.StatusConflict},
	ErrInviteInvalid:         {Code: ErrInviteInvalid, Message: "Invalid token."},
	ErrMessageContentTooLong: {Code: ErrMessageContentTooLong, Message: "Message is too long."},
	ErrMessageTypeInvalid:    {Code: ErrMessageTypeInvalid, Message: "Invalid message type."},
	ErrInvalidCursor:         {Code: ErrInvalidCursor, Message: "Invalid lastMessageTime."},
	ErrFileInvalid:           {Code: ErrFileInvalid, Message: "Unsupported file."},
	ErrFileSizeTooLarge:      {Code: ErrFileSizeTooLarge, Message: "File is too large."},

	// 3xxx: User, Session, and Security Errors
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Unauthorized.", Status: http.StatusUnauthorized},
	ErrEmailInUse:         {Code: ErrEmailInUse, Message: "Email already in use.", Status: http.StatusConflict},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Invalid email or password.", Status: http.StatusUnauthorized},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Account not found.", Status: http.StatusNotFound},

	// 5xxx: Internal System Errors
	ErrUnknown:           {Code: ErrUnknown, Message: "Internal server error.", Status: http.StatusInternalServerError},
	ErrFileStorageFailed: {Code: ErrFileStorageFailed, Message: "File storage is unavailable.", Status: http.StatusInternalServerError},
}

package errors

import "net/http"

var (
	// ErrRemoteUnavailable covers every request against /api/puntos/
	// that could not complete or came back with an error status.
	ErrRemoteUnavailable = New(
		"REMOTE_UNAVAILABLE",
		"Remote puntos API is unavailable",
		http.StatusBadGateway,
	)

	// ErrMalformedListing marks a List response whose body is not an
	// array of points.
	ErrMalformedListing = New(
		"MALFORMED_LISTING",
		"Remote puntos API returned a non-list body",
		http.StatusBadGateway,
	)

	// ErrWriteRejected surfaces a create/update/delete the remote
	// refused. Validation lives server side, we only relay it.
	ErrWriteRejected = New(
		"WRITE_REJECTED",
		"Remote puntos API rejected the write",
		http.StatusUnprocessableEntity,
	)

	ErrPuntoNotFound = New(
		"PUNTO_NOT_FOUND",
		"Punto not found in the loaded collection",
		http.StatusNotFound,
	)

	ErrSessionClosed = New(
		"SESSION_CLOSED",
		"No edit session is open",
		http.StatusConflict,
	)

	ErrSessionBusy = New(
		"SESSION_BUSY",
		"An edit session is already open",
		http.StatusConflict,
	)

	ErrWriteInFlight = New(
		"WRITE_IN_FLIGHT",
		"A write from this session is still outstanding",
		http.StatusConflict,
	)

	ErrDraftNotPersisted = New(
		"DRAFT_NOT_PERSISTED",
		"Draft has no identity yet, nothing to delete",
		http.StatusConflict,
	)

	ErrNoPendingDelete = New(
		"NO_PENDING_DELETE",
		"No delete confirmation is pending",
		http.StatusConflict,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

package main

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// Route constants
const (
	RouteHome         = "/"
	RouteHealthz      = "/healthz"
	RouteCatalog      = "/catalog"
	RouteGame         = "/game"
	RouteState        = "/state"
	RouteCategory     = "/category"
	RouteStart        = "/start"
	RouteCorrect      = "/correct"
	RouteWrong        = "/wrong"
	RouteDrop         = "/drop"
	RouteAnswer       = "/answer"
	RouteContinue     = "/continue"
	RoutePowerUp      = "/powerup"
	RouteHideFeedback = "/feedback/hide"
	RouteReset        = "/reset"
)

// Error message constants
const (
	ErrorBadRequest     = "Malformed request body."
	ErrorNotAQuestion   = "Item is not a question."
	ErrorUnknownItem    = "Unknown item."
	ErrorSessionFailure = "Could not open a game session."
	ErrorRateLimited    = "Too many requests. Please slow down."
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)

type contextKey string

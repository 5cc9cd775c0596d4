package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"kalimat/internal/session"
)

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || len(sessionID) < 10 {
		sessionID = app.issueSessionCookie(c)
		log.Info().Str("session_id", sessionID).Str("request_id", requestID(c)).Msg("created new session")
	}
	return sessionID
}

// issueSessionCookie sets a fresh session cookie and returns its ID.
func (app *App) issueSessionCookie(c *gin.Context) string {
	sessionID := uuid.NewString()
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", app.IsProduction, true)
	return sessionID
}

// gameSession returns the game session bound to the request's cookie.
func (app *App) gameSession(c *gin.Context) (*session.Session, error) {
	sessionID := app.getOrCreateSession(c)
	sess, _, err := app.Sessions.GetOrCreate(sessionID)
	return sess, err
}

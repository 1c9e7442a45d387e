package handlers

import "github.com/gin-gonic/gin"

// SessionStore hands correlation identifiers and flash messages between
// requests of one browser session. Implemented by utils.RedisSessionStore.
type SessionStore interface {
	SetPendingAppointment(c *gin.Context, id string) error
	PendingAppointment(c *gin.Context) (string, bool)
	SetCompletedAppointment(c *gin.Context, id string) error
	TakeCompletedAppointment(c *gin.Context) (string, bool)
	SetFlash(c *gin.Context, message string) error
	TakeFlash(c *gin.Context) (string, bool)
}

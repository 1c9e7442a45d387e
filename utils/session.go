// File: utils/session.go
package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"clinicbook/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	sessionCookie = "clinicbook_session"
	sessionTTL    = 30 * time.Minute

	keyPending   = "pending_appointment"
	keyCompleted = "completed_appointment"
	keyFlash     = "flash"
)

// SessionClient is the Redis client backing browser sessions.
var SessionClient *redis.Client

// InitSessionStore initializes the Redis client used for session state.
func InitSessionStore() {
	SessionClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SessionClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Sessions): %v", err)
	}
}

// GetSessionClient returns the Redis client for session state.
func GetSessionClient() *redis.Client {
	if SessionClient == nil {
		InitSessionStore()
	}
	return SessionClient
}

// RedisSessionStore hands correlation identifiers (pending and completed
// appointment IDs) and flash messages between requests of one browser
// session. The session is identified by a cookie; all values expire with
// the session TTL. Two tabs share one cookie and can overwrite each other's
// markers.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a session store on the shared session client.
func NewRedisSessionStore() *RedisSessionStore {
	return &RedisSessionStore{client: GetSessionClient()}
}

// sessionID returns the caller's session ID, assigning a fresh cookie when
// none is present.
func (s *RedisSessionStore) sessionID(c *gin.Context) string {
	if sid, err := c.Cookie(sessionCookie); err == nil && sid != "" {
		return sid
	}
	sid := uuid.New().String()
	c.SetCookie(sessionCookie, sid, int(sessionTTL.Seconds()), "/", "", false, true)
	return sid
}

func (s *RedisSessionStore) key(c *gin.Context, field string) string {
	return fmt.Sprintf("session:%s:%s", s.sessionID(c), field)
}

func (s *RedisSessionStore) set(c *gin.Context, field, value string) error {
	if err := s.client.Set(c.Request.Context(), s.key(c, field), value, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store session value %s: %w", field, err)
	}
	return nil
}

// get reads a session value without removing it.
func (s *RedisSessionStore) get(c *gin.Context, field string) (string, bool) {
	val, err := s.client.Get(c.Request.Context(), s.key(c, field)).Result()
	if err != nil || val == "" {
		return "", false
	}
	return val, true
}

// take reads a session value and removes it.
func (s *RedisSessionStore) take(c *gin.Context, field string) (string, bool) {
	val, ok := s.get(c, field)
	if !ok {
		return "", false
	}
	s.client.Del(c.Request.Context(), s.key(c, field))
	return val, true
}

// SetPendingAppointment remembers the appointment awaiting payment.
func (s *RedisSessionStore) SetPendingAppointment(c *gin.Context, id string) error {
	return s.set(c, keyPending, id)
}

// PendingAppointment returns the appointment awaiting payment, if any. The
// marker stays in place for the duration of the payment step.
func (s *RedisSessionStore) PendingAppointment(c *gin.Context) (string, bool) {
	return s.get(c, keyPending)
}

// SetCompletedAppointment remembers a booked-and-paid appointment for the
// confirmation page.
func (s *RedisSessionStore) SetCompletedAppointment(c *gin.Context, id string) error {
	return s.set(c, keyCompleted, id)
}

// TakeCompletedAppointment pops the completed appointment marker; the
// confirmation page consumes it exactly once.
func (s *RedisSessionStore) TakeCompletedAppointment(c *gin.Context) (string, bool) {
	return s.take(c, keyCompleted)
}

// SetFlash stores a one-shot message to show after a redirect.
func (s *RedisSessionStore) SetFlash(c *gin.Context, message string) error {
	return s.set(c, keyFlash, message)
}

// TakeFlash pops the stored flash message, if any.
func (s *RedisSessionStore) TakeFlash(c *gin.Context) (string, bool) {
	return s.take(c, keyFlash)
}

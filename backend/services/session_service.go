package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/raidledger/raidledger/backend/config"
	"github.com/raidledger/raidledger/backend/models"
)

const DefaultSessionCookieName = "raidledger_session"

var (
	ErrNoSession      = errors.New("no session cookie found")
	ErrSessionExpired = errors.New("session expired")
)

// SessionService handles user session management
type SessionService struct {
	config *config.WebAppConfig
}

// NewSessionService creates a new session service
func NewSessionService(cfg *config.WebAppConfig) *SessionService {
	return &SessionService{
		config: cfg,
	}
}

func (s *SessionService) cookieName() string {
	if name := s.config.Config.Web.CookieName; name != "" {
		return name
	}
	return DefaultSessionCookieName
}

// CreateSession signs a session for the user and sets the session cookie
func (s *SessionService) CreateSession(c *fiber.Ctx, userID, username string) (*models.UserSession, error) {
	ttl := s.config.SessionTTL()
	userSession := &models.UserSession{
		UserID:    userID,
		Username:  username,
		ExpiresAt: time.Now().Add(ttl),
	}

	sessionData, err := json.Marshal(userSession)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	signedSession, err := s.signData(sessionData)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     s.cookieName(),
		Value:    signedSession,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		Secure:   s.config.SecureCookies(),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	slog.Info("Session created for user",
		slog.String("type", "http"),
		slog.String("user_id", userID),
		slog.String("username", username))

	return userSession, nil
}

// GetSession retrieves and validates the user session from the request
func (s *SessionService) GetSession(c *fiber.Ctx) (*models.UserSession, error) {
	sessionCookie := c.Cookies(s.cookieName())
	if sessionCookie == "" {
		return nil, ErrNoSession
	}

	sessionData, err := s.verifyAndDecodeData(sessionCookie)
	if err != nil {
		return nil, fmt.Errorf("invalid session signature: %w", err)
	}

	var userSession models.UserSession
	if err := json.Unmarshal(sessionData, &userSession); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if time.Now().After(userSession.ExpiresAt) {
		s.DestroySession(c)
		return nil, ErrSessionExpired
	}

	return &userSession, nil
}

// DestroySession removes the session cookie
func (s *SessionService) DestroySession(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.cookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   s.config.SecureCookies(),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// signData signs data using HMAC-SHA256
func (s *SessionService) signData(data []byte) (string, error) {
	key := s.config.Config.Web.SessionSecret
	if key == "" {
		return "", fmt.Errorf("session secret not configured")
	}

	h := hmac.New(sha256.New, []byte(key))
	h.Write(data)
	signature := h.Sum(nil)

	combined := append(data, signature...)
	return base64.URLEncoding.EncodeToString(combined), nil
}

// verifyAndDecodeData verifies the signature and returns the original data
func (s *SessionService) verifyAndDecodeData(encodedData string) ([]byte, error) {
	key := s.config.Config.Web.SessionSecret
	if key == "" {
		return nil, fmt.Errorf("session secret not configured")
	}

	combined, err := base64.URLEncoding.DecodeString(encodedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}

	// signature is the trailing sha256.Size bytes
	if len(combined) < sha256.Size {
		return nil, fmt.Errorf("invalid data length")
	}

	data := combined[:len(combined)-sha256.Size]
	receivedSignature := combined[len(combined)-sha256.Size:]

	h := hmac.New(sha256.New, []byte(key))
	h.Write(data)
	if !hmac.Equal(receivedSignature, h.Sum(nil)) {
		return nil, fmt.Errorf("signature verification failed")
	}

	return data, nil
}

// Package tokens issues and verifies bearer tokens. Every token is an
// HS256 JWT signed with the master key and carries a session id; the
// session is registered in the storage backend with a TTL, so a token is
// only valid while its session exists. Deleting the session revokes the
// token.
package tokens

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/takoapp/tako/internal/store"
	"github.com/takoapp/tako/params"
)

const (
	TokenTypeRecord = "record"
	TokenTypeAdmin  = "admin"
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

type Session struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Collection string    `json:"collection,omitempty"`
	RecordID   uint      `json:"recordId,omitempty"`
	AdminID    uint      `json:"adminId,omitempty"`
	CreateTime time.Time `json:"createTime"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

type TokenClaims struct {
	Type      string `json:"type"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type Issuer struct {
	masterKey         string
	sessionStore      store.Store[Session]
	recordTokenMaxAge time.Duration
	adminTokenMaxAge  time.Duration
}

func NewIssuer(masterKey string, storage store.Storage, recordTokenMaxAge, adminTokenMaxAge time.Duration) *Issuer {
	return &Issuer{
		masterKey:         masterKey,
		sessionStore:      store.New[Session](storage, params.SessionKeyPrefix),
		recordTokenMaxAge: recordTokenMaxAge,
		adminTokenMaxAge:  adminTokenMaxAge,
	}
}

// IssueRecordToken creates a fresh session for the given record and signs
// a token for it. Each call produces an independent session.
func (i *Issuer) IssueRecordToken(ctx context.Context, collection string, recordID uint) (*Session, string, error) {
	session := Session{
		ID:         uuid.NewString(),
		Type:       TokenTypeRecord,
		Collection: collection,
		RecordID:   recordID,
		CreateTime: time.Now(),
		ExpiresAt:  time.Now().Add(i.recordTokenMaxAge),
	}
	token, err := i.issue(ctx, &session, recordID)
	if err != nil {
		return nil, "", err
	}
	return &session, token, nil
}

func (i *Issuer) IssueAdminToken(ctx context.Context, adminID uint) (*Session, string, error) {
	session := Session{
		ID:         uuid.NewString(),
		Type:       TokenTypeAdmin,
		AdminID:    adminID,
		CreateTime: time.Now(),
		ExpiresAt:  time.Now().Add(i.adminTokenMaxAge),
	}
	token, err := i.issue(ctx, &session, adminID)
	if err != nil {
		return nil, "", err
	}
	return &session, token, nil
}

func (i *Issuer) issue(ctx context.Context, session *Session, subject uint) (string, error) {
	claims := TokenClaims{
		Type:      session.Type,
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(subject), 10),
			IssuedAt:  jwt.NewNumericDate(session.CreateTime),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(i.masterKey))
	if err != nil {
		return "", err
	}
	if err := i.sessionStore.Set(ctx, session.ID, *session, time.Until(session.ExpiresAt)); err != nil {
		return "", fmt.Errorf("register session: %w", err)
	}
	return signedToken, nil
}

// Verify parses the token, checks the signature and the expected token
// type, and confirms the session is still registered.
func (i *Issuer) Verify(ctx context.Context, tokenStr string, wantType string) (*Session, error) {
	var claims TokenClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(i.masterKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.Type != wantType || claims.SessionID == "" {
		return nil, ErrTokenInvalid
	}

	session, err := i.sessionStore.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, ErrTokenExpired
	}
	return &session, nil
}

// Revoke removes a session, invalidating its token.
func (i *Issuer) Revoke(ctx context.Context, sessionID string) error {
	return i.sessionStore.Delete(ctx, sessionID)
}

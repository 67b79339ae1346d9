package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	msgUnauthenticated = "требуется аутентификация"
)

type ctxKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth определяет вызывающего пользователя.
// С заданным secret принимается только Bearer JWT (HS256, claims sub и role).
// Без secret личность берётся из заголовков X-User-ID / X-User-Role, которые проставляет API gateway.
type Auth struct {
	secret []byte
	log    Logger
}

// NewAuth создает middleware аутентификации. Пустой secret отключает JWT и включает заголовки gateway.
func NewAuth(secret string, log Logger) *Auth {
	return &Auth{secret: []byte(secret), log: log}
}

// Required пропускает запрос дальше только с установленной личностью
func (a *Auth) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.identify(r)
		if err != nil {
			a.log.Warn("Auth: %s %s rejected: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgUnauthenticated)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func (a *Auth) identify(r *http.Request) (domain.Identity, error) {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		return a.parseBearer(header)
	}

	if len(a.secret) > 0 {
		return domain.Identity{}, errors.New("bearer token required")
	}

	rawID := strings.TrimSpace(r.Header.Get(headerUserID))
	if rawID == "" {
		return domain.Identity{}, errors.New("no credentials")
	}

	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Identity{}, fmt.Errorf("invalid %s header", headerUserID)
	}

	return domain.Identity{UserID: userID, Role: domain.ParseRole(r.Header.Get(headerUserRole))}, nil
}

func (a *Auth) parseBearer(header string) (domain.Identity, error) {
	if len(a.secret) == 0 {
		return domain.Identity{}, errors.New("bearer tokens are not accepted")
	}

	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return domain.Identity{}, errors.New("unsupported authorization scheme")
	}

	token, err := jwt.Parse(strings.TrimSpace(header[7:]), func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return domain.Identity{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Identity{}, errors.New("invalid claims")
	}

	userID, err := subjectID(claims["sub"])
	if err != nil {
		return domain.Identity{}, err
	}

	role, _ := claims["role"].(string)
	return domain.Identity{UserID: userID, Role: domain.ParseRole(role)}, nil
}

// subjectID принимает sub как число или строку
func subjectID(sub interface{}) (int64, error) {
	var id int64
	switch v := sub.(type) {
	case float64:
		id = int64(v)
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid sub claim: %w", err)
		}
		id = parsed
	default:
		return 0, errors.New("missing sub claim")
	}
	if id <= 0 {
		return 0, errors.New("invalid sub claim")
	}
	return id, nil
}

// IssueToken подписывает токен для пользователя (используется в тестах и локальной разработке)
func IssueToken(secret string, identity domain.Identity, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(identity.UserID, 10),
		"role": string(identity.Role),
		"exp":  time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// WithIdentity кладёт личность пользователя в контекст
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, identity)
}

// GetIdentity возвращает личность пользователя из контекста
func GetIdentity(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(ctxKey{}).(domain.Identity)
	return identity, ok
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	identity, ok := GetIdentity(ctx)
	return identity.UserID, ok
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tadoku-reader/storygen/internal/config"
	"github.com/tadoku-reader/storygen/internal/model"
	"github.com/tadoku-reader/storygen/internal/webutil"
)

// authTokenHeader は旧クライアントが使うトークンヘッダーです
const authTokenHeader = "x-auth-token"

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

// JWTAuthMiddleware は Bearer トークン (または x-auth-token) を検証し、ユーザーIDをコンテキストに設定します
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			tokenString, err := extractToken(r)
			if err != nil {
				logger.Warn("JWT auth failed", "error", err)
				webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "No token, authorization denied", "", model.ErrUnauthorized))
				return
			}

			claims := &model.JWTCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errUnexpectedSigningMethod
				}
				return []byte(cfg.JWT.SecretKey), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("JWT auth failed: invalid token", "error", err)
				webutil.HandleError(w, logger, model.NewAppError("INVALID_TOKEN", "Token is not valid", "", model.ErrUnauthorized))
				return
			}

			userID, err := userIDFromClaims(claims)
			if err != nil {
				logger.Warn("JWT auth failed: no usable user id", "error", err)
				webutil.HandleError(w, logger, model.NewAppError("INVALID_TOKEN", "Token is not valid", "", model.ErrUnauthorized))
				return
			}

			ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
			ctx = WithLogger(ctx, logger.With("user_id", userID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
			return "", errors.New("invalid Authorization header format")
		}
		return strings.TrimSpace(token), nil
	}
	if token := r.Header.Get(authTokenHeader); token != "" {
		return token, nil
	}
	return "", errors.New("token missing")
}

// userIDFromClaims は sub を優先し、なければ旧形式の user.id を使います
func userIDFromClaims(claims *model.JWTCustomClaims) (uuid.UUID, error) {
	subject := claims.Subject
	if subject == "" && claims.User != nil {
		subject = claims.User.ID
	}
	if subject == "" {
		return uuid.Nil, errors.New("subject claim missing")
	}
	return uuid.Parse(subject)
}

// GetUserIDFromContext は認証ミドルウェアが設定したユーザーIDを返します
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.UserIDKey).(uuid.UUID)
	if !ok || value == uuid.Nil {
		return uuid.Nil, model.NewAppError("UNAUTHORIZED", "No authenticated user in request context", "", model.ErrUnauthorized)
	}
	return value, nil
}

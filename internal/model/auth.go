package model

import (
	"github.com/golang-jwt/jwt/v5"
)

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
)

// JWTCustomClaims は認証サービスが発行するトークンのクレームです。
// 旧形式のトークンは {"user": {"id": "..."}} でユーザーIDを運ぶ。
type JWTCustomClaims struct {
	User *struct {
		ID string `json:"id"`
	} `json:"user,omitempty"`
	jwt.RegisteredClaims
}

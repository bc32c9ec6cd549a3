// Package jwt 负责签发与校验访问令牌、刷新令牌
// Manager 通过构造函数注入，不再依赖包级全局配置
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	SubjectAccess  = "access_token"
	SubjectRefresh = "refresh_token"

	issuer = "pet_adoption"
)

// Claims 自定义 JWT 声明
// 身份只从验签后的声明中取，前端可读的 user-data Cookie 仅用于展示
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	TokenID   string `json:"token_id"`
	jwt.RegisteredClaims
}

// Principal 签发访问令牌所需的用户信息
type Principal struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
}

// Manager JWT 签发与校验
type Manager struct {
	secret             []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
	now                func() time.Time
}

// NewManager accessExpiryMinutes / refreshExpiryHours 与配置文件单位一致
func NewManager(secret string, accessExpiryMinutes, refreshExpiryHours int) *Manager {
	return &Manager{
		secret:             []byte(secret),
		accessTokenExpiry:  time.Duration(accessExpiryMinutes) * time.Minute,
		refreshTokenExpiry: time.Duration(refreshExpiryHours) * time.Hour,
		now:                time.Now,
	}
}

// AccessTokenExpiry Access Token 有效期
func (m *Manager) AccessTokenExpiry() time.Duration { return m.accessTokenExpiry }

// RefreshTokenExpiry Refresh Token 有效期
func (m *Manager) RefreshTokenExpiry() time.Duration { return m.refreshTokenExpiry }

// GenerateAccessToken 生成 Access Token，返回 token 与其 jti（用于登出吊销）
func (m *Manager) GenerateAccessToken(p Principal) (tokenString, tokenID string, err error) {
	tokenID = uuid.NewString()
	claims := Claims{
		UserID:           p.UserID,
		Email:            p.Email,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		TokenID:          tokenID,
		RegisteredClaims: m.registered(SubjectAccess, tokenID, m.accessTokenExpiry),
	}
	tokenString, err = m.sign(claims)
	return
}

// GenerateRefreshToken 生成 Refresh Token
// 返回的 tokenID 存入 Redis，实现单点互踢
func (m *Manager) GenerateRefreshToken(userID string) (tokenString, tokenID string, err error) {
	tokenID = uuid.NewString()
	claims := Claims{
		UserID:           userID,
		TokenID:          tokenID,
		RegisteredClaims: m.registered(SubjectRefresh, tokenID, m.refreshTokenExpiry),
	}
	tokenString, err = m.sign(claims)
	return
}

// ParseToken 解析并验证 Token（签名、算法、过期时间）
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	if len(m.secret) == 0 {
		return nil, ErrEmptySecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}

// ParseTokenWithSubject 解析并要求 Subject 匹配，防止用 Refresh Token 访问接口
func (m *Manager) ParseTokenWithSubject(tokenString, subject string) (*Claims, error) {
	claims, err := m.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Subject != subject {
		return nil, ErrWrongSubject
	}
	if claims.UserID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

var (
	// ErrWrongSubject Token 类型不匹配
	ErrWrongSubject = errors.New("token subject mismatch")
	// ErrEmptySecret 空密钥签出的令牌任何人都能伪造，签发与校验一律拒绝
	ErrEmptySecret = errors.New("jwt secret is empty")
)

// Remaining 令牌剩余有效期，已过期返回 0
func (m *Manager) Remaining(claims *Claims) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}
	d := claims.ExpiresAt.Time.Sub(m.now())
	if d < 0 {
		return 0
	}
	return d
}

func (m *Manager) registered(subject, tokenID string, ttl time.Duration) jwt.RegisteredClaims {
	now := m.now()
	return jwt.RegisteredClaims{
		ID:        tokenID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    issuer,
		Subject:   subject,
	}
}

func (m *Manager) sign(claims Claims) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrEmptySecret
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

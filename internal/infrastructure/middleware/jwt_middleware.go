package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"pet_adoption_server/pkg/constants"
	"pet_adoption_server/pkg/errorx"
	"pet_adoption_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenVerifier 校验 Access Token（签名、过期、类型、是否已登出）
// 由 AuthService 实现
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (*jwt.Claims, error)
}

// ExtractToken 依次从 Authorization: Bearer 与 auth-token Cookie 读取令牌
// user-data Cookie 只供前端展示，这里不会读取
func ExtractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(constants.AUTH_COOKIE); err == nil {
		return cookie
	}
	return ""
}

// JWTAuth JWT 认证中间件
// 验证 Access Token 并将用户信息存入上下文
func JWTAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			abortUnauthorized(c, "authentication required")
			return
		}
		if !authenticate(c, verifier, token) {
			abortUnauthorized(c, "invalid or expired token")
			return
		}
		c.Next()
	}
}

// OptionalAuth 令牌有效时写入用户信息，无效或缺失时按匿名继续
func OptionalAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := ExtractToken(c); token != "" {
			authenticate(c, verifier, token)
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, verifier TokenVerifier, token string) bool {
	claims, err := verifier.VerifyAccessToken(c.Request.Context(), token)
	if err != nil {
		zap.L().Debug("access token rejected", zap.Error(err))
		return false
	}
	uid, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		zap.L().Warn("access token carries malformed user id", zap.String("user_id", claims.UserID))
		return false
	}
	c.Set(constants.CTX_USER_ID, uid)
	c.Set(constants.CTX_CLAIMS, claims)
	return true
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code": errorx.CodeUnauthorized,
		"msg":  msg,
	})
}

// CurrentUserID 取鉴权中间件写入的用户 ID
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(constants.CTX_USER_ID)
	if !ok {
		return 0, false
	}
	uid, ok := v.(int64)
	return uid, ok
}

// CurrentClaims 取鉴权中间件写入的令牌声明
func CurrentClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(constants.CTX_CLAIMS)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}

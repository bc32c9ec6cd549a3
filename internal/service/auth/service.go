// Package auth 提供认证相关的业务逻辑
// 处理 Token 校验、刷新与登出吊销
package auth

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"pet_adoption_server/internal/dao/database/repository"
	myredis "pet_adoption_server/internal/dao/redis"
	"pet_adoption_server/internal/dto/respond"
	"pet_adoption_server/pkg/constants"
	"pet_adoption_server/pkg/errorx"
	"pet_adoption_server/pkg/util/jwt"
)

// Service 认证服务实现
type Service struct {
	repos  *repository.Repositories
	cache  myredis.CacheService // 缓存服务（依赖倒置）
	tokens *jwt.Manager
}

// NewAuthService 创建认证服务实例
func NewAuthService(repos *repository.Repositories, cache myredis.CacheService, tokens *jwt.Manager) *Service {
	return &Service{repos: repos, cache: cache, tokens: tokens}
}

// VerifyAccessToken 校验签名、过期、类型，并拒绝已登出的令牌
// 缓存不可用时拒绝请求，避免已吊销的令牌被放行
func (s *Service) VerifyAccessToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.tokens.ParseTokenWithSubject(token, jwt.SubjectAccess)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeUnauthorized, "invalid or expired token")
	}
	revoked, err := s.cache.Exists(ctx, constants.REVOKED_TOKEN_PREFIX+claims.ID)
	if err != nil {
		zap.L().Error("check revoked token", zap.Error(err))
		return nil, errorx.Wrap(err, errorx.CodeUnauthorized, "token verification unavailable")
	}
	if revoked {
		return nil, errorx.New(errorx.CodeUnauthorized, "token has been revoked")
	}
	return claims, nil
}

// ValidateTokenID 验证用户的 Refresh Token ID 是否仍为最新
// 用于实现单点登录互踢机制
func (s *Service) ValidateTokenID(ctx context.Context, userID, tokenID string) (bool, error) {
	validTokenID, err := s.cache.Get(ctx, constants.USER_TOKEN_PREFIX+userID)
	if err != nil {
		return false, err
	}
	if validTokenID == "" {
		return false, nil
	}
	return tokenID == validTokenID, nil
}

// Refresh 用 Refresh Token 换新的 Access Token
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*respond.RefreshRespond, error) {
	if refreshToken == "" {
		return nil, errorx.New(errorx.CodeUnauthorized, "refresh token required")
	}
	claims, err := s.tokens.ParseTokenWithSubject(refreshToken, jwt.SubjectRefresh)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeUnauthorized, "invalid or expired refresh token")
	}
	ok, err := s.ValidateTokenID(ctx, claims.UserID, claims.ID)
	if err != nil {
		zap.L().Error("validate refresh token id", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !ok {
		return nil, errorx.New(errorx.CodeUnauthorized, "refresh token has been revoked")
	}

	uid, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeUnauthorized, "invalid refresh token")
	}
	user, err := s.repos.User.FindById(uid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUnauthorized, "user no longer exists")
		}
		zap.L().Error("find user", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	accessToken, _, err := s.tokens.GenerateAccessToken(jwt.Principal{
		UserID:    claims.UserID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
	if err != nil {
		zap.L().Error("generate access token", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.RefreshRespond{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.tokens.AccessTokenExpiry().Seconds()),
	}, nil
}

// Logout 吊销 Access Token 并删除 Refresh Token 登记
// 令牌缺失或无效时什么也不做，调用方照常清理 Cookie
func (s *Service) Logout(ctx context.Context, accessToken, refreshToken string) {
	var userID string
	if claims, err := s.tokens.ParseTokenWithSubject(accessToken, jwt.SubjectAccess); err == nil {
		userID = claims.UserID
		if ttl := s.tokens.Remaining(claims); ttl > 0 {
			if err := s.cache.Set(ctx, constants.REVOKED_TOKEN_PREFIX+claims.ID, claims.UserID, ttl); err != nil {
				zap.L().Error("revoke access token", zap.Error(err))
			}
		}
	}
	if userID == "" {
		if claims, err := s.tokens.ParseTokenWithSubject(refreshToken, jwt.SubjectRefresh); err == nil {
			userID = claims.UserID
		}
	}
	if userID == "" {
		return
	}
	if err := s.cache.Delete(ctx, constants.USER_TOKEN_PREFIX+userID); err != nil {
		zap.L().Error("delete refresh token id", zap.Error(err))
	}
	zap.L().Info("user logged out", zap.String("user_id", userID))
}

// Package handler 提供 HTTP 请求处理器
// 本文件处理认证相关的 API 请求
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"pet_adoption_server/internal/config"
	"pet_adoption_server/internal/dto/request"
	"pet_adoption_server/internal/dto/respond"
	"pet_adoption_server/internal/infrastructure/middleware"
	"pet_adoption_server/internal/service"
	"pet_adoption_server/pkg/constants"
	"pet_adoption_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler 注册、登录、刷新与登出
// 登录态通过 Cookie 下发，同时在响应体中返回令牌供非浏览器客户端使用
type AuthHandler struct {
	userSvc    service.UserService
	authSvc    service.AuthService
	cookies    config.CookieConfig
	refreshTTL time.Duration
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(userSvc service.UserService, authSvc service.AuthService, cookies config.CookieConfig, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{userSvc: userSvc, authSvc: authSvc, cookies: cookies, refreshTTL: refreshTTL}
}

// Register 用户注册
// POST /api/auth/register
// 请求体: request.RegisterRequest
// 响应: respond.RegisterRespond
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Register(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleCreated(c, data)
}

// Login 邮箱密码登录
// POST /api/auth/login
// 请求体: request.LoginRequest
// 响应: respond.LoginRespond，并写入 auth-token / refresh-token / user-data 三个 Cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Login(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	h.setAccessCookie(c, data.AccessToken, int(data.ExpiresIn))
	h.setCookie(c, constants.REFRESH_COOKIE, data.RefreshToken, constants.REFRESH_COOKIE_PATH, int(h.refreshTTL.Seconds()), true)
	h.setUserDataCookie(c, data.User, int(h.refreshTTL.Seconds()))
	HandleSuccess(c, data)
}

// Refresh 刷新 Access Token
// POST /api/auth/refresh
// 请求体: request.RefreshRequest（可选，缺省时读取 refresh-token Cookie）
// 响应: respond.RefreshRespond
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req request.RefreshRequest
	// 请求体可以为空
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleParamError(c, err)
			return
		}
	}
	token := req.RefreshToken
	if token == "" {
		token, _ = c.Cookie(constants.REFRESH_COOKIE)
	}
	if token == "" {
		HandleError(c, errorx.New(errorx.CodeUnauthorized, "refresh token required"))
		return
	}

	data, err := h.authSvc.Refresh(c.Request.Context(), token)
	if err != nil {
		HandleError(c, err)
		return
	}
	h.setAccessCookie(c, data.AccessToken, int(data.ExpiresIn))
	HandleSuccess(c, data)
}

// Logout 登出
// POST /api/auth/logout
// 携带有效令牌时吊销，无论如何都清除 Cookie 并返回成功
func (h *AuthHandler) Logout(c *gin.Context) {
	refresh := ""
	if cookie, err := c.Cookie(constants.REFRESH_COOKIE); err == nil {
		refresh = cookie
	}
	// 令牌无效时 Logout 什么也不做
	h.authSvc.Logout(c.Request.Context(), middleware.ExtractToken(c), refresh)

	h.setCookie(c, constants.AUTH_COOKIE, "", "/", -1, true)
	h.setCookie(c, constants.REFRESH_COOKIE, "", constants.REFRESH_COOKIE_PATH, -1, true)
	h.setCookie(c, constants.USER_DATA_COOKIE, "", "/", -1, false)
	HandleSuccess(c, gin.H{"logged_out": true})
}

func (h *AuthHandler) setAccessCookie(c *gin.Context, token string, maxAge int) {
	h.setCookie(c, constants.AUTH_COOKIE, token, "/", maxAge, true)
}

// user-data 仅供前端展示用户名，服务端从不信任它
func (h *AuthHandler) setUserDataCookie(c *gin.Context, user respond.UserBrief, maxAge int) {
	raw, err := json.Marshal(user)
	if err != nil {
		zap.L().Warn("marshal user-data cookie failed", zap.Error(err))
		return
	}
	h.setCookie(c, constants.USER_DATA_COOKIE, string(raw), "/", maxAge, false)
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value, path string, maxAge int, httpOnly bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, path, h.cookies.Domain, h.cookies.Secure, httpOnly)
}

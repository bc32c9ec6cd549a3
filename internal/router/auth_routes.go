// Package router 提供 HTTP 路由注册
// 本文件定义认证相关的路由
package router

import (
	"pet_adoption_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册认证相关路由（公开）
func (rt *Router) RegisterAuthRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", rt.handlers.Auth.Register)
		authGroup.POST("/login", rt.handlers.Auth.Login)
		// 刷新令牌从请求体或 refresh-token Cookie 读取
		authGroup.POST("/refresh", rt.handlers.Auth.Refresh)
		// 登出不要求令牌有效，有效时顺带吊销
		authGroup.POST("/logout", middleware.OptionalAuth(rt.verifier), rt.handlers.Auth.Logout)
	}
}

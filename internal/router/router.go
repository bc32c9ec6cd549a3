// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"pet_adoption_server/internal/handler"
	"pet_adoption_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// Router 路由管理器，持有 Handler 聚合与令牌校验器
type Router struct {
	handlers *handler.Handlers
	verifier middleware.TokenVerifier
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers, verifier middleware.TokenVerifier) *Router {
	return &Router{handlers: handlers, verifier: verifier}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
// public 组无需登录，private 组统一挂 JWTAuth
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	public := api.Group("")
	private := api.Group("")
	private.Use(middleware.JWTAuth(rt.verifier))

	rt.RegisterAuthRoutes(public)              // 认证路由
	rt.RegisterUserRoutes(private)             // 用户路由
	rt.RegisterPetRoutes(public, private)      // 宠物与下拉数据路由
	rt.RegisterApplicationRoutes(private)      // 领养申请路由
	rt.RegisterFavoriteRoutes(private)         // 收藏路由
	rt.RegisterWebSocketRoutes(r.Group("/ws")) // WebSocket 路由
}

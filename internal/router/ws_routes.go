// Package router 提供 HTTP 路由注册
// 本文件定义 WebSocket 相关的路由
package router

import (
	"pet_adoption_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册 WebSocket 路由（需要认证）
// 浏览器无法给 WebSocket 设置请求头，令牌一般随 auth-token Cookie 到达
// 请求示例: ws://host:port/ws
func (rt *Router) RegisterWebSocketRoutes(rg *gin.RouterGroup) {
	rg.GET("", middleware.JWTAuth(rt.verifier), rt.handlers.Ws.Connect)
}

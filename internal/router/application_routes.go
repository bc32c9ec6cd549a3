// Package router 提供 HTTP 路由注册
// 本文件定义领养申请相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterApplicationRoutes 注册领养申请路由（需要认证）
func (rt *Router) RegisterApplicationRoutes(rg *gin.RouterGroup) {
	appGroup := rg.Group("/applications")
	{
		appGroup.POST("", rt.handlers.Application.Create)            // 提交申请
		appGroup.GET("/mine", rt.handlers.Application.Mine)          // 我提交的
		appGroup.GET("/received", rt.handlers.Application.Received)  // 我收到的
		appGroup.GET("/:id", rt.handlers.Application.Get)            // 单条
		appGroup.PATCH("/:id", rt.handlers.Application.UpdateStatus) // 审批 / 撤回
	}
}

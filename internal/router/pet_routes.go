// Package router 提供 HTTP 路由注册
// 本文件定义宠物与下拉数据相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterPetRoutes 注册宠物相关路由
// 浏览与下拉数据公开，发布、删除与"我的发布"需要认证
func (rt *Router) RegisterPetRoutes(public, private *gin.RouterGroup) {
	public.GET("/pets", rt.handlers.Pet.Search)   // 搜索
	public.GET("/pets/:id", rt.handlers.Pet.Get)  // 详情
	public.GET("/breeds", rt.handlers.Pet.Breeds) // 品种下拉
	public.GET("/cities", rt.handlers.Pet.Cities) // 城市下拉

	private.GET("/pets/mine", rt.handlers.Pet.Mine)     // 我发布的
	private.POST("/pets", rt.handlers.Pet.Create)       // 发布
	private.DELETE("/pets/:id", rt.handlers.Pet.Delete) // 删除
}

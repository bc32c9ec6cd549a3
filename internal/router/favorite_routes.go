package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterFavoriteRoutes 注册收藏路由（需要认证）
func (rt *Router) RegisterFavoriteRoutes(rg *gin.RouterGroup) {
	favGroup := rg.Group("/favorites")
	{
		favGroup.GET("", rt.handlers.Favorite.List)
		favGroup.POST("/:petId", rt.handlers.Favorite.Add)
		favGroup.DELETE("/:petId", rt.handlers.Favorite.Remove)
	}
}

// Package handler 提供 HTTP 请求处理器
// 本文件处理收藏相关的 API 请求
package handler

import (
	"pet_adoption_server/internal/service"

	"github.com/gin-gonic/gin"
)

// FavoriteHandler 收藏请求处理器
type FavoriteHandler struct {
	favSvc service.FavoriteService
}

// NewFavoriteHandler 创建收藏处理器
func NewFavoriteHandler(favSvc service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favSvc: favSvc}
}

// List 我的收藏，按收藏时间倒序
// GET /api/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	userId, ok := currentUser(c)
	if !ok {
		return
	}
	data, err := h.favSvc.List(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Add 收藏宠物，重复收藏返回成功
// POST /api/favorites/:petId
func (h *FavoriteHandler) Add(c *gin.Context) {
	userId, ok := currentUser(c)
	if !ok {
		return
	}
	petId, ok := pathID(c, "petId")
	if !ok {
		return
	}
	data, err := h.favSvc.Add(userId, petId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Remove 取消收藏
// DELETE /api/favorites/:petId
func (h *FavoriteHandler) Remove(c *gin.Context) {
	userId, ok := currentUser(c)
	if !ok {
		return
	}
	petId, ok := pathID(c, "petId")
	if !ok {
		return
	}
	if err := h.favSvc.Remove(userId, petId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"removed": true})
}

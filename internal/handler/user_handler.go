// Package handler 提供 HTTP 请求处理器
// 本文件处理用户相关的 API 请求
package handler

import (
	"pet_adoption_server/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户请求处理器
// 通过构造函数注入 UserService，遵循依赖倒置原则
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Me 当前登录用户的资料与领养偏好
// GET /api/user/me
// 响应: respond.ProfileRespond
func (h *UserHandler) Me(c *gin.Context) {
	userId, ok := currentUser(c)
	if !ok {
		return
	}
	data, err := h.userSvc.GetProfile(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

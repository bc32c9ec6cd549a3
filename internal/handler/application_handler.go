// Package handler 提供 HTTP 请求处理器
// 本文件处理领养申请相关的 API 请求
package handler

import (
	"pet_adoption_server/internal/dto/request"
	"pet_adoption_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ApplicationHandler 领养申请请求处理器
type ApplicationHandler struct {
	appSvc service.ApplicationService
}

// NewApplicationHandler 创建申请处理器
func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

// Create 提交领养申请
// POST /api/applications
// 请求体: request.CreateApplicationRequest
// 响应: 201 respond.CreateApplicationRespond
func (h *ApplicationHandler) Create(c *gin.Context) {
	userId, ok := currentUser(c)
	if !ok {
		return
	}
	var req request.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.appSvc.Create(c.Request.Context(), userId, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleCreated(c, data)
}

// Mine 我提交的申请
// GET /api/applications/mine
func (h *ApplicationHandler) Mine(c *gin.Context) {
	userId, ok := currentUser(c)
	if !ok {
		return
	}
	data, err := h.appSvc.ListMine(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Received 我发布的宠物收到的申请，附带申请人的领养偏好
// GET /api/applications/received
func (h *ApplicationHandler) Received(c *gin.Context) {
	userId, ok := currentUser(c)
	if !ok {
		return
	}
	data, err := h.appSvc.ListReceived(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Get 单条申请
// GET /api/applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	userId, ok := currentUser(c)
	if !ok {
		return
	}
	appId, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.appSvc.Get(appId, userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateStatus 审批或撤回申请
// PATCH /api/applications/:id
// 请求体: request.UpdateApplicationStatusRequest
// 响应: respond.TransitionRespond，撤回后申请记录被删除
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userId, ok := currentUser(c)
	if !ok {
		return
	}
	appId, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.appSvc.Transition(c.Request.Context(), appId, userId, req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

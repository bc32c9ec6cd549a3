// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 连接相关的 API 请求
package handler

import (
	ws "pet_adoption_server/internal/gateway/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WsHandler 站内通知长连接
type WsHandler struct {
	hub      *ws.Hub
	upgrader *websocket.Upgrader
}

// NewWsHandler 创建 WebSocket 处理器
func NewWsHandler(hub *ws.Hub, upgrader *websocket.Upgrader) *WsHandler {
	return &WsHandler{hub: hub, upgrader: upgrader}
}

// Connect 建立通知连接
// GET /ws
// 用户身份只取自 JWT，连接建立后服务端推送申请状态变更事件
func (h *WsHandler) Connect(c *gin.Context) {
	userId, ok := currentUser(c)
	if !ok {
		return
	}
	// 升级失败时 upgrader 已经写过响应
	if err := h.hub.Serve(h.upgrader, c.Writer, c.Request, userId); err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Int64("user_id", userId), zap.Error(err))
	}
}

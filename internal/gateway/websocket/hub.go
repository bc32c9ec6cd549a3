// Package websocket 维护在线连接，按用户 ID 推送申请通知
package websocket

import (
	"sync"

	"go.uber.org/zap"
)

// Hub 在线连接表，同一用户可以有多个连接（多个标签页 / 设备）
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.userId]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.userId] = set
	}
	set[c] = struct{}{}
	zap.L().Info("ws client online", zap.Int64("user_id", c.userId), zap.Int("connections", len(set)))
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	set, ok := h.clients[c.userId]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	c.closeSend()
	if len(set) == 0 {
		delete(h.clients, c.userId)
	}
	zap.L().Info("ws client offline", zap.Int64("user_id", c.userId))
}

// SendToUser 推送到用户的所有连接
// 发送缓冲已满的慢连接直接踢掉，不阻塞调用方
func (h *Hub) SendToUser(userId int64, message []byte) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	delivered := 0
	for c := range h.clients[userId] {
		select {
		case c.send <- message:
			delivered++
		default:
			zap.L().Warn("ws client too slow, dropping", zap.Int64("user_id", userId))
			h.removeLocked(c)
		}
	}
	return delivered
}

// Online 用户当前连接数
func (h *Hub) Online(userId int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userId])
}

// Close 关闭全部连接，用于优雅退出
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, set := range h.clients {
		for c := range set {
			h.removeLocked(c)
		}
	}
}

package websocket

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"pet_adoption_server/pkg/constants"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client 单个 WebSocket 连接
// 只下行推送，上行只处理控制帧
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userId int64
	send   chan []byte
	once   sync.Once
}

func (c *Client) closeSend() {
	c.once.Do(func() { close(c.send) })
}

// NewUpgrader 配置了白名单时校验 Origin，否则放行
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			for _, allowed := range allowedOrigins {
				if allowed == "*" || strings.EqualFold(allowed, origin) || strings.EqualFold(allowed, u.Scheme+"://"+u.Host) {
					return true
				}
			}
			return false
		},
	}
}

// Serve 升级连接并注册到 Hub，读写各起一个 goroutine
func (h *Hub) Serve(upgrader *websocket.Upgrader, w http.ResponseWriter, r *http.Request, userId int64) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	client := &Client{
		hub:    h,
		conn:   conn,
		userId: userId,
		send:   make(chan []byte, constants.CHANNEL_SIZE),
	}
	h.register(client)
	go client.writePump()
	go client.readPump()
	return nil
}

// readPump 读到错误（客户端断开）时注销
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Warn("ws read error", zap.Int64("user_id", c.userId), zap.Error(err))
			}
			return
		}
	}
}

// writePump send 关闭后发送 Close 帧并退出
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				zap.L().Warn("ws write error", zap.Int64("user_id", c.userId), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

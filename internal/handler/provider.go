// Package handler 提供 HTTP 请求处理器
// 本文件定义 Handler 聚合结构和构造函数
// 遵循依赖倒置原则，通过构造函数注入 Service 依赖
package handler

import (
	"time"

	"pet_adoption_server/internal/config"
	ws "pet_adoption_server/internal/gateway/websocket"
	"pet_adoption_server/internal/service"

	"github.com/gorilla/websocket"
)

// Handlers 聚合所有 Handler 实例
// 作为依赖注入的入口，Router 层通过此结构访问各个 Handler
type Handlers struct {
	Auth        *AuthHandler
	User        *UserHandler
	Pet         *PetHandler
	Application *ApplicationHandler
	Favorite    *FavoriteHandler
	Ws          *WsHandler
}

// Options Handler 层需要的非 Service 依赖
type Options struct {
	Cookies    config.CookieConfig
	RefreshTTL time.Duration
	Hub        *ws.Hub
	Upgrader   *websocket.Upgrader
}

// NewHandlers 创建并注入所有 Handler 实例
// 依赖注入流程：
//  1. 接收 Services 聚合实例
//  2. 创建各个 Handler 实例，注入对应的 Service
//  3. 返回 Handlers 聚合
func NewHandlers(svc *service.Services, opts Options) *Handlers {
	return &Handlers{
		Auth:        NewAuthHandler(svc.User, svc.Auth, opts.Cookies, opts.RefreshTTL),
		User:        NewUserHandler(svc.User),
		Pet:         NewPetHandler(svc.Pet, svc.Lookup),
		Application: NewApplicationHandler(svc.Application),
		Favorite:    NewFavoriteHandler(svc.Favorite),
		Ws:          NewWsHandler(opts.Hub, opts.Upgrader),
	}
}

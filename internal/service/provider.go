// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"pet_adoption_server/internal/dao/database/repository"
	myredis "pet_adoption_server/internal/dao/redis"
	"pet_adoption_server/internal/infrastructure/mq"
	"pet_adoption_server/internal/infrastructure/storage"
	"pet_adoption_server/internal/service/application"
	"pet_adoption_server/internal/service/auth"
	"pet_adoption_server/internal/service/favorite"
	"pet_adoption_server/internal/service/lookup"
	"pet_adoption_server/internal/service/pet"
	"pet_adoption_server/internal/service/user"
	"pet_adoption_server/pkg/util/jwt"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过此结构访问各个 Service
type Services struct {
	User        UserService
	Auth        AuthService
	Pet         PetService
	Lookup      LookupService
	Application ApplicationService
	Favorite    FavoriteService
}

// Deps 构造 Service 层所需的外部依赖
type Deps struct {
	Repos            *repository.Repositories
	Cache            myredis.AsyncCacheService
	Tokens           *jwt.Manager
	Store            storage.FileStore
	Publisher        mq.EventPublisher
	PlaceholderImage string
}

// NewServices 创建并注入所有 Service 实例
// 依赖注入流程：
//  1. 接收 Repository、缓存、令牌、存储、事件总线
//  2. 创建各个 Service 实例
//  3. 返回 Services 聚合
func NewServices(d Deps) *Services {
	lookupSvc := lookup.NewLookupService(d.Repos, d.Cache)
	return &Services{
		User:        user.NewUserService(d.Repos, d.Cache, d.Tokens),
		Auth:        auth.NewAuthService(d.Repos, d.Cache, d.Tokens),
		Pet:         pet.NewPetService(d.Repos, d.Store, lookupSvc, d.PlaceholderImage),
		Lookup:      lookupSvc,
		Application: application.NewApplicationService(d.Repos, d.Publisher),
		Favorite:    favorite.NewFavoriteService(d.Repos),
	}
}

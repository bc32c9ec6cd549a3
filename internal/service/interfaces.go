// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"context"
	"mime/multipart"

	"pet_adoption_server/internal/dto/request"
	"pet_adoption_server/internal/dto/respond"
	"pet_adoption_server/pkg/util/jwt"
)

// UserService 用户业务接口
// 处理注册、登录与个人资料
type UserService interface {
	// Register 注册，用户与领养偏好在同一事务中写入
	Register(req request.RegisterRequest) (*respond.RegisterRespond, error)
	// Login 邮箱密码登录，签发双 Token
	Login(ctx context.Context, req request.LoginRequest) (*respond.LoginRespond, error)
	// GetProfile 个人资料与领养偏好
	GetProfile(userId int64) (*respond.ProfileRespond, error)
}

// AuthService 认证业务接口
// 令牌校验、刷新与登出吊销
type AuthService interface {
	// VerifyAccessToken 校验 Access Token，供鉴权中间件使用
	VerifyAccessToken(ctx context.Context, token string) (*jwt.Claims, error)
	// Refresh 用 Refresh Token 换新的 Access Token
	Refresh(ctx context.Context, refreshToken string) (*respond.RefreshRespond, error)
	// Logout 吊销令牌，令牌无效时什么也不做
	Logout(ctx context.Context, accessToken, refreshToken string)
}

// PetService 宠物业务接口
type PetService interface {
	// Create 发布宠物，image / passport 可为 nil
	Create(ownerId int64, req request.CreatePetRequest, image, passport *multipart.FileHeader) (*respond.CreatePetRespond, error)
	// Get 宠物详情
	Get(petId int64) (*respond.PetDetailRespond, error)
	// ListByOwner 我发布的宠物
	ListByOwner(ownerId int64) (*respond.PetListRespond, error)
	// Search 按条件搜索
	Search(req request.SearchPetRequest) (*respond.PetListRespond, error)
	// Delete 发布者删除宠物，级联删除申请与收藏
	Delete(petId, actorId int64) error
}

// LookupService 下拉数据接口
type LookupService interface {
	// Breeds 品种列表，species 为 Any 时返回全部
	Breeds(ctx context.Context, species string) ([]string, error)
	// Cities 城市列表
	Cities(ctx context.Context) ([]string, error)
	// Invalidate 清理下拉缓存
	Invalidate()
}

// ApplicationService 领养申请业务接口
type ApplicationService interface {
	// Create 提交申请
	Create(ctx context.Context, applicantId int64, req request.CreateApplicationRequest) (*respond.CreateApplicationRespond, error)
	// Transition 审批（approved / rejected）或撤回（withdrawn）
	Transition(ctx context.Context, applicationId, actorId int64, target string) (*respond.TransitionRespond, error)
	// Get 单条申请，仅申请人与宠物主人可见
	Get(applicationId, actorId int64) (*respond.ApplicationRespond, error)
	// ListMine 我提交的申请
	ListMine(applicantId int64) (*respond.ApplicationListRespond, error)
	// ListReceived 我收到的申请
	ListReceived(ownerId int64) (*respond.ReceivedApplicationListRespond, error)
}

// FavoriteService 收藏业务接口
type FavoriteService interface {
	// Add 收藏，重复收藏不报错
	Add(userId, petId int64) (*respond.AddFavoriteRespond, error)
	// Remove 取消收藏，未收藏也不报错
	Remove(userId, petId int64) error
	// List 我的收藏
	List(userId int64) (*respond.FavoriteListRespond, error)
}

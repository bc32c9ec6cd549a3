// Package favorite 收藏宠物
package favorite

import (
	"time"

	"go.uber.org/zap"

	"pet_adoption_server/internal/dao/database/repository"
	"pet_adoption_server/internal/dto/respond"
	"pet_adoption_server/internal/model"
	"pet_adoption_server/internal/service/pet"
	"pet_adoption_server/pkg/errorx"
	"pet_adoption_server/pkg/util/snowflake"
)

type favoriteService struct {
	repos *repository.Repositories
	now   func() time.Time
}

func NewFavoriteService(repos *repository.Repositories) *favoriteService {
	return &favoriteService{repos: repos, now: time.Now}
}

// Add 幂等：已收藏时直接返回 already_saved=true
// 允许收藏自己发布的宠物
func (f *favoriteService) Add(userId, petId int64) (*respond.AddFavoriteRespond, error) {
	if _, err := f.repos.Pet.FindById(petId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "pet not found")
		}
		zap.L().Error("find pet", zap.Error(err), zap.Int64("pet_id", petId))
		return nil, errorx.ErrServerBusy
	}

	exists, err := f.repos.Favorite.Exists(userId, petId)
	if err != nil {
		zap.L().Error("check favorite", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if exists {
		return &respond.AddFavoriteRespond{AlreadySaved: true}, nil
	}

	err = f.repos.Favorite.Create(&model.SavedPublication{
		Id:        snowflake.GenerateID(),
		UserId:    userId,
		PetId:     petId,
		CreatedAt: f.now(),
	})
	if err != nil {
		// 并发重复收藏撞上唯一索引，按已收藏处理
		if errorx.Is(err, errorx.CodeConflict) {
			return &respond.AddFavoriteRespond{AlreadySaved: true}, nil
		}
		zap.L().Error("create favorite", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.AddFavoriteRespond{AlreadySaved: false}, nil
}

// Remove 记录不存在也视为成功
func (f *favoriteService) Remove(userId, petId int64) error {
	if err := f.repos.Favorite.Delete(userId, petId); err != nil {
		zap.L().Error("delete favorite", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// List 收藏的宠物，按收藏时间倒序
func (f *favoriteService) List(userId int64) (*respond.FavoriteListRespond, error) {
	favs, err := f.repos.Favorite.FindByUserId(userId)
	if err != nil {
		zap.L().Error("find favorites", zap.Error(err), zap.Int64("user_id", userId))
		return nil, errorx.ErrServerBusy
	}
	petIds := make([]int64, 0, len(favs))
	for _, fav := range favs {
		petIds = append(petIds, fav.PetId)
	}
	pets, err := f.repos.Pet.FindByIds(petIds)
	if err != nil {
		zap.L().Error("batch find pets", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	petMap := make(map[int64]*model.Pet, len(pets))
	for i := range pets {
		petMap[pets[i].Id] = &pets[i]
	}

	now := f.now()
	list := make([]respond.FavoritePetRespond, 0, len(favs))
	for _, fav := range favs {
		p, ok := petMap[fav.PetId]
		if !ok {
			continue
		}
		list = append(list, respond.FavoritePetRespond{
			PetRespond: pet.ToPetRespond(p, now),
			SavedAt:    fav.CreatedAt,
		})
	}
	return &respond.FavoriteListRespond{Pets: list}, nil
}

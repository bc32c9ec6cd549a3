package respond

import "time"

// AddFavoriteRespond 重复收藏时 already_saved 为 true
type AddFavoriteRespond struct {
	AlreadySaved bool `json:"already_saved"`
}

// FavoritePetRespond 收藏的宠物
type FavoritePetRespond struct {
	PetRespond
	SavedAt time.Time `json:"saved_at"`
}

// FavoriteListRespond 收藏列表
type FavoriteListRespond struct {
	Pets []FavoritePetRespond `json:"pets"`
}

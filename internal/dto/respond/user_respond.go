package respond

import "time"

// UserBrief 登录后返回、写入 user-data Cookie 的展示信息
type UserBrief struct {
	Id        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RegisterRespond 注册结果
type RegisterRespond struct {
	UserId string `json:"user_id"`
}

// LoginRespond 登录结果
// 令牌同时写入 HTTP-only Cookie，body 中的 token 供非浏览器客户端使用
type LoginRespond struct {
	User         UserBrief `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"` // 秒
}

// RefreshRespond 刷新 Access Token 结果
type RefreshRespond struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// PreferenceRespond 领养偏好问卷
type PreferenceRespond struct {
	HasPetExperience bool   `json:"has_pet_experience"`
	HasAllergies     bool   `json:"has_allergies"`
	LivingSpace      string `json:"living_space"`
	PetSpending      string `json:"pet_spending"`
	TimeCommitment   string `json:"time_commitment"`
}

// ProfileRespond 个人资料
type ProfileRespond struct {
	Id          string             `json:"id"`
	FirstName   string             `json:"first_name"`
	LastName    string             `json:"last_name"`
	Email       string             `json:"email"`
	City        string             `json:"city"`
	Gender      string             `json:"gender"`
	BirthDate   string             `json:"birth_date"`
	CreatedAt   time.Time          `json:"created_at"`
	Preferences *PreferenceRespond `json:"preferences"`
}

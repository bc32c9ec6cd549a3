package request

// RegisterRequest 用户注册请求，包含基本信息与领养偏好问卷
// 使用位置:
//   - internal/handler/auth_handler.go: Register
//   - internal/service/user/service.go: Register
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,email,max=100"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	City      string `json:"city" binding:"required,max=100"`
	Gender    string `json:"gender" binding:"required,max=20"`
	// 出生日期分三段提交，服务端拼成 YYYY-MM-DD 并校验是否真实存在
	BirthYear  int `json:"birth_year" binding:"required,min=1900,max=2100"`
	BirthMonth int `json:"birth_month" binding:"required,min=1,max=12"`
	BirthDate  int `json:"birth_date" binding:"required,min=1,max=31"`

	HasPetExperience string `json:"has_pet_experience" binding:"required,oneof=yes no"`
	HasAllergies     string `json:"has_allergies" binding:"required,oneof=yes no"`
	LivingSpace      string `json:"living_space" binding:"max=50"`
	PetSpending      string `json:"pet_spending" binding:"max=50"`
	TimeCommitment   string `json:"time_commitment" binding:"max=50"`
}

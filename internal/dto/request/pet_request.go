package request

// CreatePetRequest 发布宠物（multipart 表单），图片与证件文件单独读取
// 使用位置:
//   - internal/handler/pet_handler.go: CreatePet
//   - internal/service/pet/service.go: Create
type CreatePetRequest struct {
	Name         string `form:"name" binding:"required,max=100"`
	Species      string `form:"species" binding:"required,max=50"`
	Breed        string `form:"breed" binding:"required,max=100"`
	Age          string `form:"age" binding:"required,max=50"`
	AgeCategory  string `form:"age_category" binding:"required,max=50"`
	Gender       string `form:"gender" binding:"required,max=20"`
	Size         string `form:"size" binding:"required,max=20"`
	CoatLength   string `form:"coat_length" binding:"required,max=20"`
	GoodWithKids string `form:"good_with_kids" binding:"required,yesno"`
	Location     string `form:"location" binding:"required,max=255"`
	City         string `form:"city" binding:"required,max=100"`
	AdoptionType string `form:"adoption_type" binding:"required,max=50"`
	Description  string `form:"description"`
}

// SearchPetRequest 宠物搜索条件（query 参数），空值或 "Any" 表示不限
// yesno、days_bucket 为 handler 中注册的自定义校验
type SearchPetRequest struct {
	Species        string `form:"species"`
	Breed          string `form:"breed"`
	Age            string `form:"age"` // 对应 age_category
	Size           string `form:"size"`
	Gender         string `form:"gender"`
	City           string `form:"city"`
	CoatLength     string `form:"coat_length"`
	GoodWithKids   string `form:"good_with_kids" binding:"omitempty,yesno=any"`
	AdoptionType   string `form:"adoption_type"`
	DaysOnPlatform string `form:"days_on_platform" binding:"omitempty,days_bucket=any"` // 1-7 / 8-30 / 31-90 / 91+
	Search         string `form:"search"`
}

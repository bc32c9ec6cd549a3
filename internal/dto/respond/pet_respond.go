package respond

import "time"

// PetRespond 宠物列表项
type PetRespond struct {
	Id             string    `json:"id"`
	OwnerId        string    `json:"owner_id"`
	Name           string    `json:"name"`
	Species        string    `json:"species"`
	Breed          string    `json:"breed"`
	Age            string    `json:"age"`
	AgeCategory    string    `json:"age_category"`
	Gender         string    `json:"gender"`
	Size           string    `json:"size"`
	CoatLength     string    `json:"coat_length"`
	GoodWithKids   bool      `json:"good_with_kids"`
	Location       string    `json:"location"`
	City           string    `json:"city"`
	AdoptionType   string    `json:"adoption_type"`
	Description    string    `json:"description"`
	ImageUrl       string    `json:"image_url"`
	PassportPath   *string   `json:"passport_path"`
	DaysOnPlatform int       `json:"days_on_platform"`
	CreatedAt      time.Time `json:"created_at"`
}

// PetDetailRespond 宠物详情，附带发布者展示名
type PetDetailRespond struct {
	PetRespond
	OwnerName string `json:"owner_name"`
}

// PetListRespond 宠物列表
type PetListRespond struct {
	Pets []PetRespond `json:"pets"`
}

// CreatePetRespond 发布结果
type CreatePetRespond struct {
	PetId        string  `json:"pet_id"`
	ImageUrl     string  `json:"image_url"`
	PassportPath *string `json:"passport_path"`
}

// BreedsRespond 品种下拉框
type BreedsRespond struct {
	Breeds []string `json:"breeds"`
}

// CitiesRespond 城市下拉框
type CitiesRespond struct {
	Cities []string `json:"cities"`
}

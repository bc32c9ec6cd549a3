package respond

import "time"

// CreateApplicationRespond 提交申请结果
type CreateApplicationRespond struct {
	ApplicationId string `json:"application_id"`
	Status        string `json:"status"`
}

// ApplicationStatus 审批后的申请状态
type ApplicationStatus struct {
	Id        string    `json:"id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TransitionRespond 审批返回 application，撤回返回 withdrawn
type TransitionRespond struct {
	Application *ApplicationStatus `json:"application,omitempty"`
	Withdrawn   bool               `json:"withdrawn,omitempty"`
}

// ApplicationRespond 申请记录和所申请宠物的展示信息
// 使用位置:
//   - internal/service/application/service.go: ListMine, Get
type ApplicationRespond struct {
	Id          string    `json:"id"`
	PetId       string    `json:"pet_id"`
	ApplicantId string    `json:"applicant_id"`
	OwnerId     string    `json:"owner_id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	PetName     string    `json:"pet_name"`
	PetImageUrl string    `json:"pet_image_url"`
	PetBreed    string    `json:"pet_breed"`
	PetSpecies  string    `json:"pet_species"`
}

// ApplicantRespond 申请人信息
type ApplicantRespond struct {
	Id        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// ReceivedApplicationRespond 宠物主人收到的申请
type ReceivedApplicationRespond struct {
	ApplicationRespond
	Applicant   ApplicantRespond   `json:"applicant"`
	Preferences *PreferenceRespond `json:"preferences"`
}

// ApplicationListRespond 申请列表
type ApplicationListRespond struct {
	Applications []ApplicationRespond `json:"applications"`
}

// ReceivedApplicationListRespond 收到的申请列表
type ReceivedApplicationListRespond struct {
	Applications []ReceivedApplicationRespond `json:"applications"`
}

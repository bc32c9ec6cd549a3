package request

// CreateApplicationRequest 提交领养申请
// pet_id 以字符串传递，避免雪花 ID 在前端丢精度
type CreateApplicationRequest struct {
	PetId       string `json:"pet_id" binding:"required"`
	Description string `json:"description"`
}

// UpdateApplicationStatusRequest 审批或撤回申请，status 取 approved / rejected / withdrawn
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

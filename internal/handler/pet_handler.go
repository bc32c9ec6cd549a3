// Package handler 提供 HTTP 请求处理器
// 本文件处理宠物发布、搜索与下拉数据请求
package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"pet_adoption_server/internal/dto/request"
	"pet_adoption_server/internal/dto/respond"
	"pet_adoption_server/internal/service"
	"pet_adoption_server/pkg/constants"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// PetHandler 宠物请求处理器
type PetHandler struct {
	petSvc    service.PetService
	lookupSvc service.LookupService
}

// NewPetHandler 创建宠物处理器
func NewPetHandler(petSvc service.PetService, lookupSvc service.LookupService) *PetHandler {
	return &PetHandler{petSvc: petSvc, lookupSvc: lookupSvc}
}

// Search 搜索宠物
// GET /api/pets?species=&breed=&age=&size=&gender=&city=&coat_length=&good_with_kids=&adoption_type=&days_on_platform=&search=
// 响应: respond.PetListRespond
func (h *PetHandler) Search(c *gin.Context) {
	var req request.SearchPetRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.petSvc.Search(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Mine 我发布的宠物
// GET /api/pets/mine
func (h *PetHandler) Mine(c *gin.Context) {
	userId, ok := currentUser(c)
	if !ok {
		return
	}
	data, err := h.petSvc.ListByOwner(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Get 宠物详情
// GET /api/pets/:id
// 响应: respond.PetDetailRespond
func (h *PetHandler) Get(c *gin.Context) {
	petId, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.petSvc.Get(petId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Create 发布宠物
// POST /api/pets
// 请求体: multipart 表单，字段见 request.CreatePetRequest，文件字段 image / passport 均可选
// 响应: 201 respond.CreatePetRespond
func (h *PetHandler) Create(c *gin.Context) {
	userId, ok := currentUser(c)
	if !ok {
		return
	}
	var req request.CreatePetRequest
	if err := c.ShouldBindWith(&req, binding.FormMultipart); err != nil {
		HandleParamError(c, err)
		return
	}
	image, err := optionalFile(c, "image")
	if err != nil {
		HandleParamError(c, err)
		return
	}
	passport, err := optionalFile(c, "passport")
	if err != nil {
		HandleParamError(c, err)
		return
	}

	data, err := h.petSvc.Create(userId, req, image, passport)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleCreated(c, data)
}

// Delete 删除宠物，仅发布者可操作
// DELETE /api/pets/:id
func (h *PetHandler) Delete(c *gin.Context) {
	userId, ok := currentUser(c)
	if !ok {
		return
	}
	petId, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.petSvc.Delete(petId, userId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"deleted": true})
}

// Breeds 品种下拉
// GET /api/breeds?species=Dog
// 响应: respond.BreedsRespond
func (h *PetHandler) Breeds(c *gin.Context) {
	species := c.DefaultQuery("species", constants.ANY)
	breeds, err := h.lookupSvc.Breeds(c.Request.Context(), species)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, respond.BreedsRespond{Breeds: breeds})
}

// Cities 城市下拉
// GET /api/cities
// 响应: respond.CitiesRespond
func (h *PetHandler) Cities(c *gin.Context) {
	cities, err := h.lookupSvc.Cities(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, respond.CitiesRespond{Cities: cities})
}

// optionalFile 未上传时返回 nil
func optionalFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	return fh, err
}

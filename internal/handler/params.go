package handler

import (
	"strconv"

	"pet_adoption_server/internal/infrastructure/middleware"
	"pet_adoption_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// currentUser 取当前用户 ID，取不到时直接写 401 响应
func currentUser(c *gin.Context) (int64, bool) {
	userId, ok := middleware.CurrentUserID(c)
	if !ok {
		HandleError(c, errorx.ErrUnauthorized)
		return 0, false
	}
	return userId, true
}

// pathID 解析路径中的雪花 ID，非法时直接写 400 响应
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "invalid "+name))
		return 0, false
	}
	return id, true
}

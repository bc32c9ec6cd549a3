package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet_adoption_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(t *testing.T, h gin.HandlerFunc) (int, map[string]any) {
	t.Helper()
	r := gin.New()
	r.GET("/items/:id", h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/abc", nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   int
	}{
		{"not found", errorx.New(errorx.CodeNotFound, "pet not found"), http.StatusNotFound, errorx.CodeNotFound},
		{"forbidden", errorx.New(errorx.CodeForbidden, "nope"), http.StatusForbidden, errorx.CodeForbidden},
		{"conflict", errorx.New(errorx.CodeConflict, "already approved"), http.StatusBadRequest, errorx.CodeConflict},
		{"unauthorized", errorx.ErrUnauthorized, http.StatusUnauthorized, errorx.CodeUnauthorized},
		{"db error", errorx.New(errorx.CodeDBError, "boom"), http.StatusInternalServerError, errorx.CodeDBError},
		{"plain error", errors.New("disk on fire"), http.StatusInternalServerError, errorx.CodeServerBusy},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := serve(t, func(c *gin.Context) { HandleError(c, tc.err) })
			assert.Equal(t, tc.status, status)
			assert.EqualValues(t, tc.code, body["code"])
		})
	}
}

func TestHandleErrorHidesSystemMessage(t *testing.T) {
	_, body := serve(t, func(c *gin.Context) { HandleError(c, errors.New("dial tcp 10.0.0.1:3306")) })
	assert.Equal(t, errorx.ErrServerBusy.Msg, body["msg"])
}

func TestHandleCreated(t *testing.T) {
	status, body := serve(t, func(c *gin.Context) { HandleCreated(c, gin.H{"id": "1"}) })
	assert.Equal(t, http.StatusCreated, status)
	assert.EqualValues(t, errorx.CodeSuccess, body["code"])
}

func TestPathID(t *testing.T) {
	status, body := serve(t, func(c *gin.Context) {
		if _, ok := pathID(c, "id"); ok {
			HandleSuccess(c, nil)
		}
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.EqualValues(t, errorx.CodeInvalidParam, body["code"])
}

func TestCurrentUserMissing(t *testing.T) {
	status, _ := serve(t, func(c *gin.Context) {
		if _, ok := currentUser(c); ok {
			HandleSuccess(c, nil)
		}
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHandleParamErrorTranslates(t *testing.T) {
	require.NoError(t, InitTrans("en"))
	type payload struct {
		Email string `json:"email" binding:"required,email"`
	}
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var p payload
		if err := c.ShouldBindJSON(&p); err != nil {
			HandleParamError(c, err)
			return
		}
		HandleSuccess(c, p)
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Msg map[string]string `json:"msg"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Msg, "email")
}

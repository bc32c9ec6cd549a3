package https_server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"pet_adoption_server/internal/config"
	"pet_adoption_server/internal/dao/database/repository"
	myredis "pet_adoption_server/internal/dao/redis"
	ws "pet_adoption_server/internal/gateway/websocket"
	"pet_adoption_server/internal/handler"
	"pet_adoption_server/internal/infrastructure/middleware"
	"pet_adoption_server/internal/infrastructure/mq"
	"pet_adoption_server/internal/infrastructure/storage"
	"pet_adoption_server/internal/service"
	"pet_adoption_server/internal/testutil"
	"pet_adoption_server/pkg/constants"
	"pet_adoption_server/pkg/errorx"
	"pet_adoption_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transOnce sync.Once

type testServer struct {
	engine *gin.Engine
	repos  *repository.Repositories
	hub    *ws.Hub
}

type envelope struct {
	Code int             `json:"code"`
	Msg  any             `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	transOnce.Do(func() { require.NoError(t, handler.InitTrans("en")) })

	conf := config.Default()
	conf.Secret = "test-secret"
	conf.UploadPath = t.TempDir()
	conf.DocumentPath = t.TempDir()

	repos := testutil.NewRepos(t)
	store, err := storage.NewLocalStore(conf.UploadPath, conf.DocumentPath)
	require.NoError(t, err)
	tokens := jwt.NewManager(conf.Secret, conf.AccessTokenExpiry, conf.RefreshTokenExpiry)

	hub := ws.NewHub()
	broker := mq.NewChannelBroker(constants.CHANNEL_SIZE, mq.NewDispatcher(hub).Handle)
	ctx, cancel := context.WithCancel(context.Background())
	go broker.Start(ctx)
	t.Cleanup(func() {
		cancel()
		_ = broker.Close()
		hub.Close()
	})

	svcs := service.NewServices(service.Deps{
		Repos:            repos,
		Cache:            myredis.NewMemoryCache(),
		Tokens:           tokens,
		Store:            store,
		Publisher:        broker,
		PlaceholderImage: conf.PlaceholderImage,
	})
	handlers := handler.NewHandlers(svcs, handler.Options{
		Cookies:    conf.CookieConfig,
		RefreshTTL: tokens.RefreshTokenExpiry(),
		Hub:        hub,
		Upgrader:   ws.NewUpgrader(nil),
	})
	return &testServer{
		engine: Init(conf, handlers, svcs.Auth, middleware.NewMetrics()),
		repos:  repos,
		hub:    hub,
	}
}

func (s *testServer) send(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) doJSON(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(req, token)
}

// login 种子用户的密码统一为 secret123
func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	w := s.doJSON(t, http.MethodPost, "/api/auth/login", gin.H{"email": email, "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var data struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, w, &data)
	return data.AccessToken
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if out != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

func idStr(id int64) string {
	return strconv.FormatInt(id, 10)
}

func cookieByName(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func petForm(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if withImage {
		part, err := mw.CreateFormFile("image", "max.png")
		require.NoError(t, err)
		_, err = part.Write(pngHeader)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func maxFields() map[string]string {
	return map[string]string{
		"name": "Max", "species": "Dog", "breed": "Labrador", "age": "2 years",
		"age_category": "Adult", "gender": "Male", "size": "Large", "coat_length": "Short",
		"good_with_kids": "yes", "location": "Abay ave 10", "city": "Almaty",
		"adoption_type": "Free", "description": "Loves walks",
	}
}

func (s *testServer) createPet(t *testing.T, token string) string {
	t.Helper()
	body, contentType := petForm(t, maxFields(), true)
	req := httptest.NewRequest(http.MethodPost, "/api/pets", body)
	req.Header.Set("Content-Type", contentType)
	w := s.send(req, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var data struct {
		PetId    string `json:"pet_id"`
		ImageUrl string `json:"image_url"`
	}
	decode(t, w, &data)
	assert.True(t, strings.HasPrefix(data.ImageUrl, storage.UploadURLPrefix+"/"))
	return data.PetId
}

func (s *testServer) apply(t *testing.T, token, petId string) string {
	t.Helper()
	w := s.doJSON(t, http.MethodPost, "/api/applications", gin.H{"pet_id": petId, "description": "Interested."}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var data struct {
		ApplicationId string `json:"application_id"`
		Status        string `json:"status"`
	}
	decode(t, w, &data)
	assert.Equal(t, "pending", data.Status)
	require.NotEmpty(t, data.ApplicationId)
	return data.ApplicationId
}

func TestAdoptionFlow(t *testing.T) {
	s := newTestServer(t)
	testutil.SeedUser(t, s.repos, "Alice", "a@example.com")
	testutil.SeedUser(t, s.repos, "Bob", "b@example.com")
	testutil.SeedUser(t, s.repos, "Carol", "c@example.com")
	ownerToken := s.login(t, "a@example.com")
	applicantToken := s.login(t, "b@example.com")
	strangerToken := s.login(t, "c@example.com")

	// 主人发布 Max，申请人提交申请
	petId := s.createPet(t, ownerToken)
	appId := s.apply(t, applicantToken, petId)

	// 无关用户审批被拒绝
	w := s.doJSON(t, http.MethodPatch, "/api/applications/"+appId, gin.H{"status": "approved"}, strangerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, errorx.CodeForbidden, decode(t, w, nil).Code)

	// 主人通过
	w = s.doJSON(t, http.MethodPatch, "/api/applications/"+appId, gin.H{"status": "approved"}, ownerToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var transition struct {
		Application struct {
			Status string `json:"status"`
		} `json:"application"`
	}
	decode(t, w, &transition)
	assert.Equal(t, "approved", transition.Application.Status)

	// 申请人在"我的申请"里看到 approved
	w = s.doJSON(t, http.MethodGet, "/api/applications/mine", nil, applicantToken)
	require.Equal(t, http.StatusOK, w.Code)
	var mine struct {
		Applications []struct {
			Id      string `json:"id"`
			Status  string `json:"status"`
			PetName string `json:"pet_name"`
		} `json:"applications"`
	}
	decode(t, w, &mine)
	require.Len(t, mine.Applications, 1)
	assert.Equal(t, appId, mine.Applications[0].Id)
	assert.Equal(t, "approved", mine.Applications[0].Status)
	assert.Equal(t, "Max", mine.Applications[0].PetName)

	// 已审批的申请不能再改
	w = s.doJSON(t, http.MethodPatch, "/api/applications/"+appId, gin.H{"status": "rejected"}, ownerToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errorx.CodeConflict, decode(t, w, nil).Code)

	// 主人收到的申请带申请人信息
	w = s.doJSON(t, http.MethodGet, "/api/applications/received", nil, ownerToken)
	require.Equal(t, http.StatusOK, w.Code)
	var received struct {
		Applications []struct {
			Applicant struct {
				FirstName string `json:"first_name"`
			} `json:"applicant"`
		} `json:"applications"`
	}
	decode(t, w, &received)
	require.Len(t, received.Applications, 1)
	assert.Equal(t, "Bob", received.Applications[0].Applicant.FirstName)
}

func TestWithdrawThenGetReturnsNotFound(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.SeedUser(t, s.repos, "Alice", "a@example.com")
	testutil.SeedUser(t, s.repos, "Bob", "b@example.com")
	pet := testutil.SeedPet(t, s.repos, owner.Id, "Bella")
	applicantToken := s.login(t, "b@example.com")
	ownerToken := s.login(t, "a@example.com")

	appId := s.apply(t, applicantToken, idStr(pet.Id))

	// 主人不能替申请人撤回
	w := s.doJSON(t, http.MethodPatch, "/api/applications/"+appId, gin.H{"status": "withdrawn"}, ownerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.doJSON(t, http.MethodPatch, "/api/applications/"+appId, gin.H{"status": "withdrawn"}, applicantToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var data struct {
		Withdrawn bool `json:"withdrawn"`
	}
	decode(t, w, &data)
	assert.True(t, data.Withdrawn)

	w = s.doJSON(t, http.MethodGet, "/api/applications/"+appId, nil, applicantToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplicationErrors(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.SeedUser(t, s.repos, "Alice", "a@example.com")
	testutil.SeedUser(t, s.repos, "Bob", "b@example.com")
	pet := testutil.SeedPet(t, s.repos, owner.Id, "Max")
	ownerToken := s.login(t, "a@example.com")
	applicantToken := s.login(t, "b@example.com")

	tests := []struct {
		name   string
		token  string
		body   gin.H
		status int
		code   int
	}{
		{"own pet", ownerToken, gin.H{"pet_id": idStr(pet.Id), "description": "mine"}, http.StatusBadRequest, errorx.CodeInvalidParam},
		{"missing pet", applicantToken, gin.H{"pet_id": "12345", "description": "hi"}, http.StatusNotFound, errorx.CodeNotFound},
		{"blank message", applicantToken, gin.H{"pet_id": idStr(pet.Id), "description": "   "}, http.StatusBadRequest, errorx.CodeInvalidParam},
		{"missing pet id", applicantToken, gin.H{"description": "hi"}, http.StatusBadRequest, errorx.CodeInvalidParam},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := s.doJSON(t, http.MethodPost, "/api/applications", tc.body, tc.token)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			assert.Equal(t, tc.code, decode(t, w, nil).Code)
		})
	}

	s.apply(t, applicantToken, idStr(pet.Id))
	w := s.doJSON(t, http.MethodPost, "/api/applications", gin.H{"pet_id": idStr(pet.Id), "description": "again"}, applicantToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errorx.CodeConflict, decode(t, w, nil).Code)

	w = s.doJSON(t, http.MethodGet, "/api/applications/not-a-number", nil, applicantToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginCookies(t *testing.T) {
	s := newTestServer(t)
	testutil.SeedUser(t, s.repos, "Alice", "a@example.com")

	w := s.doJSON(t, http.MethodPost, "/api/auth/login", gin.H{"email": "a@example.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	auth := cookieByName(w, constants.AUTH_COOKIE)
	require.NotNil(t, auth)
	assert.True(t, auth.HttpOnly)
	refresh := cookieByName(w, constants.REFRESH_COOKIE)
	require.NotNil(t, refresh)
	assert.True(t, refresh.HttpOnly)
	assert.Equal(t, constants.REFRESH_COOKIE_PATH, refresh.Path)
	userData := cookieByName(w, constants.USER_DATA_COOKIE)
	require.NotNil(t, userData)
	assert.False(t, userData.HttpOnly)

	// auth-token Cookie 单独即可访问受保护接口
	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	req.AddCookie(auth)
	w = s.send(req, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var profile struct {
		Email string `json:"email"`
	}
	decode(t, w, &profile)
	assert.Equal(t, "a@example.com", profile.Email)

	// 伪造的 user-data Cookie 不能代替令牌
	req = httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	req.AddCookie(userData)
	w = s.send(req, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 刷新令牌走 Cookie
	req = httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(refresh)
	w = s.send(req, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotNil(t, cookieByName(w, constants.AUTH_COOKIE))

	w = s.doJSON(t, http.MethodPost, "/api/auth/login", gin.H{"email": "a@example.com", "password": "wrong-pass"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterAndLogout(t *testing.T) {
	s := newTestServer(t)
	register := gin.H{
		"first_name": "Dana", "last_name": "Lee", "email": "dana@example.com", "password": "secret123",
		"city": "Astana", "gender": "Female", "birth_year": 1995, "birth_month": 4, "birth_date": 12,
		"has_pet_experience": "yes", "has_allergies": "no", "living_space": "House",
	}
	w := s.doJSON(t, http.MethodPost, "/api/auth/register", register, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.doJSON(t, http.MethodPost, "/api/auth/register", register, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errorx.CodeUserExist, decode(t, w, nil).Code)

	token := s.login(t, "dana@example.com")
	w = s.doJSON(t, http.MethodGet, "/api/user/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		Preferences struct {
			HasPetExperience bool `json:"has_pet_experience"`
		} `json:"preferences"`
	}
	decode(t, w, &profile)
	assert.True(t, profile.Preferences.HasPetExperience)

	w = s.doJSON(t, http.MethodPost, "/api/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := cookieByName(w, constants.AUTH_COOKIE)
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)

	// 登出后旧令牌失效
	w = s.doJSON(t, http.MethodGet, "/api/user/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 未登录也能登出
	w = s.doJSON(t, http.MethodPost, "/api/auth/logout", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)
	w := s.doJSON(t, http.MethodPost, "/api/auth/register", gin.H{"email": "not-an-email"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w, nil)
	assert.Equal(t, errorx.CodeInvalidParam, env.Code)
	msg, ok := env.Msg.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, msg, "email")
}

func TestPetBrowsing(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.SeedUser(t, s.repos, "Alice", "a@example.com")
	testutil.SeedPet(t, s.repos, owner.Id, "Max")
	testutil.SeedPet(t, s.repos, owner.Id, "Tom", testutil.WithSpecies("Cat", "Siamese"), testutil.WithCity("Astana"))
	old := testutil.SeedPet(t, s.repos, owner.Id, "Rex", testutil.WithCreatedAt(time.Now().AddDate(0, 0, -45)))

	var list struct {
		Pets []struct {
			Name           string `json:"name"`
			DaysOnPlatform int    `json:"days_on_platform"`
		} `json:"pets"`
	}
	w := s.doJSON(t, http.MethodGet, "/api/pets?species=Cat", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	require.Len(t, list.Pets, 1)
	assert.Equal(t, "Tom", list.Pets[0].Name)

	w = s.doJSON(t, http.MethodGet, "/api/pets?species=Any&days_on_platform=31-90", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	require.Len(t, list.Pets, 1)
	assert.Equal(t, "Rex", list.Pets[0].Name)
	assert.Equal(t, 46, list.Pets[0].DaysOnPlatform)

	w = s.doJSON(t, http.MethodGet, "/api/pets?days_on_platform=forever", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.doJSON(t, http.MethodGet, "/api/pets/"+idStr(old.Id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		OwnerName string `json:"owner_name"`
	}
	decode(t, w, &detail)
	assert.Equal(t, "Alice Tester", detail.OwnerName)

	w = s.doJSON(t, http.MethodGet, "/api/pets/999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.doJSON(t, http.MethodGet, "/api/breeds?species=Dog", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var breeds struct {
		Breeds []string `json:"breeds"`
	}
	decode(t, w, &breeds)
	assert.Equal(t, []string{"Labrador"}, breeds.Breeds)

	w = s.doJSON(t, http.MethodGet, "/api/cities", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var cities struct {
		Cities []string `json:"cities"`
	}
	decode(t, w, &cities)
	assert.ElementsMatch(t, []string{"Almaty", "Astana"}, cities.Cities)

	// 未登录不能访问"我的发布"
	w = s.doJSON(t, http.MethodGet, "/api/pets/mine", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreatePetRequiresFields(t *testing.T) {
	s := newTestServer(t)
	testutil.SeedUser(t, s.repos, "Alice", "a@example.com")
	token := s.login(t, "a@example.com")

	fields := maxFields()
	delete(fields, "breed")
	body, contentType := petForm(t, fields, false)
	req := httptest.NewRequest(http.MethodPost, "/api/pets", body)
	req.Header.Set("Content-Type", contentType)
	w := s.send(req, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 没有图片时使用占位图
	body, contentType = petForm(t, maxFields(), false)
	req = httptest.NewRequest(http.MethodPost, "/api/pets", body)
	req.Header.Set("Content-Type", contentType)
	w = s.send(req, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var data struct {
		ImageUrl string `json:"image_url"`
	}
	decode(t, w, &data)
	assert.Equal(t, config.Default().PlaceholderImage, data.ImageUrl)

	w = s.doJSON(t, http.MethodGet, "/api/pets/mine", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var mine struct {
		Pets []struct {
			Name string `json:"name"`
		} `json:"pets"`
	}
	decode(t, w, &mine)
	assert.Len(t, mine.Pets, 1)
}

func TestPetFormGoodWithKidsIgnoresCase(t *testing.T) {
	s := newTestServer(t)
	testutil.SeedUser(t, s.repos, "Alice", "a@example.com")
	token := s.login(t, "a@example.com")

	post := func(v string) *httptest.ResponseRecorder {
		fields := maxFields()
		fields["good_with_kids"] = v
		body, contentType := petForm(t, fields, false)
		req := httptest.NewRequest(http.MethodPost, "/api/pets", body)
		req.Header.Set("Content-Type", contentType)
		return s.send(req, token)
	}
	for _, v := range []string{"Yes", "NO", "True"} {
		w := post(v)
		assert.Equal(t, http.StatusCreated, w.Code, v)
	}
	w := post("maybe")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "good_with_kids must be yes or no")

	w = s.doJSON(t, http.MethodGet, "/api/pets?good_with_kids=YES", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Pets []struct {
			Name string `json:"name"`
		} `json:"pets"`
	}
	decode(t, w, &list)
	assert.Len(t, list.Pets, 2)

	w = s.doJSON(t, http.MethodGet, "/api/pets?days_on_platform=2-3", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "days_on_platform")
}

func TestDeletePetCascades(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.SeedUser(t, s.repos, "Alice", "a@example.com")
	testutil.SeedUser(t, s.repos, "Bob", "b@example.com")
	pet := testutil.SeedPet(t, s.repos, owner.Id, "Max")
	ownerToken := s.login(t, "a@example.com")
	applicantToken := s.login(t, "b@example.com")

	appId := s.apply(t, applicantToken, idStr(pet.Id))
	w := s.doJSON(t, http.MethodPost, "/api/favorites/"+idStr(pet.Id), nil, applicantToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 非发布者删除得到 404
	w = s.doJSON(t, http.MethodDelete, "/api/pets/"+idStr(pet.Id), nil, applicantToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.doJSON(t, http.MethodDelete, "/api/pets/"+idStr(pet.Id), nil, ownerToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.doJSON(t, http.MethodGet, "/api/applications/"+appId, nil, applicantToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.doJSON(t, http.MethodGet, "/api/favorites", nil, applicantToken)
	require.Equal(t, http.StatusOK, w.Code)
	var favs struct {
		Pets []any `json:"pets"`
	}
	decode(t, w, &favs)
	assert.Empty(t, favs.Pets)
}

func TestFavorites(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.SeedUser(t, s.repos, "Alice", "a@example.com")
	testutil.SeedUser(t, s.repos, "Bob", "b@example.com")
	pet := testutil.SeedPet(t, s.repos, owner.Id, "Max")
	token := s.login(t, "b@example.com")

	for i := 0; i < 2; i++ {
		w := s.doJSON(t, http.MethodPost, "/api/favorites/"+idStr(pet.Id), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w := s.doJSON(t, http.MethodGet, "/api/favorites", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var favs struct {
		Pets []struct {
			Name string `json:"name"`
		} `json:"pets"`
	}
	decode(t, w, &favs)
	require.Len(t, favs.Pets, 1)
	assert.Equal(t, "Max", favs.Pets[0].Name)

	w = s.doJSON(t, http.MethodPost, "/api/favorites/424242", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	for i := 0; i < 2; i++ {
		w = s.doJSON(t, http.MethodDelete, "/api/favorites/"+idStr(pet.Id), nil, token)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	w = s.doJSON(t, http.MethodGet, "/api/favorites", nil, token)
	favs.Pets = nil
	decode(t, w, &favs)
	assert.Empty(t, favs.Pets)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	w := s.doJSON(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	s.doJSON(t, http.MethodGet, "/api/cities", nil, "")
	w = s.doJSON(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/api/cities",status="200"}`)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestWebSocketNotifiesOwner(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.SeedUser(t, s.repos, "Alice", "a@example.com")
	testutil.SeedUser(t, s.repos, "Bob", "b@example.com")
	pet := testutil.SeedPet(t, s.repos, owner.Id, "Max")
	ownerToken := s.login(t, "a@example.com")
	applicantToken := s.login(t, "b@example.com")

	srv := httptest.NewServer(s.engine)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	// 未登录不能建立连接
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	header := http.Header{}
	header.Set("Cookie", constants.AUTH_COOKIE+"="+ownerToken)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return s.hub.Online(owner.Id) == 1 }, 2*time.Second, 10*time.Millisecond)

	appId := s.apply(t, applicantToken, idStr(pet.Id))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	var note mq.Notification
	require.NoError(t, json.Unmarshal(payload, &note))
	assert.Equal(t, mq.EventApplicationCreated, note.Event.Type)
	assert.Equal(t, appId, idStr(note.Event.ApplicationId))
	assert.Equal(t, "Max", note.Event.PetName)
}

package constants

import "time"

const (
	CHANNEL_SIZE        = 100      // 通道大小
	FILE_MAX_SIZE       = 10 << 20 // 单个上传文件最大大小（10MB）
	MULTIPART_MAX_SIZE  = 32 << 20 // multipart 表单内存上限
	REDIS_TIMEOUT       = 1        // redis timeout (分钟)
	LOOKUP_CACHE_EXPIRY = 10 * time.Minute
)

// Redis 键前缀
const (
	USER_TOKEN_PREFIX    = "user_token:"    // 当前有效的 Refresh Token ID
	REVOKED_TOKEN_PREFIX = "revoked_token:" // 已登出的 Access Token jti
	PET_BREEDS_PREFIX    = "pet_breeds_"
	PET_CITIES_KEY       = "pet_cities"
)

// Cookie 名称
const (
	AUTH_COOKIE         = "auth-token"
	REFRESH_COOKIE      = "refresh-token"
	USER_DATA_COOKIE    = "user-data"
	REFRESH_COOKIE_PATH = "/api/auth"
)

// 搜索参数中表示"不限"的取值
const ANY = "Any"

// gin 上下文键
const (
	CTX_USER_ID = "user_id"
	CTX_CLAIMS  = "claims"
)

package middleware

import (
	"pet_adoption_server/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

// SecureHeaders 安全响应头，按配置决定是否强制跳转 HTTPS
func SecureHeaders(conf *config.SecureConfig, isDevelopment bool) gin.HandlerFunc {
	// 在返回函数之前初始化，避免每次请求都重复创建对象
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect:          conf.SSLRedirect,
		SSLHost:              conf.SSLHost,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		BrowserXssFilter:     true,
		ReferrerPolicy:       "strict-origin-when-cross-origin",
		SSLProxyHeaders:      map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:        isDevelopment,
		STSSeconds:           stsSeconds(conf.SSLRedirect),
		STSIncludeSubdomains: conf.SSLRedirect,
	})

	return func(c *gin.Context) {
		// 跳转 HTTPS 时 secure 已写好 301 响应并返回 error
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			// 不要在中间件里用 Fatal，记录后终止当前请求即可
			zap.L().Debug("secure middleware stopped request", zap.Error(err))
			c.Abort()
			return
		}
		c.Next()
	}
}

func stsSeconds(ssl bool) int64 {
	if ssl {
		return 31536000
	}
	return 0
}

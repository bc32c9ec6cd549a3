// Package https_server 提供 HTTP/HTTPS 服务器的初始化和配置
// 负责创建 Gin 引擎实例并配置中间件、静态资源和路由
package https_server

import (
	"net/http"

	"pet_adoption_server/internal/config"                    // 配置管理
	"pet_adoption_server/internal/handler"                   // Handler 聚合对象
	"pet_adoption_server/internal/infrastructure/logger"     // 自定义日志中间件
	"pet_adoption_server/internal/infrastructure/middleware" // 安全头、指标与鉴权
	"pet_adoption_server/internal/infrastructure/storage"    // 上传文件 URL 前缀
	"pet_adoption_server/internal/router"                    // 路由注册
	"pet_adoption_server/pkg/constants"

	"github.com/gin-contrib/cors" // CORS 跨域中间件
	"github.com/gin-gonic/gin"    // Gin Web 框架
)

// Init 初始化 HTTP/HTTPS 服务器并返回 Gin 引擎实例
// handlers: 通过依赖注入传入的 handler 聚合对象
// verifier: 鉴权中间件使用的令牌校验器
// 配置顺序：
//  1. 创建 Gin 引擎（空白，不含默认中间件）
//  2. 注册日志、恢复、安全头、指标中间件
//  3. 配置 CORS 跨域规则
//  4. 映射上传文件目录
//  5. 注册业务路由、/metrics 与 /healthz
func Init(conf *config.Config, handlers *handler.Handlers, verifier middleware.TokenVerifier, metrics *middleware.Metrics) *gin.Engine {
	// 创建空白 Gin 引擎（不使用 gin.Default() 以便完全控制中间件）
	engine := gin.New()
	engine.MaxMultipartMemory = constants.MULTIPART_MAX_SIZE

	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))
	engine.Use(middleware.SecureHeaders(&conf.SecureConfig, conf.Mode == "dev"))
	engine.Use(metrics.Middleware())
	engine.Use(cors.New(corsConfig(conf.AllowedOrigins)))

	// 上传的图片与证件
	engine.Static(storage.UploadURLPrefix, conf.UploadPath)
	engine.Static(storage.DocumentURLPrefix, conf.DocumentPath)

	engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 创建路由管理器并注册所有业务路由
	rt := router.NewRouter(handlers, verifier)
	rt.RegisterRoutes(engine)

	return engine
}

// corsConfig 登录态放在 Cookie 里，必须允许携带凭证
// 未配置白名单时退化为允许所有来源且不带凭证
func corsConfig(origins []string) cors.Config {
	corsConf := cors.DefaultConfig()
	if len(origins) == 0 {
		corsConf.AllowAllOrigins = true
	} else {
		corsConf.AllowOrigins = origins
		corsConf.AllowCredentials = true
	}
	corsConf.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConf.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	return corsConf
}

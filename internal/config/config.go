// Package config 提供应用程序的配置加载
// 使用 TOML 格式的配置文件，支持显式路径与多路径查找，加载结果通过参数逐层注入
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// MainConfig 主配置，包含应用基本信息
type MainConfig struct {
	AppName string `toml:"appName"` // 应用名称
	Host    string `toml:"host"`    // 监听地址，如 "0.0.0.0"
	Port    int    `toml:"port"`    // 监听端口，如 8000
	Mode    string `toml:"mode"`    // 运行模式：dev / release
}

// DatabaseConfig 数据库连接配置
type DatabaseConfig struct {
	Driver                 string `toml:"driver"` // mysql 或 postgres
	Host                   string `toml:"host"`
	Port                   int    `toml:"port"`
	User                   string `toml:"user"`
	Password               string `toml:"password"`
	DatabaseName           string `toml:"databaseName"`
	SSLMode                string `toml:"sslMode"` // 仅 postgres 使用
	MaxOpenConns           int    `toml:"maxOpenConns"`
	MaxIdleConns           int    `toml:"maxIdleConns"`
	ConnMaxLifetimeMinutes int    `toml:"connMaxLifetimeMinutes"`
	AutoMigrate            bool   `toml:"autoMigrate"` // serve 启动时是否自动迁移
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Enabled      bool   `toml:"enabled"` // 关闭时退化为进程内缓存（单机开发）
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	Password     string `toml:"password"`
	Db           int    `toml:"db"`
	WorkerNum    int    `toml:"workerNum"`    // 异步回写 worker 数量
	TaskChanSize int    `toml:"taskChanSize"` // 异步任务缓冲区大小
}

// LogConfig 日志配置，使用 lumberjack 进行日志轮转
type LogConfig struct {
	LogPath    string `toml:"logPath"`    // 日志文件存储目录
	FileName   string `toml:"fileName"`   // 日志文件名
	MaxSize    int    `toml:"maxSize"`    // 单个日志文件最大大小（MB）
	MaxBackups int    `toml:"maxBackups"` // 保留旧日志文件的最大个数
	MaxAge     int    `toml:"maxAge"`     // 保留旧日志文件的最大天数
	Level      string `toml:"level"`      // debug, info, warn, error
}

// KafkaConfig 申请事件总线配置
type KafkaConfig struct {
	MessageMode string        `toml:"messageMode"` // "channel" 或 "kafka"
	HostPort    string        `toml:"hostPort"`    // 如 "localhost:9092"
	EventTopic  string        `toml:"eventTopic"`  // 申请事件主题
	GroupID     string        `toml:"groupId"`     // 消费者组
	Partition   int           `toml:"partition"`   // 创建 topic 时的分区数
	Timeout     time.Duration `toml:"timeout"`     // 超时时间（秒）
}

// StaticSrcConfig 上传文件的存储目录
type StaticSrcConfig struct {
	UploadPath       string `toml:"uploadPath"`       // 宠物图片目录，对外映射为 /uploads
	DocumentPath     string `toml:"documentPath"`     // 证件 PDF 目录，对外映射为 /documents
	PlaceholderImage string `toml:"placeholderImage"` // 图片上传失败时使用的占位图
}

// JWTConfig JWT 认证配置
type JWTConfig struct {
	Secret             string `toml:"secret"`             // 签名密钥，建议 32 字符以上
	AccessTokenExpiry  int    `toml:"accessTokenExpiry"`  // Access Token 有效期（分钟）
	RefreshTokenExpiry int    `toml:"refreshTokenExpiry"` // Refresh Token 有效期（小时）
}

// CookieConfig 登录 Cookie 配置
type CookieConfig struct {
	Secure bool   `toml:"secure"`
	Domain string `toml:"domain"`
}

// SecureConfig 安全响应头与 HTTPS 跳转
type SecureConfig struct {
	SSLRedirect    bool     `toml:"sslRedirect"`
	SSLHost        string   `toml:"sslHost"`
	AllowedOrigins []string `toml:"allowedOrigins"` // CORS 白名单，携带 Cookie 时不能为 *
}

// SnowflakeConfig 雪花算法配置
type SnowflakeConfig struct {
	MachineID int64 `toml:"machineId"` // 范围 0-1023
}

// Config 应用程序总配置
type Config struct {
	MainConfig      `toml:"mainConfig"`
	DatabaseConfig  `toml:"databaseConfig"`
	RedisConfig     `toml:"redisConfig"`
	LogConfig       `toml:"logConfig"`
	KafkaConfig     `toml:"kafkaConfig"`
	StaticSrcConfig `toml:"staticSrcConfig"`
	JWTConfig       `toml:"jwtConfig"`
	CookieConfig    `toml:"cookieConfig"`
	SecureConfig    `toml:"secureConfig"`
	SnowflakeConfig `toml:"snowflakeConfig"`
}

// 候选配置文件路径（优先加载本地配置）
var searchPaths = []string{
	"configs/config_local.toml",
	"configs/config.toml",
	"../../configs/config_local.toml",
	"../../configs/config.toml",
}

// MinJWTSecretLen HS256 密钥最短长度
const MinJWTSecretLen = 32

// LoadConfig 加载配置文件
// path 非空时只读取该文件；为空时依次尝试候选路径，找到第一个可用的即停止
func LoadConfig(path string) (*Config, error) {
	conf := new(Config)
	if path != "" {
		if _, err := toml.DecodeFile(path, conf); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
		conf.applyDefaults()
		return conf, conf.Validate()
	}
	for _, p := range searchPaths {
		if _, err := toml.DecodeFile(p, conf); err == nil {
			conf.applyDefaults()
			return conf, conf.Validate()
		}
	}
	return nil, fmt.Errorf("could not find configuration file in any of the search paths")
}

// Validate 检查没有安全默认值的配置项
// jwt 密钥不设默认值，缺失或过短时拒绝启动
func (c *Config) Validate() error {
	if len(c.Secret) < MinJWTSecretLen {
		return fmt.Errorf("jwtConfig.secret must be at least %d bytes, got %d", MinJWTSecretLen, len(c.Secret))
	}
	return nil
}

// Default 返回全部使用默认值的配置，供测试与无配置文件启动使用
func Default() *Config {
	conf := new(Config)
	conf.applyDefaults()
	return conf
}

func (c *Config) applyDefaults() {
	if c.AppName == "" {
		c.AppName = "pet_adoption_server"
	}
	if c.MainConfig.Host == "" {
		c.MainConfig.Host = "0.0.0.0"
	}
	if c.MainConfig.Port == 0 {
		c.MainConfig.Port = 8000
	}
	if c.Mode == "" {
		c.Mode = "release"
	}
	if c.Driver == "" {
		c.Driver = "mysql"
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 25
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 5
	}
	if c.ConnMaxLifetimeMinutes == 0 {
		c.ConnMaxLifetimeMinutes = 5
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
	if c.WorkerNum == 0 {
		c.WorkerNum = 15
	}
	if c.TaskChanSize == 0 {
		c.TaskChanSize = 3000
	}
	if c.LogPath == "" {
		c.LogPath = "./logs"
	}
	if c.MessageMode == "" {
		c.MessageMode = "channel"
	}
	if c.EventTopic == "" {
		c.EventTopic = "application_events"
	}
	if c.GroupID == "" {
		c.GroupID = "pet_adoption_notify"
	}
	if c.Partition == 0 {
		c.Partition = 1
	}
	if c.Timeout == 0 {
		c.Timeout = 1
	}
	if c.UploadPath == "" {
		c.UploadPath = "./static/uploads"
	}
	if c.DocumentPath == "" {
		c.DocumentPath = "./static/documents"
	}
	if c.PlaceholderImage == "" {
		c.PlaceholderImage = "/placeholder.svg?height=400&width=600&query=cute pet"
	}
	if c.AccessTokenExpiry == 0 {
		c.AccessTokenExpiry = 60 * 24 * 7
	}
	if c.RefreshTokenExpiry == 0 {
		c.RefreshTokenExpiry = 24 * 30
	}
	if c.MachineID == 0 {
		c.MachineID = 1
	}
}

// Addr 服务监听地址
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.MainConfig.Host, c.MainConfig.Port)
}

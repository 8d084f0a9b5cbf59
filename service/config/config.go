/*
 * @module service/config/config
 * @description 应用配置，按 默认值 -> YAML配置文件 -> 环境变量 的顺序叠加
 * @architecture 分层架构 - 配置层
 * @stateFlow 加载 .env -> 默认配置 -> 读取配置文件 -> 环境变量覆盖 -> 校验
 * @rules 环境变量优先级最高；配置文件不存在时忽略；校验失败返回错误
 * @dependencies github.com/joho/godotenv, github.com/spf13/cast, gopkg.in/yaml.v3
 * @refs service/init.go
 */

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// 默认值
const (
	DefaultDataBaseURL   = "https://raw.githubusercontent.com/zyronvon/Microplastics_results/main/final_results/"
	DefaultCSVFile       = "predictions.csv"
	DefaultListenPort    = 80
	DefaultFetchTimeout  = 30 * time.Second
	DefaultActivityLimit = 50
	DefaultPageSize      = 200
	DefaultKafkaTopic    = "predictions.activity"
)

// DefaultImages 结果图库默认图片
var DefaultImages = []string{
	"confidence_histogram.png",
	"misclassified_samples.png",
	"sample_predictions.png",
}

// ServerConfig HTTP服务配置
type ServerConfig struct {
	ListenPort  int    `yaml:"listen_port"`
	BaseContext string `yaml:"base_context"`
}

// DataConfig 数据来源配置
type DataConfig struct {
	BaseURL      string        `yaml:"base_url"`
	CSVURL       string        `yaml:"csv_url"`
	Images       []string      `yaml:"images"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	RefreshCron  string        `yaml:"refresh_cron"`
	LoadOnStart  bool          `yaml:"load_on_start"`
	PageSize     int           `yaml:"page_size"`
}

// ActivityConfig 活动记录配置
type ActivityConfig struct {
	DatabaseURL string `yaml:"database_url"`
	DBPath      string `yaml:"db_path"`
	Limit       int    `yaml:"limit"`
}

// RedisConfig Redis配置，Host为空时不启用
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// KafkaConfig Kafka配置，Brokers为空时不启用
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Config 应用配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Data     DataConfig     `yaml:"data"`
	Activity ActivityConfig `yaml:"activity"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	LogLevel string         `yaml:"log_level"`
}

// Default 返回默认配置
func Default() *Config {
	images := make([]string, len(DefaultImages))
	copy(images, DefaultImages)
	return &Config{
		Server: ServerConfig{ListenPort: DefaultListenPort},
		Data: DataConfig{
			BaseURL:      DefaultDataBaseURL,
			Images:       images,
			FetchTimeout: DefaultFetchTimeout,
			LoadOnStart:  true,
			PageSize:     DefaultPageSize,
		},
		Activity: ActivityConfig{Limit: DefaultActivityLimit},
		Redis:    RedisConfig{Port: 6379},
		Kafka:    KafkaConfig{Topic: DefaultKafkaTopic},
		LogLevel: "info",
	}
}

// Load 加载配置。.env 文件可选；CONFIG_FILE 指定YAML配置文件
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("读取配置文件失败: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("解析配置文件失败: %w", err)
	}
	return nil
}

// applyEnv 用环境变量覆盖配置，getenv 便于测试注入
func (c *Config) applyEnv(getenv func(string) string) {
	set := func(key string, apply func(string)) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			apply(v)
		}
	}

	set("LISTEN_PORT", func(v string) { c.Server.ListenPort = cast.ToInt(v) })
	set("BASE_CONTEXT", func(v string) { c.Server.BaseContext = v })

	set("DATA_BASE_URL", func(v string) { c.Data.BaseURL = v })
	set("PREDICTIONS_CSV_URL", func(v string) { c.Data.CSVURL = v })
	set("GALLERY_IMAGES", func(v string) { c.Data.Images = splitList(v) })
	set("FETCH_TIMEOUT", func(v string) { c.Data.FetchTimeout = cast.ToDuration(v) })
	set("REFRESH_CRON", func(v string) { c.Data.RefreshCron = v })
	set("LOAD_ON_START", func(v string) { c.Data.LoadOnStart = cast.ToBool(v) })
	set("PAGE_SIZE", func(v string) { c.Data.PageSize = cast.ToInt(v) })

	set("DATABASE_URL", func(v string) { c.Activity.DatabaseURL = v })
	set("ACTIVITY_DB_PATH", func(v string) { c.Activity.DBPath = v })
	set("ACTIVITY_LIMIT", func(v string) { c.Activity.Limit = cast.ToInt(v) })

	set("REDIS_HOST", func(v string) { c.Redis.Host = v })
	set("REDIS_PORT", func(v string) { c.Redis.Port = cast.ToInt(v) })
	set("REDIS_PASSWORD", func(v string) { c.Redis.Password = v })
	set("REDIS_DB", func(v string) { c.Redis.DB = cast.ToInt(v) })

	set("KAFKA_BROKERS", func(v string) { c.Kafka.Brokers = splitList(v) })
	set("KAFKA_TOPIC", func(v string) { c.Kafka.Topic = v })

	set("LOG_LEVEL", func(v string) { c.LogLevel = v })
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Server.ListenPort <= 0 || c.Server.ListenPort > 65535 {
		return fmt.Errorf("监听端口无效: %d", c.Server.ListenPort)
	}
	if c.Data.BaseURL == "" && c.Data.CSVURL == "" {
		return fmt.Errorf("数据地址不能为空")
	}
	if c.Data.FetchTimeout <= 0 {
		return fmt.Errorf("请求超时无效: %s", c.Data.FetchTimeout)
	}
	if c.Data.PageSize <= 0 {
		return fmt.Errorf("分页大小无效: %d", c.Data.PageSize)
	}
	if c.Activity.Limit <= 0 {
		return fmt.Errorf("活动记录上限无效: %d", c.Activity.Limit)
	}
	if c.Data.RefreshCron != "" {
		if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).Parse(c.Data.RefreshCron); err != nil {
			return fmt.Errorf("刷新表达式无效: %w", err)
		}
	}
	return nil
}

// CSVURL 返回预测CSV地址，未单独配置时由基础地址拼接
func (c *Config) CSVURL() string {
	if c.Data.CSVURL != "" {
		return c.Data.CSVURL
	}
	return joinURL(c.Data.BaseURL, DefaultCSVFile)
}

// ImageURL 返回结果图片地址
func (c *Config) ImageURL(name string) string {
	return joinURL(c.Data.BaseURL, name)
}

// RedisEnabled 是否启用Redis分布式锁
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

// KafkaEnabled 是否启用Kafka发布
func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

func joinURL(base, name string) string {
	if base == "" {
		return name
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(name, "/")
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

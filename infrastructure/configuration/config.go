package configuration

import (
	"fmt"
	"os"
	"strconv"

	"youtube-gateway/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	YouTube     YouTube     `json:"youtube"`
	RateLimit   RateLimit   `json:"rateLimit"`
	Queue       Queue       `json:"queue"`
	Docs        Docs        `json:"docs"`
	Cors        Cors        `json:"cors"`
}

type App struct {
	Port int `json:"port"`
}

type Database struct {
	Psql Db `json:"psql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type YouTube struct {
	APIKey                  string `json:"apiKey"`
	BaseURL                 string `json:"baseURL"`
	VideoCacheTTLSeconds    int    `json:"videoCacheTTLSeconds"`
	CommentsCacheTTLSeconds int    `json:"commentsCacheTTLSeconds"`
}

type RateLimit struct {
	WindowSeconds int   `json:"windowSeconds"`
	MaxRequests   int64 `json:"maxRequests"`
}

// Queue selects the background job driver: redis (default), pubsub or servicebus.
type Queue struct {
	Driver     string     `json:"driver"`
	Pubsub     Pubsub     `json:"pubsub"`
	ServiceBus ServiceBus `json:"serviceBus"`
}

type Pubsub struct {
	ProjectID      string `json:"projectID"`
	SubscriptionID string `json:"subscriptionID"`
}

type ServiceBus struct {
	Namespace string `json:"namespace"`
	QueueName string `json:"queueName"`
}

// Docs holds the basic-auth credentials protecting the API docs endpoint
type Docs struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Cors struct {
	AllowOrigins []string `json:"allowOrigins"`
}

var C Config

func init() {
	LoadEnvFromFile("config.env", ".env")
	LoadConfig()
	initDatabase(&C)
	initRedis(&C)
	initYouTube(&C)
	initRateLimit(&C)
	initQueue(&C)
	initDocs(&C)
	initApp(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	if C.Database.Psql.Name == "" {
		C.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if C.Database.Psql.User == "" {
		C.Database.Psql.User = os.Getenv("DB_USER")
	}
	if C.Database.Psql.Password == "" {
		C.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = os.Getenv("DB_PORT")
	}
}

func initRedis(C *Config) {
	if C.RedisClient.Host == "" {
		C.RedisClient.Host = os.Getenv("REDIS_HOST")
	}
	if C.RedisClient.Host == "" {
		C.RedisClient.Host = "localhost"
	}
	if C.RedisClient.Port == "" {
		C.RedisClient.Port = os.Getenv("REDIS_PORT")
	}
	if C.RedisClient.Port == "" {
		C.RedisClient.Port = "6379"
	}
	if C.RedisClient.Username == "" {
		C.RedisClient.Username = os.Getenv("REDIS_USERNAME")
	}
	if C.RedisClient.Password == "" {
		C.RedisClient.Password = os.Getenv("REDIS_PASSWORD")
	}
}

func initYouTube(C *Config) {
	if C.YouTube.APIKey == "" {
		C.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if C.YouTube.APIKey == "" {
		logger.GetLogger().Warn("YouTube.APIKey not set; upstream calls will fail. Provide YOUTUBE_API_KEY via environment.")
	}
	if v := os.Getenv("VIDEO_CACHE_TTL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			C.YouTube.VideoCacheTTLSeconds = n
		}
	}
	if C.YouTube.VideoCacheTTLSeconds == 0 {
		C.YouTube.VideoCacheTTLSeconds = 3600
	}
	if v := os.Getenv("COMMENTS_CACHE_TTL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			C.YouTube.CommentsCacheTTLSeconds = n
		}
	}
	if C.YouTube.CommentsCacheTTLSeconds == 0 {
		C.YouTube.CommentsCacheTTLSeconds = 3600
	}
}

func initRateLimit(C *Config) {
	if v := os.Getenv("RATELIMIT_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			C.RateLimit.WindowSeconds = n
		}
	}
	if C.RateLimit.WindowSeconds == 0 {
		C.RateLimit.WindowSeconds = 3600
	}
	if v := os.Getenv("RATELIMIT_MAX"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			C.RateLimit.MaxRequests = n
		}
	}
	if C.RateLimit.MaxRequests == 0 {
		C.RateLimit.MaxRequests = 1000
	}
}

func initQueue(C *Config) {
	if v := os.Getenv("QUEUE_DRIVER"); v != "" {
		C.Queue.Driver = v
	}
	if C.Queue.Driver == "" {
		C.Queue.Driver = "redis"
	}
	if C.Queue.Pubsub.ProjectID == "" {
		C.Queue.Pubsub.ProjectID = os.Getenv("PUBSUB_PROJECT_ID")
	}
	if C.Queue.Pubsub.SubscriptionID == "" {
		C.Queue.Pubsub.SubscriptionID = os.Getenv("PUBSUB_SUBSCRIPTION_ID")
	}
	if C.Queue.ServiceBus.Namespace == "" {
		C.Queue.ServiceBus.Namespace = os.Getenv("SERVICEBUS_NAMESPACE")
	}
	if C.Queue.ServiceBus.QueueName == "" {
		C.Queue.ServiceBus.QueueName = os.Getenv("SERVICEBUS_QUEUE_NAME")
	}
}

func initDocs(C *Config) {
	if v := os.Getenv("SWAGGER_USER"); v != "" {
		C.Docs.Username = v
	}
	if C.Docs.Username == "" {
		C.Docs.Username = "admin"
	}
	if v := os.Getenv("SWAGGER_PASSWORD"); v != "" {
		C.Docs.Password = v
	}
	if C.Docs.Password == "" {
		C.Docs.Password = "test"
	}
}

func initApp(C *Config) {
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 3009
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 3009
	}
}

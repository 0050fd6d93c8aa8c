package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"yt-dashboard/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	Database    Database    `json:"database"`
	App         App         `json:"app"`
	RedisClient RedisClient `json:"redisClient"`
	Logger      Logger      `json:"logger"`
	YouTube     YouTube     `json:"youtube"`
	Session     Session     `json:"session"`
	Cors        Cors        `json:"cors"`
}

type App struct {
	Port        int    `json:"port"`
	TLSEnabled  bool   `json:"tlsEnabled"`
	TLSCertFile string `json:"tlsCertFile"`
	TLSKeyFile  string `json:"tlsKeyFile"`
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
	SSLMode  string `json:"sslMode"`
}

type RedisClient struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Password     string `json:"password"`
	DatabaseName string `json:"databaseName"`
	Username     string `json:"username"`
}

type Logger struct {
	Format string `json:"format"`
	Level  string `json:"level"`
}

type YouTube struct {
	APIKey            string  `json:"apiKey"`
	Endpoint          string  `json:"endpoint"`
	RequestsPerSecond float64 `json:"requestsPerSecond"`
	Burst             int     `json:"burst"`
	TimeoutSeconds    int     `json:"timeoutSeconds"`
}

// Session configures where pagination sessions live and how far the pager reaches
type Session struct {
	Store       string `json:"store"` // memory or redis
	PageBudget  int    `json:"pageBudget"`
	TTLMinutes  int    `json:"ttlMinutes"`
	MaxSessions int    `json:"maxSessions"`
}

type Cors struct {
	AllowOrigins []string `json:"allowOrigins"`
}

var C Config

func init() {
	LoadEnvFromFile(".env", "config.env")
	LoadConfig()
	initDatabase(&C)
	initRedis(&C)
	initApp(&C)
	initSession(&C)
	initLogger(&C)
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
	psql := &C.Database.Psql
	psql.Name = getConfigValue(psql.Name, "DB_NAME", "")
	psql.Host = getConfigValue(psql.Host, "DB_HOST", "")
	psql.Port = getConfigValue(psql.Port, "DB_PORT", "5432")
	psql.User = getConfigValue(psql.User, "DB_USER", "")
	psql.Password = getConfigValue(psql.Password, "DB_PASSWORD", "")
	psql.SSLMode = getConfigValue(psql.SSLMode, "DB_SSLMODE", "disable")
	logger.GetLogger().
		WithField("host", psql.Host).
		WithField("name", psql.Name).
		Info("Database configuration")
}

func initRedis(C *Config) {
	r := &C.RedisClient
	r.Host = getConfigValue(r.Host, "REDIS_HOST", "")
	r.Port = getConfigValue(r.Port, "REDIS_PORT", "6379")
	r.Password = getConfigValue(r.Password, "REDIS_PASSWORD", "")
	r.Username = getConfigValue(r.Username, "REDIS_USERNAME", "")
	r.DatabaseName = getConfigValue(r.DatabaseName, "REDIS_DB", "0")
}

func initApp(C *Config) {
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
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
		C.App.Port = 10001
	}
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			C.App.TLSEnabled = b
		}
	}
	C.App.TLSCertFile = getConfigValue(C.App.TLSCertFile, "TLS_CERT_FILE", "")
	C.App.TLSKeyFile = getConfigValue(C.App.TLSKeyFile, "TLS_KEY_FILE", "")
	if C.App.TLSEnabled {
		logger.GetLogger().WithFields(map[string]interface{}{"cert": C.App.TLSCertFile, "key": C.App.TLSKeyFile}).Info("TLS enabled via configuration")
	}

	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		C.Cors.AllowOrigins = splitList(v)
	}
	if len(C.Cors.AllowOrigins) == 0 {
		C.Cors.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
}

func initSession(C *Config) {
	s := &C.Session
	s.Store = strings.ToLower(getConfigValue(s.Store, "SESSION_STORE", "memory"))
	s.PageBudget = getIntValue(s.PageBudget, "SESSION_PAGE_BUDGET", 10)
	s.TTLMinutes = getIntValue(s.TTLMinutes, "SESSION_TTL_MINUTES", 30)
	s.MaxSessions = getIntValue(s.MaxSessions, "SESSION_MAX", 10000)
}

func initLogger(C *Config) {
	C.Logger.Level = getConfigValue(C.Logger.Level, "LOG_LEVEL", "")
	C.Logger.Format = getConfigValue(C.Logger.Format, "LOG_FORMAT", "")
	logger.Configure(C.Logger.Level, C.Logger.Format)
}

// PostgresConfigured reports whether enough is known to open the keyword log database
func (c Config) PostgresConfigured() bool {
	return c.Database.Psql.Host != "" && c.Database.Psql.Name != ""
}

// RedisAddr returns host:port, or "" when no redis host is configured
func (c Config) RedisAddr() string {
	if c.RedisClient.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", c.RedisClient.Host, c.RedisClient.Port)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

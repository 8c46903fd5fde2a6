package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}
type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name      string
	Env       string
	APIPrefix string
	HTTP      HTTP
	Admin     AdminHTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
	LeewaySec         int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSec   int    `mapstructure:"ttlsec"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
	SlowThresholdMs    int
}

type CORS struct {
	AllowOrigins []string
}

type Limits struct {
	RPS           float64
	Burst         int
	LoginRPS      float64
	LoginBurst    int
	MaxConcurrent int64
	MaxBodyBytes  int64
	TimeoutSec    int
}

type Config struct {
	App    App
	Log    Log
	JWT    JWT
	DB     DB
	Redis  Redis `mapstructure:"redis"`
	CORS   CORS
	Limits Limits
}

// Default is the configuration used when a key is absent from both file and env.
func Default() Config {
	return Config{
		App: App{
			Name:      "go-gin-gorm-blog",
			Env:       "local",
			APIPrefix: "/api/v1",
			HTTP:      HTTP{Host: "0.0.0.0", Port: 8080, ReadTimeoutSec: 5, WriteTimeoutSec: 10, IdleTimeoutSec: 60},
			Admin:     AdminHTTP{Host: "0.0.0.0", Port: 8081},
		},
		Log: Log{
			Level: "info",
			File:  LogFile{Filename: "logs/app.log", MaxSizeMB: 100, MaxBackups: 24, MaxAgeDays: 7},
		},
		JWT: JWT{Issuer: "go-gin-gorm-blog", AccessTokenTTLMin: 60 * 24 * 90},
		DB: DB{
			Driver:             "sqlite",
			DSN:                "file:blog.db?_foreign_keys=on",
			MaxOpenConns:       20,
			MaxIdleConns:       5,
			ConnMaxLifetimeMin: 30,
			AutoMigrate:        true,
			LogLevel:           "warn",
			SlowThresholdMs:    200,
		},
		Redis: Redis{TTLSec: 60},
		CORS: CORS{AllowOrigins: []string{
			"http://localhost",
			"http://localhost:4200",
			"http://localhost:3000",
			"http://localhost:8080",
		}},
		Limits: Limits{
			RPS: 200, Burst: 400,
			LoginRPS: 1, LoginBurst: 10,
			MaxConcurrent: 300,
			MaxBodyBytes:  16 << 20,
			TimeoutSec:    10,
		},
	}
}

// Load reads the YAML file at path (CONFIG_PATH or ./configs/config.local.yaml when empty),
// then applies APP_ prefixed env overrides such as APP_JWT_SECRET.
// A missing file is not an error; the defaults and env still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	setDefaults(v, Default())
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("config: jwt.secret is required (APP_JWT_SECRET)")
	}
	if c.JWT.AccessTokenTTLMin <= 0 {
		return errors.New("config: jwt.accesstokenttlmin must be positive")
	}
	switch c.DB.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("config: unsupported db.driver %q", c.DB.Driver)
	}
	return nil
}

// viper only resolves env vars for keys it already knows, so every key gets a default.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("app.name", d.App.Name)
	v.SetDefault("app.env", d.App.Env)
	v.SetDefault("app.apiprefix", d.App.APIPrefix)
	v.SetDefault("app.http.host", d.App.HTTP.Host)
	v.SetDefault("app.http.port", d.App.HTTP.Port)
	v.SetDefault("app.http.readtimeoutsec", d.App.HTTP.ReadTimeoutSec)
	v.SetDefault("app.http.writetimeoutsec", d.App.HTTP.WriteTimeoutSec)
	v.SetDefault("app.http.idletimeoutsec", d.App.HTTP.IdleTimeoutSec)
	v.SetDefault("app.admin.host", d.App.Admin.Host)
	v.SetDefault("app.admin.port", d.App.Admin.Port)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.file.enable", d.Log.File.Enable)
	v.SetDefault("log.file.filename", d.Log.File.Filename)
	v.SetDefault("log.file.maxsizemb", d.Log.File.MaxSizeMB)
	v.SetDefault("log.file.maxbackups", d.Log.File.MaxBackups)
	v.SetDefault("log.file.maxagedays", d.Log.File.MaxAgeDays)
	v.SetDefault("log.file.compress", d.Log.File.Compress)

	v.SetDefault("jwt.secret", d.JWT.Secret)
	v.SetDefault("jwt.issuer", d.JWT.Issuer)
	v.SetDefault("jwt.accesstokenttlmin", d.JWT.AccessTokenTTLMin)
	v.SetDefault("jwt.leewaysec", d.JWT.LeewaySec)

	v.SetDefault("db.driver", d.DB.Driver)
	v.SetDefault("db.dsn", d.DB.DSN)
	v.SetDefault("db.username", d.DB.Username)
	v.SetDefault("db.password", d.DB.Password)
	v.SetDefault("db.maxopenconns", d.DB.MaxOpenConns)
	v.SetDefault("db.maxidleconns", d.DB.MaxIdleConns)
	v.SetDefault("db.connmaxlifetimemin", d.DB.ConnMaxLifetimeMin)
	v.SetDefault("db.automigrate", d.DB.AutoMigrate)
	v.SetDefault("db.loglevel", d.DB.LogLevel)
	v.SetDefault("db.slowthresholdms", d.DB.SlowThresholdMs)

	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("redis.ttlsec", d.Redis.TTLSec)

	v.SetDefault("cors.alloworigins", d.CORS.AllowOrigins)

	v.SetDefault("limits.rps", d.Limits.RPS)
	v.SetDefault("limits.burst", d.Limits.Burst)
	v.SetDefault("limits.loginrps", d.Limits.LoginRPS)
	v.SetDefault("limits.loginburst", d.Limits.LoginBurst)
	v.SetDefault("limits.maxconcurrent", d.Limits.MaxConcurrent)
	v.SetDefault("limits.maxbodybytes", d.Limits.MaxBodyBytes)
	v.SetDefault("limits.timeoutsec", d.Limits.TimeoutSec)
}

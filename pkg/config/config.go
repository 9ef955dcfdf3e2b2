package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServiceName string
	LogLevel    string

	ServerPort    int
	SecureCookies bool

	DatabaseURL string

	JWTSecret []byte
	JWTTTL    time.Duration

	KafkaBrokers     []string
	KafkaTopicPrefix string

	RedisAddr string
	CacheTTL  time.Duration

	RelevelWorkers int
}

// Defaults registers fallback values on v. Environment variables always win
// because AutomaticEnv is enabled.
func Defaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "moonshop")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("KAFKA_TOPIC_PREFIX", "")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("RELEVEL_WORKERS", 4)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
}

func Load(v *viper.Viper) Config {
	if v == nil {
		v = viper.New()
	}
	Defaults(v)

	return Config{
		ServiceName: v.GetString("SERVICE_NAME"),
		LogLevel:    v.GetString("LOG_LEVEL"),

		ServerPort:    v.GetInt("SERVER_PORT"),
		SecureCookies: v.GetBool("COOKIE_SECURE"),

		DatabaseURL: v.GetString("DATABASE_URL"),

		JWTSecret: []byte(v.GetString("JWT_SECRET")),
		JWTTTL:    v.GetDuration("JWT_TTL"),

		KafkaBrokers:     CSV(v.GetString("KAFKA_BROKERS")),
		KafkaTopicPrefix: v.GetString("KAFKA_TOPIC_PREFIX"),

		RedisAddr: v.GetString("REDIS_ADDR"),
		CacheTTL:  v.GetDuration("CACHE_TTL"),

		RelevelWorkers: v.GetInt("RELEVEL_WORKERS"),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,         default=8080"`
	Env       string `env:"ENV,          default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	// JWTTTLHours is the identity token lifetime; 168h = 7 days.
	JWTTTLHours int    `env:"JWT_TTL_HOURS, default=168"`
	LogLevel    string `env:"LOG_LEVEL,    default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Uploads UploadsConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=markethub"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type UploadsConfig struct {
	// Storage selects the image store: "inline" keeps images as base64
	// data URIs inside the product document; "disk" writes files under
	// Dir and serves them at /uploads.
	Storage string `env:"IMAGE_STORAGE, default=inline"`
	Dir     string `env:"UPLOADS_DIR,   default=./uploads"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

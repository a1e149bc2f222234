package config

import "time"

// #nosec
const (
	EnvironmentVariableNotDefined = "%s variable is not defined"
	EnvironmentVariableMalformed  = "%s variable is malformed: %w"

	IsAtRemote  = "IS_AT_REMOTE"
	ServerPort  = "SERVER_PORT"
	Environment = "ENVIRONMENT"

	MongodbUri            = "MONGODB_URI"
	MongodbUsername       = "MONGODB_USERNAME"
	MongodbPassword       = "MONGODB_PASSWORD"
	MongodbDatabase       = "MONGODB_DATABASE"
	MongodbUserCollection = "MONGODB_USER_COLLECTION"

	RedisAddr     = "REDIS_ADDR"
	RedisPassword = "REDIS_PASSWORD"
	RedisDb       = "REDIS_DB"

	AccessTokenSecret  = "ACCESS_TOKEN_SECRET"
	RefreshTokenSecret = "REFRESH_TOKEN_SECRET"
)

const (
	EnvironmentProduction  = "production"
	EnvironmentDevelopment = "development"

	AccessTokenLifetime  = 15 * time.Minute
	RefreshTokenLifetime = 7 * 24 * time.Hour
)

type Config struct {
	ServerPort  string
	Environment string
	Mongodb     MongodbConfig
	Redis       RedisConfig
	Jwt         JwtConfig
}

type MongodbConfig struct {
	Uri         string
	Username    string
	Password    string
	Database    string
	Collections map[string]string
}

type RedisConfig struct {
	Addr     string
	Password string
	Db       int
}

type JwtConfig struct {
	AccessTokenSecret    []byte
	RefreshTokenSecret   []byte
	AccessTokenLifetime  time.Duration
	RefreshTokenLifetime time.Duration
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kr/pretty"
)

const redacted = "<redacted>"

func ReadConfig() (*Config, error) {
	serverPort := os.Getenv(ServerPort)
	if serverPort == "" {
		serverPort = "8080"
		fmt.Println("server port environment variable is empty its declared 8080 by default")
	}

	environment := os.Getenv(Environment)
	if environment == "" {
		environment = EnvironmentDevelopment
	}

	mongodbConfig, err := ReadMongoDbConfig()
	if err != nil {
		return nil, err
	}

	redisConfig, err := ReadRedisConfig()
	if err != nil {
		return nil, err
	}

	jwtConfig, err := ReadJwtConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:  serverPort,
		Environment: environment,
		Mongodb:     mongodbConfig,
		Redis:       redisConfig,
		Jwt:         jwtConfig,
	}, nil
}

// Print dumps the config with every credential replaced.
func (c *Config) Print() {
	printable := *c
	printable.Mongodb.Password = redacted
	printable.Redis.Password = redacted
	printable.Jwt.AccessTokenSecret = []byte(redacted)
	printable.Jwt.RefreshTokenSecret = []byte(redacted)
	_, _ = pretty.Println(printable)
}

func ReadMongoDbConfig() (MongodbConfig, error) {
	mongodbUri := os.Getenv(MongodbUri)
	if mongodbUri == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbUri)
	}

	mongodbUsername := os.Getenv(MongodbUsername)
	if mongodbUsername == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbUsername)
	}

	mongodbPassword := os.Getenv(MongodbPassword)
	if mongodbPassword == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbPassword)
	}

	mongodbDatabase := os.Getenv(MongodbDatabase)
	if mongodbDatabase == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbDatabase)
	}

	mongodbUserCollection := os.Getenv(MongodbUserCollection)
	if mongodbUserCollection == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbUserCollection)
	}

	return MongodbConfig{
		Uri:      mongodbUri,
		Username: mongodbUsername,
		Password: mongodbPassword,
		Database: mongodbDatabase,
		Collections: map[string]string{
			MongodbUserCollection: mongodbUserCollection,
		},
	}, nil
}

func ReadRedisConfig() (RedisConfig, error) {
	redisAddr := os.Getenv(RedisAddr)
	if redisAddr == "" {
		return RedisConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, RedisAddr)
	}

	redisDb := 0
	rawRedisDb := os.Getenv(RedisDb)
	if rawRedisDb != "" {
		var err error
		redisDb, err = strconv.Atoi(rawRedisDb)
		if err != nil {
			return RedisConfig{}, fmt.Errorf(EnvironmentVariableMalformed, RedisDb, err)
		}
	}

	return RedisConfig{
		Addr:     redisAddr,
		Password: os.Getenv(RedisPassword),
		Db:       redisDb,
	}, nil
}

func ReadJwtConfig() (JwtConfig, error) {
	accessTokenSecret := os.Getenv(AccessTokenSecret)
	if accessTokenSecret == "" {
		return JwtConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, AccessTokenSecret)
	}

	refreshTokenSecret := os.Getenv(RefreshTokenSecret)
	if refreshTokenSecret == "" {
		return JwtConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, RefreshTokenSecret)
	}

	return JwtConfig{
		AccessTokenSecret:    []byte(accessTokenSecret),
		RefreshTokenSecret:   []byte(refreshTokenSecret),
		AccessTokenLifetime:  AccessTokenLifetime,
		RefreshTokenLifetime: RefreshTokenLifetime,
	}, nil
}

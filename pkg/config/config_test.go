//go:build unit

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setMongoDbEnvironment() {
	os.Setenv(MongodbUri, "database-uri")
	os.Setenv(MongodbUsername, "database-username")
	os.Setenv(MongodbPassword, "database-password")
	os.Setenv(MongodbDatabase, "database-database")
	os.Setenv(MongodbUserCollection, "database-user-collection")
}

func setJwtEnvironment() {
	os.Setenv(AccessTokenSecret, "access-token-secret")
	os.Setenv(RefreshTokenSecret, "refresh-token-secret")
}

func TestReadConfig(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		os.Setenv(ServerPort, "3000")
		os.Setenv(Environment, EnvironmentProduction)
		os.Setenv(RedisAddr, "localhost:6379")
		setMongoDbEnvironment()
		setJwtEnvironment()
		defer os.Clearenv()

		config, err := ReadConfig()

		require.NoError(t, err)
		assert.Equal(t, "3000", config.ServerPort)
		assert.True(t, config.IsProduction())
		assert.Equal(t, AccessTokenLifetime, config.Jwt.AccessTokenLifetime)
		assert.Equal(t, RefreshTokenLifetime, config.Jwt.RefreshTokenLifetime)
	})

	t.Run("when server port and environment are empty should use defaults", func(t *testing.T) {
		os.Setenv(RedisAddr, "localhost:6379")
		setMongoDbEnvironment()
		setJwtEnvironment()
		defer os.Clearenv()

		config, err := ReadConfig()

		require.NoError(t, err)
		assert.Equal(t, "8080", config.ServerPort)
		assert.Equal(t, EnvironmentDevelopment, config.Environment)
		assert.False(t, config.IsProduction())
	})

	t.Run("when redis address is empty should return error", func(t *testing.T) {
		setMongoDbEnvironment()
		setJwtEnvironment()
		defer os.Clearenv()

		config, err := ReadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
	})
}

func TestReadMongoDbConfig(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		setMongoDbEnvironment()
		defer os.Clearenv()

		mongoConfig, err := ReadMongoDbConfig()

		assert.NoError(t, err)
		assert.Equal(t, "database-user-collection", mongoConfig.Collections[MongodbUserCollection])
	})

	t.Run("when password is empty should return error", func(t *testing.T) {
		setMongoDbEnvironment()
		os.Unsetenv(MongodbPassword)
		defer os.Clearenv()

		_, err := ReadMongoDbConfig()

		assert.EqualError(t, err, "MONGODB_PASSWORD variable is not defined")
	})
}

func TestReadRedisConfig(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		os.Setenv(RedisAddr, "localhost:6379")
		os.Setenv(RedisDb, "2")
		defer os.Clearenv()

		redisConfig, err := ReadRedisConfig()

		assert.NoError(t, err)
		assert.Equal(t, 2, redisConfig.Db)
	})

	t.Run("when redis db is not a number should return error", func(t *testing.T) {
		os.Setenv(RedisAddr, "localhost:6379")
		os.Setenv(RedisDb, "two")
		defer os.Clearenv()

		_, err := ReadRedisConfig()

		assert.Error(t, err)
	})
}

func TestReadJwtConfig(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		setJwtEnvironment()
		defer os.Clearenv()

		jwtConfig, err := ReadJwtConfig()

		assert.NoError(t, err)
		assert.Equal(t, []byte("access-token-secret"), jwtConfig.AccessTokenSecret)
		assert.Equal(t, []byte("refresh-token-secret"), jwtConfig.RefreshTokenSecret)
	})

	t.Run("when refresh token secret is empty should return error", func(t *testing.T) {
		os.Setenv(AccessTokenSecret, "access-token-secret")
		defer os.Clearenv()

		_, err := ReadJwtConfig()

		assert.EqualError(t, err, "REFRESH_TOKEN_SECRET variable is not defined")
	})
}

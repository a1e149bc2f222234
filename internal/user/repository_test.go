//go:build integration

package user

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"auth-api/pkg/cerror"
	"auth-api/pkg/config"
)

const (
	TestMongoDbUserName = "root"
	TestMongoDbPassword = "12345"

	TestMongoDbDatabaseName   = "auth"
	TestMongoDbUserCollection = "users"
)

func TestNewRepository(t *testing.T) {
	userRepository := NewRepository(nil, config.MongodbConfig{})

	assert.Implements(t, (*Repository)(nil), userRepository)
}

func TestNewMongodbClient(t *testing.T) {
	t.Run("when server is unreachable should return error", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		_, err := NewMongodbClient(ctx, config.MongodbConfig{
			Uri:      "mongodb://localhost:1",
			Username: TestMongoDbUserName,
			Password: TestMongoDbPassword,
		})

		assert.Error(t, err)
	})
}

func TestRepository_InsertUser(t *testing.T) {
	ctx := context.Background()
	userRepository := setupRepository(t, ctx)

	t.Run("happy path", func(t *testing.T) {
		userDocument := newRepositoryTestUser("insert@x.com")

		userId, err := userRepository.InsertUser(ctx, userDocument)

		assert.NoError(t, err)
		assert.Equal(t, userDocument.Id, userId)
	})

	t.Run("when email already exists should return conflict", func(t *testing.T) {
		_, err := userRepository.InsertUser(ctx, newRepositoryTestUser("dup@x.com"))
		require.NoError(t, err)

		_, err = userRepository.InsertUser(ctx, newRepositoryTestUser("DUP@x.com"))

		assert.ErrorIs(t, err, cerror.ErrorConflict)
	})
}

func TestRepository_FindUserWithEmail(t *testing.T) {
	ctx := context.Background()
	userRepository := setupRepository(t, ctx)

	userDocument := newRepositoryTestUser("find@x.com")
	_, err := userRepository.InsertUser(ctx, userDocument)
	require.NoError(t, err)

	t.Run("happy path", func(t *testing.T) {
		found, err := userRepository.FindUserWithEmail(ctx, " Find@X.com ")

		require.NoError(t, err)
		assert.Equal(t, userDocument.Id, found.Id)
		assert.Equal(t, userDocument.Password, found.Password)
		assert.Equal(t, RoleUser, found.Role)
	})

	t.Run("when user does not exist should return not found", func(t *testing.T) {
		_, err := userRepository.FindUserWithEmail(ctx, "nobody@x.com")

		assert.ErrorIs(t, err, cerror.ErrorUserNotFound)
	})
}

func TestRepository_FindUserWithId(t *testing.T) {
	ctx := context.Background()
	userRepository := setupRepository(t, ctx)

	userDocument := newRepositoryTestUser("byid@x.com")
	_, err := userRepository.InsertUser(ctx, userDocument)
	require.NoError(t, err)

	t.Run("happy path", func(t *testing.T) {
		found, err := userRepository.FindUserWithId(ctx, userDocument.Id)

		require.NoError(t, err)
		assert.Equal(t, userDocument.Email, found.Email)
	})

	t.Run("when user does not exist should return not found", func(t *testing.T) {
		_, err := userRepository.FindUserWithId(ctx, uuid.New().String())

		assert.ErrorIs(t, err, cerror.ErrorUserNotFound)
	})

	t.Run("when client is disconnected should return store unavailable", func(t *testing.T) {
		mongoClient, err := NewMongodbClient(ctx, mongodbTestConfig(t, ctx))
		require.NoError(t, err)
		require.NoError(t, mongoClient.Disconnect(ctx))

		disconnectedRepository := NewRepository(mongoClient, mongodbTestConfig(t, ctx))
		_, err = disconnectedRepository.FindUserWithId(ctx, userDocument.Id)

		assert.ErrorIs(t, err, cerror.ErrorStoreUnavailable)
	})
}

func newRepositoryTestUser(email string) *UserDocument {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &UserDocument{
		Id:        uuid.New().String(),
		Name:      "Alice",
		Email:     email,
		Password:  "$2a$10$hash",
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

var mongoDbContainer testcontainers.Container

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	mongoDbContainer, err = setupMongoDbContainer(ctx)
	if err != nil {
		log.Fatalf("failed to start mongodb container: %s", err)
	}

	code := m.Run()

	if err := mongoDbContainer.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

func mongodbTestConfig(t *testing.T, ctx context.Context) config.MongodbConfig {
	t.Helper()

	mongodbUri, err := mongoDbContainer.Endpoint(ctx, "mongodb")
	require.NoError(t, err)

	return config.MongodbConfig{
		Uri:      mongodbUri,
		Username: TestMongoDbUserName,
		Password: TestMongoDbPassword,
		Database: TestMongoDbDatabaseName,
		Collections: map[string]string{
			config.MongodbUserCollection: TestMongoDbUserCollection,
		},
	}
}

func setupRepository(t *testing.T, ctx context.Context) Repository {
	t.Helper()

	mongodbConfig := mongodbTestConfig(t, ctx)
	mongoClient, err := NewMongodbClient(ctx, mongodbConfig)
	require.NoError(t, err)

	t.Cleanup(func() {
		err := mongoClient.Database(TestMongoDbDatabaseName).Drop(ctx)
		assert.NoError(t, err)
		_ = mongoClient.Disconnect(ctx)
	})

	userRepository := NewRepository(mongoClient, mongodbConfig)
	require.NoError(t, userRepository.EnsureIndexes(ctx))
	return userRepository
}

func setupMongoDbContainer(ctx context.Context) (testcontainers.Container, error) {
	req := testcontainers.ContainerRequest{
		Image: "mongo",
		Env: map[string]string{
			"MONGO_INITDB_ROOT_USERNAME": TestMongoDbUserName,
			"MONGO_INITDB_ROOT_PASSWORD": TestMongoDbPassword,
		},
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Waiting for connections"),
			wait.ForListeningPort("27017/tcp"),
		),
	}

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

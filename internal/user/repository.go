package user

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=user

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"auth-api/pkg/cerror"
	"auth-api/pkg/config"
)

type Repository interface {
	EnsureIndexes(ctx context.Context) error
	InsertUser(ctx context.Context, user *UserDocument) (string, error)
	FindUserWithId(ctx context.Context, userId string) (*UserDocument, error)
	FindUserWithEmail(ctx context.Context, email string) (*UserDocument, error)
}

type repository struct {
	mongoClient   *mongo.Client
	mongodbConfig config.MongodbConfig
}

func NewRepository(mongoClient *mongo.Client, mongodbConfig config.MongodbConfig) Repository {
	return &repository{
		mongoClient:   mongoClient,
		mongodbConfig: mongodbConfig,
	}
}

func NewMongodbClient(ctx context.Context, mongodbConfig config.MongodbConfig) (*mongo.Client, error) {
	mongodbCredential := options.Credential{
		Username: mongodbConfig.Username,
		Password: mongodbConfig.Password,
	}
	mongodbServerAPIOptions := options.ServerAPI(options.ServerAPIVersion1)
	credentials := options.Client().
		ApplyURI(mongodbConfig.Uri).
		SetAuth(mongodbCredential).
		SetServerAPIOptions(mongodbServerAPIOptions)

	mongodbClient, err := mongo.Connect(ctx, credentials)
	if err != nil {
		return nil, err
	}

	err = mongodbClient.Ping(ctx, nil)
	if err != nil {
		_ = mongodbClient.Disconnect(ctx)
		return nil, err
	}

	return mongodbClient, nil
}

func (r *repository) collection() *mongo.Collection {
	return r.mongoClient.
		Database(r.mongodbConfig.Database).
		Collection(r.mongodbConfig.Collections[config.MongodbUserCollection])
}

// EnsureIndexes creates the unique email index. InsertUser relies on it to
// reject a duplicate that slips past the existence check under concurrency.
func (r *repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return cerror.ErrorStoreUnavailable.WithFields(
			zap.String("operation", "create email index"),
			zap.Error(err),
		)
	}

	return nil
}

func (r *repository) InsertUser(ctx context.Context, user *UserDocument) (string, error) {
	user.Email = NormalizeEmail(user.Email)

	result, err := r.collection().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", cerror.ErrorConflict.WithFields(zap.Error(err))
		}

		return "", cerror.ErrorStoreUnavailable.WithFields(
			zap.String("operation", "insert user"),
			zap.Error(err),
		)
	}

	userId, ok := result.InsertedID.(string)
	if !ok {
		return "", cerror.NewError(
			http.StatusInternalServerError,
			"error occurred while type casting for user id",
		)
	}

	return userId, nil
}

func (r *repository) FindUserWithEmail(ctx context.Context, email string) (*UserDocument, error) {
	filter := bson.D{{Key: "email", Value: NormalizeEmail(email)}}
	return r.findOne(ctx, filter, "find user with email")
}

func (r *repository) FindUserWithId(ctx context.Context, userId string) (*UserDocument, error) {
	filter := bson.D{{Key: "_id", Value: userId}}
	return r.findOne(ctx, filter, "find user with id")
}

func (r *repository) findOne(ctx context.Context, filter bson.D, operation string) (*UserDocument, error) {
	var user UserDocument

	err := r.collection().FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cerror.ErrorUserNotFound
		}

		return nil, cerror.ErrorStoreUnavailable.WithFields(
			zap.String("operation", operation),
			zap.Error(err),
		)
	}

	return &user, nil
}

package services

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/withu/backend/internal/models"
)

// UserService handles auth accounts: registration, credential checks,
// lookups. Profiles live in ProfileService, keyed by the IDs minted here.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type MongoUserService struct {
	client   *mongo.Client
	db       *mongo.Database
	usersCol *mongo.Collection
}

func NewMongoUserService(ctx context.Context, mongoURI, dbName string) (*MongoUserService, error) {
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	col := db.Collection("users")

	// Best-effort unique index; duplicates are also caught on insert.
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoUserService{client: client, db: db, usersCol: col}, nil
}

func (s *MongoUserService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoUserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         strings.TrimSpace(req.Name),
		CreatedAt:    time.Now(),
	}

	if _, err := s.usersCol.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

func (s *MongoUserService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := s.usersCol.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return &user, nil
}

func (s *MongoUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.usersCol.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/kunal8987/Astrape-assignment/pkg/models"
)

const usersCollection = "users"

var ErrUsernameTaken = errors.New("username already exists")

func CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	collection := GetCollection(usersCollection)

	if _, err := collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

func GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	collection := GetCollection(usersCollection)

	var user models.User
	if err := collection.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	collection := GetCollection(usersCollection)

	var user models.User
	if err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

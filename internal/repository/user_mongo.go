package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jeelTecheniac/chat-demo-backend/internal/models"
)

type userMongoRepository struct {
	collection *mongo.Collection
}

func NewUserMongoRepository(col *mongo.Collection) UserRepository {
	return &userMongoRepository{collection: col}
}

func (r *userMongoRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.JoinedOrganizations == nil {
		user.JoinedOrganizations = []primitive.ObjectID{}
	}
	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (r *userMongoRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var user models.User
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userMongoRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userMongoRepository) GetManyByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objIDs = append(objIDs, objID)
	}
	cur, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.User
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	return out, cur.Err()
}

func (r *userMongoRepository) AddJoinedOrganization(ctx context.Context, userID, orgID string) error {
	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}
	orgObjID, err := primitive.ObjectIDFromHex(orgID)
	if err != nil {
		return err
	}
	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": userObjID},
		bson.M{
			"$addToSet": bson.M{"joined_organizations": orgObjID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		})
	return err
}

func (r *userMongoRepository) Search(ctx context.Context, name string, orgIDs, excludeIDs []string) ([]*models.User, error) {
	orgObjIDs := make([]primitive.ObjectID, 0, len(orgIDs))
	for _, id := range orgIDs {
		if objID, err := primitive.ObjectIDFromHex(id); err == nil {
			orgObjIDs = append(orgObjIDs, objID)
		}
	}
	excludeObjIDs := make([]primitive.ObjectID, 0, len(excludeIDs))
	for _, id := range excludeIDs {
		if objID, err := primitive.ObjectIDFromHex(id); err == nil {
			excludeObjIDs = append(excludeObjIDs, objID)
		}
	}

	filter := bson.M{
		"_id":                  bson.M{"$nin": excludeObjIDs},
		"name":                 bson.M{"$regex": regexp.QuoteMeta(name), "$options": "i"},
		"joined_organizations": bson.M{"$in": orgObjIDs},
	}
	cur, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.User
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	return out, cur.Err()
}

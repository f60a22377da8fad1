package storage

import (
	"context"
	"errors"

	"idea-portal/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const ideasDocumentID = "ideas"

type ideasDocument struct {
	ID    string        `bson:"_id"`
	Ideas []models.Idea `bson:"ideas"`
}

// MongoStore keeps the collection as one document so every save replaces
// the full list, same as the file store.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{
		collection: collection,
	}
}

func (s *MongoStore) Load(ctx context.Context) ([]models.Idea, error) {
	var doc ideasDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": ideasDocumentID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []models.Idea{}, nil
		}
		return nil, &Error{Op: "load", Err: err}
	}
	if doc.Ideas == nil {
		doc.Ideas = []models.Idea{}
	}
	return doc.Ideas, nil
}

func (s *MongoStore) Save(ctx context.Context, ideas []models.Idea) error {
	if ideas == nil {
		ideas = []models.Idea{}
	}
	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": ideasDocumentID},
		ideasDocument{ID: ideasDocumentID, Ideas: ideas},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return &Error{Op: "save", Err: err}
	}
	return nil
}

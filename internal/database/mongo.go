package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

var (
	DB     *mongo.Database
	client *mongo.Client
)

// Connect is only used when ideas are stored in MongoDB.
func Connect(uri, dbName string, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri)
	c, err := mongo.Connect(clientOpts)
	if err != nil {
		return err
	}

	// Ping the database to verify connection
	if err := c.Ping(ctx, nil); err != nil {
		_ = c.Disconnect(ctx)
		return err
	}

	client = c
	DB = c.Database(dbName)
	logger.Info("connected to MongoDB", zap.String("database", dbName))
	return nil
}

func GetCollection(name string) *mongo.Collection {
	return DB.Collection(name)
}

func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

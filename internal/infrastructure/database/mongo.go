package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const avatarBucket = "avatars"

// MongoDBClient holds the connection used for binary file storage.
type MongoDBClient struct {
	Client   *mongo.Client
	Database *mongo.Database
	Avatars  *gridfs.Bucket
}

func NewMongoDBClient(uri, dbName string) (*MongoDBClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(dbName)
	bucket, err := gridfs.NewBucket(database, options.GridFSBucket().SetName(avatarBucket))
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create GridFS bucket: %w", err)
	}
	return &MongoDBClient{Client: client, Database: database, Avatars: bucket}, nil
}

func (mc *MongoDBClient) Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return mc.Client.Disconnect(ctx)
}

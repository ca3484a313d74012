package utils

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the shared MongoDB client, set once at startup.
var MongoClient *mongo.Client

// InitMongoClient connects the shared client. Options come in explicitly
// so this package never reads the environment.
func InitMongoClient(uri string, maxPool, minPool uint64, maxConnIdleTime time.Duration, retryWrites bool) error {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(maxPool).
		SetMinPoolSize(minPool).
		SetMaxConnIdleTime(maxConnIdleTime).
		SetRetryWrites(retryWrites)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	MongoClient = client
	log.Println("Connected to MongoDB")
	return nil
}

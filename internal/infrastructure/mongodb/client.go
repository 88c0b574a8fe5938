package mongodb

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect establishes a MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

// substringFilter turns a field→substring map into a case-insensitive
// regex filter, AND-composed across fields. An empty map matches everything.
func substringFilter(filter map[string]string) bson.M {
	q := bson.M{}
	for field, value := range filter {
		q[field] = bson.M{
			"$regex":   ".*" + regexp.QuoteMeta(value) + ".*",
			"$options": "i",
		}
	}
	return q
}

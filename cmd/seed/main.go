package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bloggyhq/bloggy/config"
	"github.com/bloggyhq/bloggy/internal/domain/entity"
	"github.com/bloggyhq/bloggy/internal/infrastructure/mongodb"
	"github.com/bloggyhq/bloggy/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.MongoURL)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDatabase)

	email := "demo@bloggy.com"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now().UTC()
	user := entity.User{
		FirstName:    "Demo",
		LastName:     "User",
		Email:        email,
		PasswordHash: hash,
		DateOfBirth:  "01/01/2000",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	opts := options.Update().SetUpsert(true)
	res, err := db.Collection("users").UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": user},
		opts,
	)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: email=%s password=%s (matched=%d upserted=%v)\n",
		email, password, res.MatchedCount, res.UpsertedID)
}

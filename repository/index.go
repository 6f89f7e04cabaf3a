package repository

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the indexes the notes collection relies on. It is idempotent.
func SetupIndexes(ctx context.Context, notesCollection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	noteIndexes := []mongo.IndexModel{
		// Titles are unique, duplicates are rejected with ErrDuplicateTitle
		{
			Keys: bson.D{{Key: "title", Value: 1}},
			Options: options.Index().
				SetName("title_unique").
				SetUnique(true),
		},
		// Backs the list ordering
		{
			Keys: bson.D{
				{Key: "createdAt", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().
				SetName("created_at_order"),
		},
	}

	names, err := notesCollection.Indexes().CreateMany(ctx, noteIndexes)
	if err != nil {
		return fmt.Errorf("failed to create notes indexes: %w", err)
	}

	log.WithField("indexes", names).Info("notes indexes ready")
	return nil
}

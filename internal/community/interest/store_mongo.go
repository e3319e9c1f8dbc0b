// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package interest

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/comuna-ec/comuna/internal/platform/apperr"
	"github.com/comuna-ec/comuna/internal/platform/constants"
	"github.com/comuna-ec/comuna/internal/platform/mongodb"
	"github.com/comuna-ec/comuna/pkg/paging"
)

// MongoStore implements [Store] backed by the areas_of_interest collection.
type MongoStore struct {
	collection *mongo.Collection
}

// NewStore creates a Mongo-backed [Store].
func NewStore(database *mongo.Database) *MongoStore {
	return &MongoStore{
		collection: database.Collection(constants.CollectionAreasOfInterest),
	}
}

// Create inserts a new catalog entry. A duplicate slug maps to a Conflict.
func (store *MongoStore) Create(context context.Context, area *AreaOfInterest) error {
	if _, err := store.collection.InsertOne(context, area); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("An area of interest with this name already exists")
		}
		return fmt.Errorf("mongo_interest_create_failed: %w", err)
	}
	return nil
}

// FindBySlug returns the entry with the given URL slug.
func (store *MongoStore) FindBySlug(context context.Context, slug string) (*AreaOfInterest, error) {
	var area AreaOfInterest

	err := store.collection.FindOne(context, bson.D{{Key: "slug", Value: slug}}).Decode(&area)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Area of interest")
		}
		return nil, fmt.Errorf("mongo_interest_find_failed: %w", err)
	}

	return &area, nil
}

// List returns one page of the catalog via the shared paged query engine.
func (store *MongoStore) List(context context.Context, request paging.Request) (paging.Response[AreaOfInterest], error) {
	filter := mongodb.SearchFilter(request.Search, "name", "description")
	return mongodb.FindPage[AreaOfInterest](context, store.collection, request, filter, nil)
}

// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package member

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/comuna-ec/comuna/internal/platform/constants"
	"github.com/comuna-ec/comuna/internal/platform/mongodb"
	"github.com/comuna-ec/comuna/pkg/paging"
)

// MongoStore implements [Store] backed by the community_members collection.
type MongoStore struct {
	collection *mongo.Collection
}

// NewStore creates a Mongo-backed [Store].
func NewStore(database *mongo.Database) *MongoStore {
	return &MongoStore{
		collection: database.Collection(constants.CollectionCommunityMembers),
	}
}

// Create inserts a new registry entry.
func (store *MongoStore) Create(context context.Context, member *Member) error {
	if _, err := store.collection.InsertOne(context, member); err != nil {
		return fmt.Errorf("mongo_member_create_failed: %w", err)
	}
	return nil
}

// List returns one page of the registry via the shared paged query engine.
func (store *MongoStore) List(context context.Context, request paging.Request) (paging.Response[Member], error) {
	filter := mongodb.SearchFilter(request.Search, "fullName", "email")
	return mongodb.FindPage[Member](context, store.collection, request, filter, nil)
}

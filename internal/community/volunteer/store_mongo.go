// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package volunteer

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

// MongoStore implements [Store] backed by the volunteer_applications collection.
type MongoStore struct {
	collection *mongo.Collection
}

// NewStore creates a Mongo-backed [Store].
func NewStore(database *mongo.Database) *MongoStore {
	return &MongoStore{
		collection: database.Collection(constants.CollectionVolunteerApplications),
	}
}

// Create inserts a new application. A duplicate email maps to a Conflict.
func (store *MongoStore) Create(context context.Context, application *Application) error {
	if _, err := store.collection.InsertOne(context, application); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("An application with this email already exists")
		}
		return fmt.Errorf("mongo_volunteer_create_failed: %w", err)
	}
	return nil
}

// FindByEmail returns the application submitted under the given email.
func (store *MongoStore) FindByEmail(context context.Context, email string) (*Application, error) {
	var application Application

	err := store.collection.FindOne(context, bson.D{{Key: "email", Value: email}}).Decode(&application)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Volunteer application")
		}
		return nil, fmt.Errorf("mongo_volunteer_find_failed: %w", err)
	}

	return &application, nil
}

// List returns one page of applications via the shared paged query engine.
func (store *MongoStore) List(context context.Context, request paging.Request, filter ListFilter) (paging.Response[Application], error) {
	search := mongodb.SearchFilter(request.Search, "fullName", "email", "city")

	var areas bson.D
	if len(filter.Areas) > 0 {
		areas = bson.D{{Key: "areasOfInterest", Value: bson.D{{Key: "$in", Value: filter.Areas}}}}
	}

	return mongodb.FindPage[Application](context, store.collection, request, mongodb.And(search, areas), nil)
}

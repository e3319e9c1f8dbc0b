// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/comuna-ec/comuna/internal/platform/apperr"
	"github.com/comuna-ec/comuna/internal/platform/constants"
)

// MongoAccountStore implements [AccountStore] backed by the users collection.
type MongoAccountStore struct {
	collection *mongo.Collection
}

// NewAccountStore creates a Mongo-backed [AccountStore].
func NewAccountStore(database *mongo.Database) *MongoAccountStore {
	return &MongoAccountStore{
		collection: database.Collection(constants.CollectionUsers),
	}
}

/*
FindByID returns the account document with the given _id.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Account: Hydrated entity
  - error: apperr.NotFound or driver failures
*/
func (store *MongoAccountStore) FindByID(context context.Context, id string) (*Account, error) {
	return store.findOne(context, bson.D{{Key: "_id", Value: id}})
}

/*
FindByEmail returns the account document with the given email.

Description: Emails are normalized to lowercase before storage, so an exact
match here behaves as a case-insensitive lookup for callers that normalize
the same way.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Account: Hydrated entity
  - error: apperr.NotFound or driver failures
*/
func (store *MongoAccountStore) FindByEmail(context context.Context, email string) (*Account, error) {
	return store.findOne(context, bson.D{{Key: "email", Value: email}})
}

/*
FindByRefreshToken returns the account owning the given opaque token.

Description: Matches any embedded token record regardless of its revoked or
expired state; liveness checks belong to the service layer, which needs the
full record to distinguish reuse from rotation.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *Account: Hydrated entity
  - error: apperr.NotFound or driver failures
*/
func (store *MongoAccountStore) FindByRefreshToken(context context.Context, token string) (*Account, error) {
	return store.findOne(context, bson.D{{Key: "refreshTokens.token", Value: token}})
}

/*
Create inserts a brand-new account document.

Parameters:
  - context: context.Context
  - account: *Account

Returns:
  - error: apperr.Conflict on a duplicate email, or driver failures
*/
func (store *MongoAccountStore) Create(context context.Context, account *Account) error {
	if _, err := store.collection.InsertOne(context, account); err != nil {
		// Unique index on email backs the registration uniqueness rule.
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("Email is already registered")
		}
		return fmt.Errorf("mongo_account_create_failed: %w", err)
	}
	return nil
}

/*
Replace overwrites the stored document with the given account state.

Parameters:
  - context: context.Context
  - account: *Account

Returns:
  - error: apperr.NotFound if no document matched, or driver failures
*/
func (store *MongoAccountStore) Replace(context context.Context, account *Account) error {
	filter := bson.D{{Key: "_id", Value: account.ID}}

	result, err := store.collection.ReplaceOne(context, filter, account)
	if err != nil {
		return fmt.Errorf("mongo_account_replace_failed: %w", err)
	}

	if result.MatchedCount == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}

/*
ReplaceIfTokenActive overwrites the stored document only if the guarding
refresh token is STILL active in the stored document.

Description: The filter pins both the _id and an $elemMatch over the embedded
token list requiring the token to be unrevoked and unexpired at write time.
A concurrent rotation that already revoked the token makes the filter match
nothing, and the caller gets [ErrTokenNoLongerActive] instead of a silent
double-spend.

Parameters:
  - context: context.Context
  - account: *Account
  - token: string

Returns:
  - error: ErrTokenNoLongerActive on a lost race, or driver failures
*/
func (store *MongoAccountStore) ReplaceIfTokenActive(context context.Context, account *Account, token string) error {
	filter := bson.D{
		{Key: "_id", Value: account.ID},
		{Key: "refreshTokens", Value: bson.D{{Key: "$elemMatch", Value: bson.D{
			{Key: "token", Value: token},
			{Key: "revokedAt", Value: bson.D{{Key: "$exists", Value: false}}},
			{Key: "expiresAt", Value: bson.D{{Key: "$gt", Value: time.Now().UTC()}}},
		}}}},
	}

	result, err := store.collection.ReplaceOne(context, filter, account)
	if err != nil {
		return fmt.Errorf("mongo_account_guarded_replace_failed: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrTokenNoLongerActive
	}

	return nil
}

// findOne runs a single-document query and maps the no-document case to a
// client-safe NotFound.
func (store *MongoAccountStore) findOne(context context.Context, filter bson.D) (*Account, error) {
	var account Account

	err := store.collection.FindOne(context, filter).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("mongo_account_find_failed: %w", err)
	}

	return &account, nil
}

// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package mongodb

import (
	stdctx "context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/comuna-ec/comuna/pkg/paging"
)

// FindPage runs the shared two-step paged query against a collection.
//
// # Flow
//  1. Count documents matching the filter (the count always reflects the
//     full filtered set, not the returned slice).
//  2. Fetch the requested page with sort, skip, and limit applied.
//
// Both steps must succeed; a failure in either is returned to the caller
// rather than silently degraded into an empty page.
//
// # Parameters
//   - context: Request-scoped context.
//   - collection: Target collection.
//   - request: Parsed paging, search, and sort parameters.
//   - filter: Match criteria. Pass bson.D{} for "all documents".
//   - sort: Sort specification. Pass nil to use the request's SortBy/SortOrder.
func FindPage[T any](
	context stdctx.Context,
	collection *mongo.Collection,
	request paging.Request,
	filter bson.D,
	sort bson.D,
) (paging.Response[T], error) {

	var empty paging.Response[T]

	if filter == nil {
		filter = bson.D{}
	}

	// ── 1. Count ──────────────────────────────────────────────────────────
	totalCount, err := collection.CountDocuments(context, filter)
	if err != nil {
		return empty, fmt.Errorf("mongodb: paged count failed: %w", err)
	}

	// ── 2. Fetch page ─────────────────────────────────────────────────────
	if sort == nil {
		sort = SortFromRequest(request)
	}

	findOptions := options.Find().
		SetSort(sort).
		SetSkip(int64(request.Skip())).
		SetLimit(int64(request.PageSize))

	cursor, err := collection.Find(context, filter, findOptions)
	if err != nil {
		return empty, fmt.Errorf("mongodb: paged find failed: %w", err)
	}
	defer cursor.Close(context)

	var items []T
	if err := cursor.All(context, &items); err != nil {
		return empty, fmt.Errorf("mongodb: paged decode failed: %w", err)
	}

	return paging.NewResponse(items, totalCount, request), nil
}

// SortFromRequest converts a request's SortBy/SortOrder into a Mongo sort
// document. An empty SortBy falls back to insertion order by _id so pages
// remain stable between calls.
func SortFromRequest(request paging.Request) bson.D {
	field := request.SortBy
	if field == "" {
		field = "_id"
	}

	direction := 1
	if request.Descending() {
		direction = -1
	}

	return bson.D{{Key: field, Value: direction}}
}

// SearchFilter builds a case-insensitive substring match across the given
// fields. The search term is regex-quoted so user input can never inject
// operator syntax. An empty term yields an empty filter (match all).
func SearchFilter(term string, fields ...string) bson.D {
	if term == "" || len(fields) == 0 {
		return bson.D{}
	}

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}

	clauses := make(bson.A, 0, len(fields))
	for _, field := range fields {
		clauses = append(clauses, bson.D{{Key: field, Value: pattern}})
	}

	return bson.D{{Key: "$or", Value: clauses}}
}

// And merges filter documents, skipping empty ones. It returns an empty
// filter when nothing remains, and the single filter unwrapped when only
// one remains, so simple queries don't pay for an $and wrapper.
func And(filters ...bson.D) bson.D {
	var nonEmpty []bson.D
	for _, filter := range filters {
		if len(filter) > 0 {
			nonEmpty = append(nonEmpty, filter)
		}
	}

	switch len(nonEmpty) {
	case 0:
		return bson.D{}
	case 1:
		return nonEmpty[0]
	default:
		clauses := make(bson.A, 0, len(nonEmpty))
		for _, filter := range nonEmpty {
			clauses = append(clauses, filter)
		}
		return bson.D{{Key: "$and", Value: clauses}}
	}
}

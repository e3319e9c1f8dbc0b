// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package mongodb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/comuna-ec/comuna/internal/platform/mongodb"
	"github.com/comuna-ec/comuna/pkg/paging"
)

func TestSortFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		request paging.Request
		want    bson.D
	}{
		{
			name:    "default falls back to _id ascending",
			request: paging.Request{},
			want:    bson.D{{Key: "_id", Value: 1}},
		},
		{
			name:    "explicit field ascending",
			request: paging.Request{SortBy: "fullName", SortOrder: paging.SortAscending},
			want:    bson.D{{Key: "fullName", Value: 1}},
		},
		{
			name:    "explicit field descending",
			request: paging.Request{SortBy: "createdAt", SortOrder: paging.SortDescending},
			want:    bson.D{{Key: "createdAt", Value: -1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mongodb.SortFromRequest(tt.request))
		})
	}
}

func TestSearchFilter(t *testing.T) {
	t.Run("empty term matches all", func(t *testing.T) {
		assert.Empty(t, mongodb.SearchFilter("", "name"))
	})

	t.Run("builds or clause per field", func(t *testing.T) {
		filter := mongodb.SearchFilter("ana", "fullName", "email")

		require.Len(t, filter, 1)
		assert.Equal(t, "$or", filter[0].Key)

		clauses, ok := filter[0].Value.(bson.A)
		require.True(t, ok)
		assert.Len(t, clauses, 2)
	})

	t.Run("quotes regex metacharacters", func(t *testing.T) {
		filter := mongodb.SearchFilter("a.b*", "name")

		clauses := filter[0].Value.(bson.A)
		clause := clauses[0].(bson.D)
		pattern := clause[0].Value.(primitive.Regex)

		assert.Equal(t, `a\.b\*`, pattern.Pattern)
		assert.Equal(t, "i", pattern.Options)
	})
}

func TestAnd(t *testing.T) {
	search := bson.D{{Key: "$or", Value: bson.A{}}}
	status := bson.D{{Key: "isActive", Value: true}}

	t.Run("all empty yields match-all", func(t *testing.T) {
		assert.Empty(t, mongodb.And(bson.D{}, bson.D{}))
	})

	t.Run("single filter is unwrapped", func(t *testing.T) {
		assert.Equal(t, status, mongodb.And(bson.D{}, status))
	})

	t.Run("multiple filters are combined", func(t *testing.T) {
		combined := mongodb.And(search, status)

		require.Len(t, combined, 1)
		assert.Equal(t, "$and", combined[0].Key)
		assert.Len(t, combined[0].Value.(bson.A), 2)
	})
}

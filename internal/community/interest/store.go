// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package interest

import (
	"context"

	"github.com/comuna-ec/comuna/pkg/paging"
)

// Store defines the data access contract for the area-of-interest catalog.
type Store interface {

	// Create persists a new catalog entry.
	Create(context context.Context, area *AreaOfInterest) error

	// FindBySlug returns the entry with the given URL slug.
	FindBySlug(context context.Context, slug string) (*AreaOfInterest, error)

	// List returns one page of the catalog, searching name and description.
	List(context context.Context, request paging.Request) (paging.Response[AreaOfInterest], error)
}

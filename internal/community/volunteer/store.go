// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package volunteer

import (
	"context"

	"github.com/comuna-ec/comuna/pkg/paging"
)

// ListFilter narrows a paged application listing.
type ListFilter struct {
	// Areas restricts results to applications that selected at least one of
	// these areas of interest. Empty means no restriction.
	Areas []string
}

// Store defines the data access contract for volunteer applications.
type Store interface {

	// Create persists a new application.
	Create(context context.Context, application *Application) error

	// FindByEmail returns the application submitted under the given email.
	FindByEmail(context context.Context, email string) (*Application, error)

	// List returns one page of applications, searching fullName, email,
	// and city, optionally narrowed by filter.
	List(context context.Context, request paging.Request, filter ListFilter) (paging.Response[Application], error)
}

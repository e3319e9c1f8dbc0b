// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package member

import (
	"context"

	"github.com/comuna-ec/comuna/pkg/paging"
)

// Store defines the data access contract for the member registry.
type Store interface {

	// Create persists a new registry entry.
	Create(context context.Context, member *Member) error

	// List returns one page of the registry, searching fullName and email.
	List(context context.Context, request paging.Request) (paging.Response[Member], error)
}

// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package interest

import (
	"context"
	"time"

	"github.com/comuna-ec/comuna/pkg/paging"
	"github.com/comuna-ec/comuna/pkg/slug"
	"github.com/comuna-ec/comuna/pkg/uuid"
)

// Service implements area-of-interest use cases.
type Service struct {
	store Store
}

// NewService constructs a new [Service].
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateInput holds the data required to add a catalog entry.
type CreateInput struct {
	Name        string
	Description string
}

/*
Create adds a new area of interest to the catalog.

Description: The URL slug is derived from the name; uniqueness is enforced
by the store and surfaces as a Conflict.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *AreaOfInterest: Created entity
  - err: Conflict or storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*AreaOfInterest, error) {
	area := &AreaOfInterest{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := service.store.Create(context, area); err != nil {
		return nil, err
	}

	return area, nil
}

// List returns one page of the catalog.
func (service *Service) List(context context.Context, request paging.Request) (paging.Response[AreaOfInterest], error) {
	return service.store.List(context, request)
}

// GetBySlug returns a single catalog entry by its URL slug.
func (service *Service) GetBySlug(context context.Context, value string) (*AreaOfInterest, error) {
	return service.store.FindBySlug(context, value)
}

// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package member

import (
	"context"
	"strings"
	"time"

	"github.com/comuna-ec/comuna/pkg/paging"
	"github.com/comuna-ec/comuna/pkg/uuid"
)

// Service implements community member use cases.
type Service struct {
	store Store
}

// NewService constructs a new [Service].
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateInput holds the data required to register a community member.
type CreateInput struct {
	FullName string
	Email    string
}

/*
Create registers a new community member.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Member: Created entity
  - err: Storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Member, error) {
	member := &Member{
		ID:       uuid.New(),
		FullName: strings.TrimSpace(input.FullName),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		JoinedAt: time.Now().UTC(),
	}

	if err := service.store.Create(context, member); err != nil {
		return nil, err
	}

	return member, nil
}

// List returns one page of the registry.
func (service *Service) List(context context.Context, request paging.Request) (paging.Response[Member], error) {
	return service.store.List(context, request)
}

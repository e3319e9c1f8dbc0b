// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package volunteer

import (
	"context"
	"strings"
	"time"

	"github.com/comuna-ec/comuna/internal/platform/apperr"
	"github.com/comuna-ec/comuna/pkg/paging"
	"github.com/comuna-ec/comuna/pkg/uuid"
)

// Service implements volunteer application use cases.
type Service struct {
	store Store
}

// NewService constructs a new [Service].
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateInput holds a submitted application form.
type CreateInput struct {
	FullName                  string
	Email                     string
	PhoneNumber               string
	City                      string
	Country                   string
	HasVolunteeringExperience bool
	AreasOfInterest           []string
	OtherAreas                string
	AvailableTime             string
	SkillsOrKnowledge         string
	WhyVolunteer              string
	AdditionalComments        string
}

/*
Create submits a new volunteer application.

Description: One application per email. An existing application under the
same (normalized) email surfaces as a Conflict before the insert; the unique
email index backs the same rule against concurrent submissions.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Application: Created entity
  - err: Conflict or storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Application, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := service.store.FindByEmail(context, email); err == nil {
		return nil, apperr.Conflict("An application with this email already exists")
	}

	application := &Application{
		ID:                        uuid.New(),
		FullName:                  strings.TrimSpace(input.FullName),
		Email:                     email,
		PhoneNumber:               strings.TrimSpace(input.PhoneNumber),
		City:                      strings.TrimSpace(input.City),
		Country:                   strings.TrimSpace(input.Country),
		HasVolunteeringExperience: input.HasVolunteeringExperience,
		AreasOfInterest:           input.AreasOfInterest,
		OtherAreas:                strings.TrimSpace(input.OtherAreas),
		AvailableTime:             strings.TrimSpace(input.AvailableTime),
		SkillsOrKnowledge:         strings.TrimSpace(input.SkillsOrKnowledge),
		WhyVolunteer:              strings.TrimSpace(input.WhyVolunteer),
		AdditionalComments:        strings.TrimSpace(input.AdditionalComments),
		CreatedAt:                 time.Now().UTC(),
	}

	if err := service.store.Create(context, application); err != nil {
		return nil, err
	}

	return application, nil
}

// List returns one page of applications, optionally narrowed by areas.
func (service *Service) List(context context.Context, request paging.Request, filter ListFilter) (paging.Response[Application], error) {
	return service.store.List(context, request, filter)
}

// GetByEmail returns the application submitted under the given email.
func (service *Service) GetByEmail(context context.Context, email string) (*Application, error) {
	return service.store.FindByEmail(context, strings.ToLower(strings.TrimSpace(email)))
}

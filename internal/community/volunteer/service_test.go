// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package volunteer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comuna-ec/comuna/internal/community/volunteer"
	"github.com/comuna-ec/comuna/internal/platform/apperr"
	"github.com/comuna-ec/comuna/pkg/paging"
)

// memoryStore is an in-memory [volunteer.Store] for service tests.
type memoryStore struct {
	applications []*volunteer.Application
}

func (store *memoryStore) Create(_ context.Context, application *volunteer.Application) error {
	store.applications = append(store.applications, application)
	return nil
}

func (store *memoryStore) FindByEmail(_ context.Context, email string) (*volunteer.Application, error) {
	for _, application := range store.applications {
		if application.Email == email {
			return application, nil
		}
	}
	return nil, apperr.NotFound("Volunteer application")
}

func (store *memoryStore) List(_ context.Context, request paging.Request, filter volunteer.ListFilter) (paging.Response[volunteer.Application], error) {
	var matched []volunteer.Application
	for _, application := range store.applications {
		if len(filter.Areas) == 0 || hasAnyArea(application, filter.Areas) {
			matched = append(matched, *application)
		}
	}

	total := int64(len(matched))
	start := request.Skip()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + request.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return paging.NewResponse(matched[start:end], total, request), nil
}

func hasAnyArea(application *volunteer.Application, areas []string) bool {
	for _, want := range areas {
		for _, have := range application.AreasOfInterest {
			if have == want {
				return true
			}
		}
	}
	return false
}

func submit(t *testing.T, service *volunteer.Service, email string, areas ...string) *volunteer.Application {
	t.Helper()

	application, err := service.Create(context.Background(), volunteer.CreateInput{
		FullName:        "Ana Torres",
		Email:           email,
		City:            "Quito",
		Country:         "Ecuador",
		AreasOfInterest: areas,
		AvailableTime:   "Weekends",
		WhyVolunteer:    "Community matters",
	})
	require.NoError(t, err)
	return application
}

/*
TestService_Create verifies submission and normalization.
*/
func TestService_Create(t *testing.T) {
	service := volunteer.NewService(&memoryStore{})

	application := submit(t, service, "  Ana@Example.COM  ", "EventOrganization")

	assert.NotEmpty(t, application.ID)
	assert.Equal(t, "ana@example.com", application.Email, "email must be normalized")
	assert.False(t, application.CreatedAt.IsZero())
}

/*
TestService_Create_DuplicateEmail verifies the one-application-per-email rule.
*/
func TestService_Create_DuplicateEmail(t *testing.T) {
	service := volunteer.NewService(&memoryStore{})
	submit(t, service, "ana@example.com", "EventOrganization")

	_, err := service.Create(context.Background(), volunteer.CreateInput{
		FullName:        "Ana Again",
		Email:           "ANA@example.com",
		City:            "Quito",
		Country:         "Ecuador",
		AreasOfInterest: []string{"ContentCreation"},
		AvailableTime:   "Evenings",
		WhyVolunteer:    "Still matters",
	})

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

/*
TestService_List_AreasFilter verifies the optional areas narrowing.
*/
func TestService_List_AreasFilter(t *testing.T) {
	service := volunteer.NewService(&memoryStore{})
	submit(t, service, "one@example.com", "EventOrganization")
	submit(t, service, "two@example.com", "ContentCreation")
	submit(t, service, "three@example.com", "EventOrganization", "TechnicalSupport")

	request := paging.Request{Page: 1, PageSize: 10}

	page, err := service.List(context.Background(), request, volunteer.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalCount)

	page, err = service.List(context.Background(), request, volunteer.ListFilter{Areas: []string{"EventOrganization"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalCount)

	page, err = service.List(context.Background(), request, volunteer.ListFilter{Areas: []string{"SocialMediaManagement"}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.TotalCount)
	assert.NotNil(t, page.Data)
}

/*
TestService_GetByEmail verifies the lookup and NotFound mapping.
*/
func TestService_GetByEmail(t *testing.T) {
	service := volunteer.NewService(&memoryStore{})
	created := submit(t, service, "ana@example.com", "EventOrganization")

	found, err := service.GetByEmail(context.Background(), "  ANA@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = service.GetByEmail(context.Background(), "ghost@example.com")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

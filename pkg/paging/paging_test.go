// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package paging_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comuna-ec/comuna/pkg/paging"
)

func TestFromRequest_Defaults(t *testing.T) {
	request := httptest.NewRequest("GET", "/items", nil)

	params := paging.FromRequest(request)

	assert.Equal(t, paging.DefaultPage, params.Page)
	assert.Equal(t, paging.DefaultPageSize, params.PageSize)
	assert.Empty(t, params.Search)
	assert.Empty(t, params.SortBy)
	assert.Equal(t, paging.SortAscending, params.SortOrder)
}

func TestFromRequest_Clamping(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{name: "valid values", query: "page=3&pageSize=50", wantPage: 3, wantPageSize: 50},
		{name: "zero page", query: "page=0&pageSize=10", wantPage: 1, wantPageSize: 10},
		{name: "negative page", query: "page=-5", wantPage: 1, wantPageSize: 10},
		{name: "oversized pageSize", query: "pageSize=5000", wantPage: 1, wantPageSize: 10},
		{name: "non-numeric", query: "page=abc&pageSize=xyz", wantPage: 1, wantPageSize: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/items?"+tt.query, nil)
			params := paging.FromRequest(request)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantPageSize, params.PageSize)
		})
	}
}

func TestFromRequest_SortOrderFallback(t *testing.T) {
	request := httptest.NewRequest("GET", "/items?sortOrder=sideways", nil)
	assert.Equal(t, paging.SortAscending, paging.FromRequest(request).SortOrder)

	request = httptest.NewRequest("GET", "/items?sortOrder=DESC", nil)
	assert.Equal(t, paging.SortDescending, paging.FromRequest(request).SortOrder)
}

func TestRequest_Skip(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     int
	}{
		{name: "first page", page: 1, pageSize: 10, want: 0},
		{name: "second page", page: 2, pageSize: 10, want: 10},
		{name: "fifth page of 25", page: 5, pageSize: 25, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := paging.Request{Page: tt.page, PageSize: tt.pageSize}
			assert.Equal(t, tt.want, params.Skip())
		})
	}
}

func TestNewResponse_Metadata(t *testing.T) {
	tests := []struct {
		name         string
		total        int64
		page         int
		pageSize     int
		wantPages    int
		wantNext     bool
		wantPrevious bool
	}{
		{name: "exact fit", total: 100, page: 1, pageSize: 10, wantPages: 10, wantNext: true, wantPrevious: false},
		{name: "ceiling division", total: 101, page: 11, pageSize: 10, wantPages: 11, wantNext: false, wantPrevious: true},
		{name: "middle page", total: 50, page: 3, pageSize: 10, wantPages: 5, wantNext: true, wantPrevious: true},
		{name: "second of three pages", total: 25, page: 2, pageSize: 10, wantPages: 3, wantNext: true, wantPrevious: true},
		{name: "empty collection", total: 0, page: 1, pageSize: 10, wantPages: 0, wantNext: false, wantPrevious: false},
		{name: "page beyond last", total: 5, page: 9, pageSize: 10, wantPages: 1, wantNext: false, wantPrevious: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := paging.NewResponse([]string{}, tt.total, paging.Request{Page: tt.page, PageSize: tt.pageSize})

			assert.Equal(t, tt.total, response.TotalCount)
			assert.Equal(t, tt.wantPages, response.TotalPages)
			assert.Equal(t, tt.wantNext, response.HasNextPage)
			assert.Equal(t, tt.wantPrevious, response.HasPreviousPage)
		})
	}
}

func TestNewResponse_NilDataBecomesEmptySlice(t *testing.T) {
	response := paging.NewResponse[string](nil, 0, paging.Request{Page: 1, PageSize: 10})

	assert.NotNil(t, response.Data)
	assert.Empty(t, response.Data)
}

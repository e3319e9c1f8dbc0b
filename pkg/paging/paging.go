// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

// Package paging provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting page is delivered in the API response. The response
// carries its own navigation metadata (totalCount, totalPages, hasNextPage,
// hasPreviousPage) so clients never compute page math themselves.
package paging

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is the number of items per page if not specified.
	DefaultPageSize = 10
	// MaxPageSize is the upper bound for items per page to prevent system abuse.
	MaxPageSize = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1

	// SortAscending and SortDescending are the accepted sortOrder values.
	SortAscending  = "asc"
	SortDescending = "desc"
)

// Request holds the parsed paging, search, and sorting parameters of a
// list request.
type Request struct {
	Page      int
	PageSize  int
	Search    string
	SortBy    string
	SortOrder string
}

// Skip returns the number of documents to skip for the current page.
func (r Request) Skip() int {
	if r.Page <= 1 {
		return 0
	}
	return (r.Page - 1) * r.PageSize
}

// Descending reports whether results should be sorted in descending order.
func (r Request) Descending() bool {
	return r.SortOrder == SortDescending
}

// Response is a single page of results plus navigation metadata.
//
// The JSON field names are part of the public API contract and use camelCase.
type Response[T any] struct {
	Data            []T   `json:"data"`
	TotalCount      int64 `json:"totalCount"`
	Page            int   `json:"page"`
	PageSize        int   `json:"pageSize"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// NewResponse constructs a result page for a request.
//
// It derives TotalPages via ceiling division and the navigation flags from
// the current page position. A nil data slice is normalized to an empty
// slice so the JSON "data" field is always an array, never null.
func NewResponse[T any](data []T, totalCount int64, request Request) Response[T] {
	if data == nil {
		data = []T{}
	}

	totalPages := 0
	if request.PageSize > 0 {
		totalPages = int((totalCount + int64(request.PageSize) - 1) / int64(request.PageSize))
	}

	return Response[T]{
		Data:            data,
		TotalCount:      totalCount,
		Page:            request.Page,
		PageSize:        request.PageSize,
		TotalPages:      totalPages,
		HasNextPage:     request.Page < totalPages,
		HasPreviousPage: request.Page > 1,
	}
}

// FromRequest parses "page", "pageSize", "search", "sortBy", and "sortOrder"
// query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultPageSize], or [MaxPageSize]. An unrecognized
// sortOrder falls back to ascending.
func FromRequest(r *http.Request) Request {
	page := parseIntParam(r, "page", DefaultPage)
	pageSize := parseIntParam(r, "pageSize", DefaultPageSize)

	if page < 1 {
		page = DefaultPage
	}

	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}

	sortOrder := strings.ToLower(r.URL.Query().Get("sortOrder"))
	if sortOrder != SortAscending && sortOrder != SortDescending {
		sortOrder = SortAscending
	}

	return Request{
		Page:      page,
		PageSize:  pageSize,
		Search:    strings.TrimSpace(r.URL.Query().Get("search")),
		SortBy:    strings.TrimSpace(r.URL.Query().Get("sortBy")),
		SortOrder: sortOrder,
	}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}

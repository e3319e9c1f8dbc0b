// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

/*
Package interest manages the curated catalog of areas of interest.

Areas of interest describe the ways people can contribute to the community
(event organization, content creation, technical support, and so on). They
are referenced by name from volunteer applications and browsed publicly by
slug.
*/
package interest

import "time"

// AreaOfInterest is one entry in the curated catalog.
type AreaOfInterest struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Slug        string    `bson:"slug" json:"slug"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Field names for validation in the interest domain.
const (
	FieldName        = "name"
	FieldSlug        = "slug"
	FieldDescription = "description"
)

// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

/*
Package member manages the public community member registry.

The registry is intentionally lightweight: a name and a contact email per
member, browsable with search. Membership carries no credentials; accounts
live in the auth domain.
*/
package member

import "time"

// Member is one entry in the community registry.
type Member struct {
	ID       string    `bson:"_id" json:"id"`
	FullName string    `bson:"fullName" json:"fullName"`
	Email    string    `bson:"email" json:"email"`
	JoinedAt time.Time `bson:"joinedAt" json:"joinedAt"`
}

// Field names for validation in the member domain.
const (
	FieldFullName = "fullName"
	FieldEmail    = "email"
)

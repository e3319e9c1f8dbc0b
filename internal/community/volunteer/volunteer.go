// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

/*
Package volunteer manages volunteer applications.

An application captures who wants to help, where they are, which areas of
interest they can contribute to, and their availability. Applications are
keyed by email: one application per person.
*/
package volunteer

import "time"

// Application is a submitted volunteer application.
type Application struct {
	ID                        string    `bson:"_id" json:"id"`
	FullName                  string    `bson:"fullName" json:"fullName"`
	Email                     string    `bson:"email" json:"email"`
	PhoneNumber               string    `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	City                      string    `bson:"city" json:"city"`
	Country                   string    `bson:"country" json:"country"`
	HasVolunteeringExperience bool      `bson:"hasVolunteeringExperience" json:"hasVolunteeringExperience"`
	AreasOfInterest           []string  `bson:"areasOfInterest" json:"areasOfInterest"`
	OtherAreas                string    `bson:"otherAreas,omitempty" json:"otherAreas,omitempty"`
	AvailableTime             string    `bson:"availableTime" json:"availableTime"`
	SkillsOrKnowledge         string    `bson:"skillsOrKnowledge,omitempty" json:"skillsOrKnowledge,omitempty"`
	WhyVolunteer              string    `bson:"whyVolunteer" json:"whyVolunteer"`
	AdditionalComments        string    `bson:"additionalComments,omitempty" json:"additionalComments,omitempty"`
	CreatedAt                 time.Time `bson:"createdAt" json:"createdAt"`
}

// Field names for validation in the volunteer domain.
const (
	FieldFullName        = "fullName"
	FieldEmail           = "email"
	FieldPhoneNumber     = "phoneNumber"
	FieldCity            = "city"
	FieldCountry         = "country"
	FieldAreasOfInterest = "areasOfInterest"
	FieldOtherAreas      = "otherAreas"
	FieldAvailableTime   = "availableTime"
	FieldWhyVolunteer    = "whyVolunteer"
)

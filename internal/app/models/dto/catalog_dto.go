package dto

import "github.com/yigit/registrar/internal/app/models"

// NameRequest carries a course type or course name, for both create and rename
type NameRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100" example:"Group"`
}

// OfferingRequest represents the course/type pair of an offering
type OfferingRequest struct {
	Course string `json:"course" validate:"required,notblank,max=100" example:"English"`
	Type   string `json:"type" validate:"required,notblank,max=100" example:"Group"`
}

// RegistrationRequest registers a student for an existing offering
type RegistrationRequest struct {
	Student    string `json:"student" validate:"required,notblank,max=100" example:"Asha"`
	OfferingID string `json:"offeringId" validate:"required" example:"5f0c8a8e-1c9b-4b7e-9a57-0c7c3f0f3b1d"`
}

// OfferingResponse is an offering with its display label
type OfferingResponse struct {
	ID     string `json:"id" example:"5f0c8a8e-1c9b-4b7e-9a57-0c7c3f0f3b1d"`
	Course string `json:"course" example:"English"`
	Type   string `json:"type" example:"Group"`
	Label  string `json:"label" example:"Group - English"`
}

// RegistrationResponse is a registration with its display summary
type RegistrationResponse struct {
	ID       string           `json:"id"`
	Student  string           `json:"student" example:"Asha"`
	Offering OfferingResponse `json:"offering"`
	Summary  string           `json:"summary" example:"Asha registered for Group - English"`
}

// NewOfferingResponse converts a model offering
func NewOfferingResponse(o models.Offering) OfferingResponse {
	return OfferingResponse{
		ID:     o.ID,
		Course: o.Course,
		Type:   o.Type,
		Label:  o.Label(),
	}
}

// NewOfferingResponses converts a list, never returning nil
func NewOfferingResponses(list []models.Offering) []OfferingResponse {
	out := make([]OfferingResponse, 0, len(list))
	for _, o := range list {
		out = append(out, NewOfferingResponse(o))
	}
	return out
}

// NewRegistrationResponse converts a model registration
func NewRegistrationResponse(r models.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:       r.ID,
		Student:  r.Student,
		Offering: NewOfferingResponse(r.Offering),
		Summary:  r.String(),
	}
}

// NewRegistrationResponses converts a list, never returning nil
func NewRegistrationResponses(list []models.Registration) []RegistrationResponse {
	out := make([]RegistrationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, NewRegistrationResponse(r))
	}
	return out
}

// NameResponse echoes the stored name of a course type or course
type NameResponse struct {
	Name string `json:"name" example:"Group"`
}

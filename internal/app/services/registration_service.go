package services

import (
	"context"
	"slices"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// Registrations returns every registration in the order they were made
func (s *Store) Registrations() []models.Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.registrations)
}

// Register appends a registration of student for offering. The offering is
// stored as given; it is not checked against the catalog and duplicates are allowed.
func (s *Store) Register(ctx context.Context, student string, offering *models.Offering) (models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if student == "" {
		return models.Registration{}, apperrors.NewValidationError("student name is required")
	}
	if offering == nil {
		return models.Registration{}, apperrors.NewValidationError("an offering is required")
	}

	reg := models.Registration{
		ID:       s.newID(),
		Student:  student,
		Offering: *offering,
	}
	s.registrations = append(s.registrations, reg)

	s.logger.Info().
		Str("event", EventRegistrationAdded).
		Str("student", student).
		Str("offering", offering.Label()).
		Msg("Student registered")
	return reg, s.persist(ctx, KeyRegistrations)
}

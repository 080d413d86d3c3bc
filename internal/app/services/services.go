package services

import (
	"context"

	"github.com/yigit/registrar/internal/app/models"
)

// CatalogService manages course types, courses and offerings.
//
// Mutations that are rejected (empty input, duplicates, unknown targets) leave
// every collection and the storage untouched and return an error wrapping one
// of apperrors.ErrValidationFailed, ErrResourceAlreadyExists or
// ErrResourceNotFound. A mutation whose storage write fails is kept in memory
// and returns an error wrapping apperrors.ErrPersistence.
type CatalogService interface {
	CourseTypes() []string
	AddCourseType(ctx context.Context, name string) error
	RenameCourseType(ctx context.Context, oldName, newName string) error
	RemoveCourseType(ctx context.Context, name string) error

	Courses() []string
	AddCourse(ctx context.Context, name string) error
	RenameCourse(ctx context.Context, oldName, newName string) error
	RemoveCourse(ctx context.Context, name string) error

	Offerings() []models.Offering
	Offering(id string) (models.Offering, error)
	FilterByType(courseType string) []models.Offering
	AddOffering(ctx context.Context, course, courseType string) (models.Offering, error)
	UpdateOffering(ctx context.Context, id, course, courseType string) (models.Offering, error)
	RemoveOffering(ctx context.Context, id string) error
}

// RegistrationService records student registrations.
type RegistrationService interface {
	Registrations() []models.Registration
	Register(ctx context.Context, student string, offering *models.Offering) (models.Registration, error)
}

// Log event names
const (
	EventCatalogChanged    = "catalog_changed"
	EventRegistrationAdded = "registration_added"
	EventStorageFallback   = "storage_fallback"
	EventPersistenceError  = "persistence_error"
)

var (
	_ CatalogService      = (*Store)(nil)
	_ RegistrationService = (*Store)(nil)
)

package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/seed"
)

// Store owns the course types, courses, offerings and registrations and is the
// only way to change them. Every successful mutation is written through to the
// persistence port before the call returns. Operations are serialized so each
// runs to completion before the next begins.
type Store struct {
	mu sync.Mutex

	courseTypes   []string
	courses       []string
	offerings     []models.Offering
	registrations []models.Registration

	persistence *Persistence
	logger      zerolog.Logger
	newID       func() string
	defaults    models.Collections
}

// Option customizes a Store
type Option func(*Store)

// WithIDGenerator replaces the UUID generator used for offering and registration IDs.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithDefaults replaces the built-in collections used when storage is empty.
func WithDefaults(defaults models.Collections) Option {
	return func(s *Store) { s.defaults = defaults }
}

// NewStore loads the collections from repo (or defaults) and returns a ready Store.
// Loading never fails; see Persistence.Load.
func NewStore(ctx context.Context, repo repositories.KeyValueRepository, lgr zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		persistence: NewPersistence(repo, lgr),
		logger:      lgr,
		newID:       uuid.NewString,
		defaults:    seed.DefaultData(),
	}
	for _, opt := range opts {
		opt(s)
	}

	loaded := s.persistence.Load(ctx, s.defaults)
	s.courseTypes = slices.Clone(loaded.CourseTypes)
	s.courses = slices.Clone(loaded.Courses)
	s.offerings = slices.Clone(loaded.Offerings)
	s.registrations = slices.Clone(loaded.Registrations)

	if s.assignMissingIDs() {
		// Write IDs back once so they stay stable across restarts.
		if err := s.persist(ctx, KeyCourseTypes, KeyCourses, KeyOfferings, KeyRegistrations); err != nil {
			s.logger.Warn().Err(err).Msg("Could not store generated identifiers")
		}
	}

	s.logger.Info().
		Int("courseTypes", len(s.courseTypes)).
		Int("courses", len(s.courses)).
		Int("offerings", len(s.offerings)).
		Int("registrations", len(s.registrations)).
		Msg("Registrar store loaded")
	return s
}

// assignMissingIDs gives every offering and registration without an ID a new one
// and links ID-less registration snapshots to the offering with the same fields.
func (s *Store) assignMissingIDs() bool {
	changed := false
	for i := range s.offerings {
		if s.offerings[i].ID == "" {
			s.offerings[i].ID = s.newID()
			changed = true
		}
	}
	for i := range s.registrations {
		reg := &s.registrations[i]
		if reg.ID == "" {
			reg.ID = s.newID()
			changed = true
		}
		if reg.Offering.ID == "" {
			if idx := slices.IndexFunc(s.offerings, func(o models.Offering) bool {
				return o.Matches(reg.Offering.Course, reg.Offering.Type)
			}); idx >= 0 {
				reg.Offering.ID = s.offerings[idx].ID
				changed = true
			}
		}
	}
	return changed
}

// snapshot must be called with mu held.
func (s *Store) snapshot() models.Collections {
	return models.Collections{
		CourseTypes:   s.courseTypes,
		Courses:       s.courses,
		Offerings:     s.offerings,
		Registrations: s.registrations,
	}
}

// persist writes the named collections; it must be called with mu held.
func (s *Store) persist(ctx context.Context, keys ...string) error {
	if err := s.persistence.Save(ctx, s.snapshot(), keys...); err != nil {
		s.logger.Error().Err(err).
			Str("event", EventPersistenceError).
			Strs("keys", keys).
			Msg("Failed to write collections to storage")
		return fmt.Errorf("%w: %w", apperrors.ErrPersistence, err)
	}
	return nil
}

// Snapshot returns copies of all four collections.
func (s *Store) Snapshot() models.Collections {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.Collections{
		CourseTypes:   slices.Clone(s.courseTypes),
		Courses:       slices.Clone(s.courses),
		Offerings:     slices.Clone(s.offerings),
		Registrations: slices.Clone(s.registrations),
	}
}

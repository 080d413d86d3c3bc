package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// Storage keys, one JSON document per collection.
const (
	KeyCourseTypes   = "courseTypes"
	KeyCourses       = "courses"
	KeyOfferings     = "offerings"
	KeyRegistrations = "registrations"
)

// Persistence moves collections between memory and a KeyValueRepository.
type Persistence struct {
	repo   repositories.KeyValueRepository
	logger zerolog.Logger
}

// NewPersistence creates a new Persistence adapter
func NewPersistence(repo repositories.KeyValueRepository, lgr zerolog.Logger) *Persistence {
	return &Persistence{repo: repo, logger: lgr}
}

// Load reads every collection, substituting the matching field of defaults for
// any key that is missing, unreadable or malformed. Read problems are logged,
// never returned.
func (p *Persistence) Load(ctx context.Context, defaults models.Collections) models.Collections {
	return models.Collections{
		CourseTypes:   loadList(ctx, p, KeyCourseTypes, defaults.CourseTypes),
		Courses:       loadList(ctx, p, KeyCourses, defaults.Courses),
		Offerings:     loadList(ctx, p, KeyOfferings, defaults.Offerings),
		Registrations: loadList(ctx, p, KeyRegistrations, defaults.Registrations),
	}
}

func loadList[E any](ctx context.Context, p *Persistence, key string, fallback []E) []E {
	raw, err := p.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrResourceNotFound) {
			p.logger.Warn().Err(err).
				Str("event", EventStorageFallback).
				Str("key", key).
				Msg("Storage read failed, using default collection")
		}
		return fallback
	}

	var list []E
	if err := json.Unmarshal([]byte(raw), &list); err != nil || list == nil {
		p.logger.Warn().Err(err).
			Str("event", EventStorageFallback).
			Str("key", key).
			Msg("Stored collection is malformed, using default collection")
		return fallback
	}
	return list
}

// Save serializes the given collections of c and writes them in one call.
func (p *Persistence) Save(ctx context.Context, c models.Collections, keys ...string) error {
	entries := make(map[string]string, len(keys))
	for _, key := range keys {
		var value any
		switch key {
		case KeyCourseTypes:
			value = nonNil(c.CourseTypes)
		case KeyCourses:
			value = nonNil(c.Courses)
		case KeyOfferings:
			value = nonNil(c.Offerings)
		case KeyRegistrations:
			value = nonNil(c.Registrations)
		default:
			return fmt.Errorf("unknown storage key %q", key)
		}

		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		entries[key] = string(data)
	}

	if len(entries) == 0 {
		return nil
	}
	return p.repo.SetMany(ctx, entries)
}

// nonNil keeps empty collections serialized as [] rather than null.
func nonNil[E any](list []E) []E {
	if list == nil {
		return []E{}
	}
	return list
}

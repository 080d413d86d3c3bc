package services

import (
	"context"
	"slices"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// nameCollection describes one of the two symmetric name lists (course types,
// courses) and the offering field that references it.
type nameCollection struct {
	key      string
	label    string
	notFound error
	exists   error
	list     func(s *Store) *[]string
	field    func(o *models.Offering) *string
}

var courseTypeCollection = nameCollection{
	key:      KeyCourseTypes,
	label:    "course type",
	notFound: apperrors.ErrCourseTypeNotFound,
	exists:   apperrors.ErrCourseTypeAlreadyExists,
	list:     func(s *Store) *[]string { return &s.courseTypes },
	field:    func(o *models.Offering) *string { return &o.Type },
}

var courseCollection = nameCollection{
	key:      KeyCourses,
	label:    "course",
	notFound: apperrors.ErrCourseNotFound,
	exists:   apperrors.ErrCourseAlreadyExists,
	list:     func(s *Store) *[]string { return &s.courses },
	field:    func(o *models.Offering) *string { return &o.Course },
}

// CourseTypes returns the course types in insertion order
func (s *Store) CourseTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.courseTypes)
}

// AddCourseType appends name unless it is empty or already present
func (s *Store) AddCourseType(ctx context.Context, name string) error {
	return s.addName(ctx, courseTypeCollection, name)
}

// RenameCourseType replaces oldName in place and in every offering using it
func (s *Store) RenameCourseType(ctx context.Context, oldName, newName string) error {
	return s.renameName(ctx, courseTypeCollection, oldName, newName)
}

// RemoveCourseType deletes name and every offering of that type
func (s *Store) RemoveCourseType(ctx context.Context, name string) error {
	return s.removeName(ctx, courseTypeCollection, name)
}

// Courses returns the courses in insertion order
func (s *Store) Courses() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.courses)
}

// AddCourse appends name unless it is empty or already present
func (s *Store) AddCourse(ctx context.Context, name string) error {
	return s.addName(ctx, courseCollection, name)
}

// RenameCourse replaces oldName in place and in every offering using it
func (s *Store) RenameCourse(ctx context.Context, oldName, newName string) error {
	return s.renameName(ctx, courseCollection, oldName, newName)
}

// RemoveCourse deletes name and every offering of that course
func (s *Store) RemoveCourse(ctx context.Context, name string) error {
	return s.removeName(ctx, courseCollection, name)
}

func (s *Store) addName(ctx context.Context, c nameCollection, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := c.list(s)
	if name == "" {
		return apperrors.NewValidationError(c.label + " name is required")
	}
	if slices.Contains(*list, name) {
		return c.exists
	}

	*list = append(*list, name)
	s.logChange("add", c.key, name)
	return s.persist(ctx, c.key)
}

func (s *Store) renameName(ctx context.Context, c nameCollection, oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := c.list(s)
	if newName == "" {
		return apperrors.NewValidationError("new " + c.label + " name is required")
	}
	if slices.Contains(*list, newName) {
		return c.exists
	}
	if !slices.Contains(*list, oldName) {
		return c.notFound
	}

	for i, name := range *list {
		if name == oldName {
			(*list)[i] = newName
		}
	}

	keys := []string{c.key}
	renamed := make(map[string]bool)
	for i := range s.offerings {
		if f := c.field(&s.offerings[i]); *f == oldName {
			*f = newName
			renamed[s.offerings[i].ID] = true
		}
	}
	if len(renamed) > 0 {
		keys = append(keys, KeyOfferings)
		if s.refreshRegistrations(renamed) {
			keys = append(keys, KeyRegistrations)
		}
	}

	s.logChange("rename", c.key, newName)
	return s.persist(ctx, keys...)
}

func (s *Store) removeName(ctx context.Context, c nameCollection, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return apperrors.NewValidationError(c.label + " name is required")
	}

	var keys []string
	list := c.list(s)
	if before := len(*list); before > 0 {
		*list = slices.DeleteFunc(*list, func(n string) bool { return n == name })
		if len(*list) != before {
			keys = append(keys, c.key)
		}
	}

	removed := make(map[string]bool)
	s.offerings = slices.DeleteFunc(s.offerings, func(o models.Offering) bool {
		if *c.field(&o) == name {
			removed[o.ID] = true
			return true
		}
		return false
	})
	if len(removed) > 0 {
		keys = append(keys, KeyOfferings)
		if s.dropRegistrations(removed) {
			keys = append(keys, KeyRegistrations)
		}
	}

	if len(keys) == 0 {
		return c.notFound
	}

	s.logChange("remove", c.key, name)
	return s.persist(ctx, keys...)
}

// Offerings returns every offering in insertion order
func (s *Store) Offerings() []models.Offering {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.offerings)
}

// Offering returns the offering with the given ID
func (s *Store) Offering(id string) (models.Offering, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.offeringIndex(id)
	if idx < 0 {
		return models.Offering{}, apperrors.ErrOfferingNotFound
	}
	return s.offerings[idx], nil
}

// FilterByType returns the offerings of courseType, or all offerings when it is empty.
// The result is a view; nothing is stored.
func (s *Store) FilterByType(courseType string) []models.Offering {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Offering, 0, len(s.offerings))
	for _, o := range s.offerings {
		if courseType == "" || o.Type == courseType {
			out = append(out, o)
		}
	}
	return out
}

// AddOffering appends a (course, type) pair unless either is empty or the pair exists
func (s *Store) AddOffering(ctx context.Context, course, courseType string) (models.Offering, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if course == "" || courseType == "" {
		return models.Offering{}, apperrors.NewValidationError("offering needs both a course and a course type")
	}
	if slices.ContainsFunc(s.offerings, func(o models.Offering) bool { return o.Matches(course, courseType) }) {
		return models.Offering{}, apperrors.ErrOfferingAlreadyExists
	}

	offering := models.Offering{ID: s.newID(), Course: course, Type: courseType}
	s.offerings = append(s.offerings, offering)

	s.logChange("add", KeyOfferings, offering.Label())
	return offering, s.persist(ctx, KeyOfferings)
}

// UpdateOffering replaces the fields of the offering with the given ID.
// The replacement is not checked against existing pairs.
func (s *Store) UpdateOffering(ctx context.Context, id, course, courseType string) (models.Offering, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if course == "" || courseType == "" {
		return models.Offering{}, apperrors.NewValidationError("offering needs both a course and a course type")
	}
	idx := s.offeringIndex(id)
	if idx < 0 {
		return models.Offering{}, apperrors.ErrOfferingNotFound
	}

	s.offerings[idx] = models.Offering{ID: id, Course: course, Type: courseType}

	keys := []string{KeyOfferings}
	if s.refreshRegistrations(map[string]bool{id: true}) {
		keys = append(keys, KeyRegistrations)
	}

	s.logChange("update", KeyOfferings, s.offerings[idx].Label())
	return s.offerings[idx], s.persist(ctx, keys...)
}

// RemoveOffering deletes the offering with the given ID and its registrations
func (s *Store) RemoveOffering(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.offeringIndex(id)
	if idx < 0 {
		return apperrors.ErrOfferingNotFound
	}

	label := s.offerings[idx].Label()
	s.offerings = slices.Delete(s.offerings, idx, idx+1)

	keys := []string{KeyOfferings}
	if s.dropRegistrations(map[string]bool{id: true}) {
		keys = append(keys, KeyRegistrations)
	}

	s.logChange("remove", KeyOfferings, label)
	return s.persist(ctx, keys...)
}

func (s *Store) offeringIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.offerings, func(o models.Offering) bool { return o.ID == id })
}

// refreshRegistrations copies the current fields of the given offerings into
// the registrations linked to them. Reports whether anything changed.
func (s *Store) refreshRegistrations(ids map[string]bool) bool {
	changed := false
	for i := range s.registrations {
		linked := s.registrations[i].Offering.ID
		if linked == "" || !ids[linked] {
			continue
		}
		if idx := s.offeringIndex(linked); idx >= 0 && s.registrations[i].Offering != s.offerings[idx] {
			s.registrations[i].Offering = s.offerings[idx]
			changed = true
		}
	}
	return changed
}

// dropRegistrations removes registrations linked to the given offerings.
func (s *Store) dropRegistrations(ids map[string]bool) bool {
	before := len(s.registrations)
	s.registrations = slices.DeleteFunc(s.registrations, func(r models.Registration) bool {
		return r.Offering.ID != "" && ids[r.Offering.ID]
	})
	return len(s.registrations) != before
}

func (s *Store) logChange(op, key, value string) {
	s.logger.Debug().
		Str("event", EventCatalogChanged).
		Str("op", op).
		Str("collection", key).
		Str("value", value).
		Msg("Catalog changed")
}

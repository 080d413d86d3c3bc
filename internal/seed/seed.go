package seed

import "github.com/yigit/registrar/internal/app/models"

// DefaultData returns a fresh copy of the built-in catalog used when storage has
// nothing readable: three course types, three courses, one offering per course
// and no registrations.
func DefaultData() models.Collections {
	return models.Collections{
		CourseTypes: []string{"Individual", "Group", "Special"},
		Courses:     []string{"Hindi", "English", "Urdu"},
		Offerings: []models.Offering{
			{Course: "Hindi", Type: "Individual"},
			{Course: "English", Type: "Group"},
			{Course: "Urdu", Type: "Special"},
		},
		Registrations: []models.Registration{},
	}
}

// Empty returns a snapshot with every collection empty.
func Empty() models.Collections {
	return models.Collections{
		CourseTypes:   []string{},
		Courses:       []string{},
		Offerings:     []models.Offering{},
		Registrations: []models.Registration{},
	}
}

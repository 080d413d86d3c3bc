package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/seed"
)

func defaultOfferings() []models.Offering {
	return []models.Offering{
		{ID: "id-1", Course: "Hindi", Type: "Individual"},
		{ID: "id-2", Course: "English", Type: "Group"},
		{ID: "id-3", Course: "Urdu", Type: "Special"},
	}
}

func TestNewStore_EmptyStorageStartsFromDefaults(t *testing.T) {
	repo := repositories.NewMemoryKVRepository()
	store := newTestStore(t, repo)

	assert.Equal(t, []string{"Individual", "Group", "Special"}, store.CourseTypes())
	assert.Equal(t, []string{"Hindi", "English", "Urdu"}, store.Courses())
	assert.Equal(t, defaultOfferings(), store.Offerings())
	assert.Empty(t, store.Registrations())

	// generated identifiers are written back so they survive a restart
	assert.JSONEq(t, `[
		{"id":"id-1","course":"Hindi","type":"Individual"},
		{"id":"id-2","course":"English","type":"Group"},
		{"id":"id-3","course":"Urdu","type":"Special"}
	]`, storedValue(t, repo, KeyOfferings))
	assert.JSONEq(t, `[]`, storedValue(t, repo, KeyRegistrations))
}

func TestNewStore_CorruptStorageFallsBackPerKey(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryKVRepository()
	require.NoError(t, repo.SetMany(ctx, map[string]string{
		KeyCourseTypes: `not json`,
		KeyCourses:     `["Tamil"]`,
	}))

	store := newTestStore(t, repo)
	assert.Equal(t, []string{"Individual", "Group", "Special"}, store.CourseTypes())
	assert.Equal(t, []string{"Tamil"}, store.Courses())
}

func TestNewStore_UnreadableStorageFallsBackToDefaults(t *testing.T) {
	repo := newUnreliableRepository()
	repo.failReads = true

	store := newTestStore(t, repo)
	assert.Equal(t, []string{"Hindi", "English", "Urdu"}, store.Courses())
	assert.Len(t, store.Offerings(), 3)
}

func TestNewStore_WithDefaults(t *testing.T) {
	store := NewStore(context.Background(), repositories.NewMemoryKVRepository(), zerolog.Nop(),
		WithDefaults(seed.Empty()))

	snapshot := store.Snapshot()
	assert.Empty(t, snapshot.CourseTypes)
	assert.Empty(t, snapshot.Courses)
	assert.Empty(t, snapshot.Offerings)
	assert.Empty(t, snapshot.Registrations)
}

func TestNewStore_LegacyDataWithoutIDs(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryKVRepository()
	require.NoError(t, repo.SetMany(ctx, map[string]string{
		KeyCourseTypes: `["Group"]`,
		KeyCourses:     `["English"]`,
		KeyOfferings:   `[{"course":"English","type":"Group"}]`,
		KeyRegistrations: `[
			{"student":"Asha","offering":{"course":"English","type":"Group"}},
			{"student":"Ravi","offering":{"course":"Latin","type":"Group"}}
		]`,
	}))

	store := newTestStore(t, repo)

	offerings := store.Offerings()
	require.Len(t, offerings, 1)
	assert.Equal(t, "id-1", offerings[0].ID)

	regs := store.Registrations()
	require.Len(t, regs, 2)
	assert.Equal(t, "id-2", regs[0].ID)
	assert.Equal(t, offerings[0], regs[0].Offering)
	assert.Equal(t, "id-3", regs[1].ID)
	assert.Empty(t, regs[1].Offering.ID, "snapshot of an unknown offering stays unlinked")

	reloaded := newTestStore(t, repo)
	assert.Equal(t, store.Snapshot(), reloaded.Snapshot())
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryKVRepository()
	store := newTestStore(t, repo)

	require.NoError(t, store.AddCourseType(ctx, "Online"))
	require.NoError(t, store.RenameCourse(ctx, "Urdu", "Bengali"))
	_, err := store.AddOffering(ctx, "Bengali", "Online")
	require.NoError(t, err)
	_, err = store.Register(ctx, "Asha", &models.Offering{ID: "id-2", Course: "English", Type: "Group"})
	require.NoError(t, err)

	reloaded := NewStore(ctx, repo, zerolog.Nop())
	assert.Equal(t, store.Snapshot(), reloaded.Snapshot())
}

func TestStore_AddCourseType(t *testing.T) {
	ctx := context.Background()

	t.Run("appends at the end", func(t *testing.T) {
		store := newTestStore(t, repositories.NewMemoryKVRepository())

		require.NoError(t, store.AddCourseType(ctx, "Online"))
		assert.Equal(t, []string{"Individual", "Group", "Special", "Online"}, store.CourseTypes())
	})

	t.Run("duplicate is rejected", func(t *testing.T) {
		repo := newUnreliableRepository()
		store := newTestStore(t, repo)
		writes := repo.writes

		err := store.AddCourseType(ctx, "Individual")
		assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)
		assert.Equal(t, []string{"Individual", "Group", "Special"}, store.CourseTypes())
		assert.Equal(t, writes, repo.writes)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		store := newTestStore(t, repositories.NewMemoryKVRepository())

		err := store.AddCourseType(ctx, "")
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Len(t, store.CourseTypes(), 3)
	})
}

func TestStore_RenameCourseType(t *testing.T) {
	ctx := context.Background()

	t.Run("renames in place and in offerings", func(t *testing.T) {
		repo := repositories.NewMemoryKVRepository()
		store := newTestStore(t, repo)

		require.NoError(t, store.RenameCourseType(ctx, "Group", "Cluster"))
		assert.Equal(t, []string{"Individual", "Cluster", "Special"}, store.CourseTypes())

		offering, err := store.Offering("id-2")
		require.NoError(t, err)
		assert.Equal(t, "Cluster", offering.Type)
		assert.JSONEq(t, `["Individual","Cluster","Special"]`, storedValue(t, repo, KeyCourseTypes))
	})

	tests := []struct {
		name    string
		oldName string
		newName string
		wantErr error
	}{
		{"empty new name", "Group", "", apperrors.ErrValidationFailed},
		{"new name taken", "Group", "Special", apperrors.ErrResourceAlreadyExists},
		{"same name", "Group", "Group", apperrors.ErrResourceAlreadyExists},
		{"unknown old name", "Solo", "Duo", apperrors.ErrResourceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t, repositories.NewMemoryKVRepository())

			err := store.RenameCourseType(ctx, tt.oldName, tt.newName)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, []string{"Individual", "Group", "Special"}, store.CourseTypes())
			assert.Equal(t, defaultOfferings(), store.Offerings())
		})
	}
}

func TestStore_RemoveCourseType(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, repositories.NewMemoryKVRepository())

	require.NoError(t, store.RemoveCourseType(ctx, "Special"))
	assert.Equal(t, []string{"Individual", "Group"}, store.CourseTypes())
	assert.Equal(t, defaultOfferings()[:2], store.Offerings())

	err := store.RemoveCourseType(ctx, "Special")
	assert.ErrorIs(t, err, apperrors.ErrCourseTypeNotFound)

	err = store.RemoveCourseType(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestStore_AddAndRenameCourse(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, repositories.NewMemoryKVRepository())

	require.NoError(t, store.AddCourse(ctx, "Tamil"))
	assert.Equal(t, []string{"Hindi", "English", "Urdu", "Tamil"}, store.Courses())
	assert.ErrorIs(t, store.AddCourse(ctx, "Tamil"), apperrors.ErrCourseAlreadyExists)

	require.NoError(t, store.RenameCourse(ctx, "English", "French"))
	assert.Equal(t, []string{"Hindi", "French", "Urdu", "Tamil"}, store.Courses())
	assert.Equal(t, []models.Offering{{ID: "id-2", Course: "French", Type: "Group"}}, store.FilterByType("Group"))
}

func TestStore_RemoveCourse(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, repositories.NewMemoryKVRepository())

	require.NoError(t, store.RemoveCourse(ctx, "Hindi"))
	assert.Equal(t, []string{"English", "Urdu"}, store.Courses())
	assert.Equal(t, defaultOfferings()[1:], store.Offerings())

	assert.ErrorIs(t, store.RemoveCourse(ctx, "Hindi"), apperrors.ErrCourseNotFound)
}

func TestStore_RemoveCourseDropsDanglingOfferings(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, repositories.NewMemoryKVRepository())

	_, err := store.AddOffering(ctx, "Latin", "Group")
	require.NoError(t, err)

	// Latin was never a course but its offering still goes
	require.NoError(t, store.RemoveCourse(ctx, "Latin"))
	assert.Equal(t, defaultOfferings(), store.Offerings())
	assert.Len(t, store.Courses(), 3)
}

func TestStore_FilterByType(t *testing.T) {
	store := newTestStore(t, repositories.NewMemoryKVRepository())

	assert.Equal(t, []models.Offering{{ID: "id-2", Course: "English", Type: "Group"}}, store.FilterByType("Group"))
	assert.Equal(t, defaultOfferings(), store.FilterByType(""))
	assert.Empty(t, store.FilterByType("Online"))
}

func TestStore_AddOffering(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryKVRepository()
	store := newTestStore(t, repo)

	offering, err := store.AddOffering(ctx, "Hindi", "Group")
	require.NoError(t, err)
	assert.Equal(t, models.Offering{ID: "id-4", Course: "Hindi", Type: "Group"}, offering)
	assert.Len(t, store.Offerings(), 4)
	assert.Contains(t, storedValue(t, repo, KeyOfferings), `"id":"id-4"`)

	_, err = store.AddOffering(ctx, "Hindi", "Group")
	assert.ErrorIs(t, err, apperrors.ErrOfferingAlreadyExists)

	_, err = store.AddOffering(ctx, "", "Group")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	_, err = store.AddOffering(ctx, "Hindi", "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	assert.Len(t, store.Offerings(), 4)
}

func TestStore_UpdateOffering(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces only the addressed offering", func(t *testing.T) {
		store := newTestStore(t, repositories.NewMemoryKVRepository())

		// an identical pair elsewhere is allowed
		updated, err := store.UpdateOffering(ctx, "id-3", "English", "Group")
		require.NoError(t, err)
		assert.Equal(t, models.Offering{ID: "id-3", Course: "English", Type: "Group"}, updated)

		_, err = store.UpdateOffering(ctx, "id-3", "Urdu", "Special")
		require.NoError(t, err)
		assert.Equal(t, defaultOfferings(), store.Offerings())
	})

	t.Run("rejected updates", func(t *testing.T) {
		store := newTestStore(t, repositories.NewMemoryKVRepository())

		_, err := store.UpdateOffering(ctx, "missing", "Hindi", "Group")
		assert.ErrorIs(t, err, apperrors.ErrOfferingNotFound)
		_, err = store.UpdateOffering(ctx, "id-1", "", "Group")
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Equal(t, defaultOfferings(), store.Offerings())
	})
}

func TestStore_RemoveOffering(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, repositories.NewMemoryKVRepository())

	require.NoError(t, store.RemoveOffering(ctx, "id-2"))
	assert.Equal(t, []models.Offering{defaultOfferings()[0], defaultOfferings()[2]}, store.Offerings())

	assert.ErrorIs(t, store.RemoveOffering(ctx, "id-2"), apperrors.ErrOfferingNotFound)
	assert.ErrorIs(t, store.RemoveOffering(ctx, ""), apperrors.ErrOfferingNotFound)
}

func TestStore_Register(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryKVRepository()
	store := newTestStore(t, repo)

	offering, err := store.Offering("id-2")
	require.NoError(t, err)

	reg, err := store.Register(ctx, "Asha", &offering)
	require.NoError(t, err)
	assert.Equal(t, "id-4", reg.ID)
	assert.Equal(t, "Asha registered for Group - English", reg.String())
	assert.Equal(t, []models.Registration{reg}, store.Registrations())
	assert.Equal(t, defaultOfferings(), store.Offerings())

	// duplicates are accepted
	_, err = store.Register(ctx, "Asha", &offering)
	require.NoError(t, err)
	assert.Len(t, store.Registrations(), 2)

	_, err = store.Register(ctx, "", &offering)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	_, err = store.Register(ctx, "Ravi", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Len(t, store.Registrations(), 2)

	reloaded := newTestStore(t, repo)
	assert.Equal(t, store.Registrations(), reloaded.Registrations())
}

func TestStore_RegisterForUnlistedOffering(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, repositories.NewMemoryKVRepository())

	reg, err := store.Register(ctx, "Ravi", &models.Offering{Course: "Latin", Type: "Special"})
	require.NoError(t, err)
	assert.Equal(t, "Special - Latin", reg.Offering.Label())

	// unlinked snapshots are never touched by catalog changes
	require.NoError(t, store.RemoveCourseType(ctx, "Special"))
	assert.Equal(t, []models.Registration{reg}, store.Registrations())
}

func TestStore_CatalogChangesReachRegistrations(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, store *Store, student, id string) {
		t.Helper()
		offering, err := store.Offering(id)
		require.NoError(t, err)
		_, err = store.Register(ctx, student, &offering)
		require.NoError(t, err)
	}

	t.Run("rename updates snapshots", func(t *testing.T) {
		repo := repositories.NewMemoryKVRepository()
		store := newTestStore(t, repo)
		register(t, store, "Asha", "id-2")

		require.NoError(t, store.RenameCourse(ctx, "English", "French"))
		require.NoError(t, store.RenameCourseType(ctx, "Group", "Cluster"))

		regs := store.Registrations()
		require.Len(t, regs, 1)
		assert.Equal(t, models.Offering{ID: "id-2", Course: "French", Type: "Cluster"}, regs[0].Offering)
		assert.Contains(t, storedValue(t, repo, KeyRegistrations), `"course":"French"`)
	})

	t.Run("update offering updates snapshots", func(t *testing.T) {
		store := newTestStore(t, repositories.NewMemoryKVRepository())
		register(t, store, "Asha", "id-1")

		_, err := store.UpdateOffering(ctx, "id-1", "Hindi", "Group")
		require.NoError(t, err)
		assert.Equal(t, "Group", store.Registrations()[0].Offering.Type)
	})

	t.Run("removing an offering removes its registrations", func(t *testing.T) {
		store := newTestStore(t, repositories.NewMemoryKVRepository())
		register(t, store, "Asha", "id-1")
		register(t, store, "Ravi", "id-2")

		require.NoError(t, store.RemoveOffering(ctx, "id-1"))
		regs := store.Registrations()
		require.Len(t, regs, 1)
		assert.Equal(t, "Ravi", regs[0].Student)
	})

	t.Run("removing a course removes registrations of its offerings", func(t *testing.T) {
		repo := repositories.NewMemoryKVRepository()
		store := newTestStore(t, repo)
		register(t, store, "Asha", "id-1")
		register(t, store, "Ravi", "id-2")

		require.NoError(t, store.RemoveCourse(ctx, "English"))
		regs := store.Registrations()
		require.Len(t, regs, 1)
		assert.Equal(t, "Asha", regs[0].Student)
		assert.NotContains(t, storedValue(t, repo, KeyRegistrations), "Ravi")
	})
}

func TestStore_PersistenceFailureKeepsChange(t *testing.T) {
	ctx := context.Background()
	repo := newUnreliableRepository()
	store := newTestStore(t, repo)
	repo.failWrites = true

	err := store.AddCourse(ctx, "Tamil")
	require.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Contains(t, store.Courses(), "Tamil")

	offering, err := store.AddOffering(ctx, "Tamil", "Group")
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.Equal(t, "Tamil", offering.Course)
	assert.Len(t, store.Offerings(), 4)

	// storage still holds the last successful write
	assert.NotContains(t, storedValue(t, repo, KeyCourses), "Tamil")

	repo.failWrites = false
	require.NoError(t, store.AddCourse(ctx, "Bengali"))
	assert.Contains(t, storedValue(t, repo, KeyCourses), "Tamil")
}

func TestStore_OpenBreakerStillReportsPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	inner := newUnreliableRepository()
	repo := repositories.NewBreakerKVRepository(inner, repositories.BreakerConfig{
		Name:             "flaky",
		FailureThreshold: 1,
		Timeout:          time.Minute,
	}, zerolog.Nop())
	store := newTestStore(t, repo)
	inner.failWrites = true

	err := store.AddCourse(ctx, "Tamil")
	require.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.ErrorIs(t, err, errDiskFull)

	// the breaker is open now and rejects the write without reaching storage
	writes := inner.writes
	err = store.AddCourse(ctx, "Bengali")
	require.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.Equal(t, writes, inner.writes)
	assert.Equal(t, []string{"Hindi", "English", "Urdu", "Tamil", "Bengali"}, store.Courses())
}

func TestStore_RenameCascadeKeepsCollidingOfferings(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryKVRepository()
	store := newTestStore(t, repo)

	math, err := store.AddOffering(ctx, "Math", "Individual")
	require.NoError(t, err)
	require.NoError(t, store.RenameCourse(ctx, "Hindi", "Math"))

	var matches []models.Offering
	for _, o := range store.Offerings() {
		if o.Matches("Math", "Individual") {
			matches = append(matches, o)
		}
	}
	require.Len(t, matches, 2)
	assert.Equal(t, "id-1", matches[0].ID)
	assert.Equal(t, math.ID, matches[1].ID)
	assert.NotEqual(t, matches[0].ID, matches[1].ID)

	// each copy is still addressed by its own ID
	require.NoError(t, store.RemoveOffering(ctx, math.ID))
	offering, err := store.Offering("id-1")
	require.NoError(t, err)
	assert.Equal(t, "Math", offering.Course)

	// inserting the pair again is still refused
	_, err = store.AddOffering(ctx, "Math", "Individual")
	assert.ErrorIs(t, err, apperrors.ErrOfferingAlreadyExists)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	store := newTestStore(t, repositories.NewMemoryKVRepository())

	snapshot := store.Snapshot()
	snapshot.Courses[0] = "Sanskrit"
	snapshot.Offerings[0].Course = "Sanskrit"

	assert.Equal(t, "Hindi", store.Courses()[0])
	assert.Equal(t, "Hindi", store.Offerings()[0].Course)
}

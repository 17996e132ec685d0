package repository

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selecao-backend/internal/models"
	"selecao-backend/internal/testutil"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestEvaluationLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	fixtures := testutil.SetupFixtures(t, tc.DB)
	repo := NewEvaluationRepository(tc.DB)

	eval := &models.Evaluation{
		TeamID:            fixtures.Team.ID,
		TrainingSessionID: fixtures.Session.ID,
		Judge:             "Judge A",
		Immersion:         intPtr(4),
		Development:       intPtr(3),
		Presentation:      intPtr(2),
		HiddenScore:       4*0.3 + 3*0.5 + 2*0.2,
	}
	require.NoError(t, repo.Create(eval))
	require.NotZero(t, eval.ID)
	assert.True(t, eval.IsActive)

	// The partial unique index rejects a second active evaluation for
	// the same team and session
	duplicate := &models.Evaluation{
		TeamID:            fixtures.Team.ID,
		TrainingSessionID: fixtures.Session.ID,
		Judge:             "Judge B",
	}
	err := repo.Create(duplicate)
	require.Error(t, err)
	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("23505"), pqErr.Code)

	exists, err := repo.ActiveExists(fixtures.Team.ID, fixtures.Session.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Deactivation is reversible
	require.NoError(t, repo.Deactivate(eval.ID, models.DeleteKindDeactivated, "registered twice"))

	loaded, err := repo.GetByID(eval.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.False(t, loaded.IsActive)
	require.NotNil(t, loaded.DeleteKind)
	assert.Equal(t, models.DeleteKindDeactivated, *loaded.DeleteKind)
	require.NotNil(t, loaded.DeleteReason)
	assert.Equal(t, "registered twice", *loaded.DeleteReason)
	assert.NotNil(t, loaded.DeletedAt)

	exists, err = repo.ActiveExists(fixtures.Team.ID, fixtures.Session.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	// Once deactivated, a new active evaluation may take the slot
	require.NoError(t, repo.Create(duplicate))

	require.NoError(t, repo.Deactivate(duplicate.ID, models.DeleteKindDeactivated, "make room"))
	require.NoError(t, repo.Reactivate(eval.ID))

	loaded, err = repo.GetByID(eval.ID)
	require.NoError(t, err)
	assert.True(t, loaded.IsActive)
	assert.Nil(t, loaded.DeleteKind)
	assert.Nil(t, loaded.DeleteReason)
	assert.Nil(t, loaded.DeletedAt)

	// Permanent deletion keeps the row but marks it "deleted"
	require.NoError(t, repo.Deactivate(eval.ID, models.DeleteKindDeleted, "bad data"))

	loaded, err = repo.GetByID(eval.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.DeleteKind)
	assert.Equal(t, models.DeleteKindDeleted, *loaded.DeleteKind)

	all, err := repo.GetAll(false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := repo.GetAll(true)
	require.NoError(t, err)
	assert.Len(t, active, 0)
}

func TestRecomputeActiveScores(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	fixtures := testutil.SetupFixtures(t, tc.DB)
	repo := NewEvaluationRepository(tc.DB)

	eval := &models.Evaluation{
		TeamID:            fixtures.Team.ID,
		TrainingSessionID: fixtures.Session.ID,
		Judge:             "Judge A",
		Immersion:         intPtr(4),
		Development:       intPtr(4),
		Presentation:      intPtr(4),
		HiddenScore:       99.0, // stale on purpose
	}
	require.NoError(t, repo.Create(eval))

	updated, err := repo.RecomputeActiveScores(func(immersion, development, presentation *int) float64 {
		return float64(*immersion)*0.3 + float64(*development)*0.5 + float64(*presentation)*0.2
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	scores, err := repo.GetActiveScores()
	require.NoError(t, err)
	assert.InDelta(t, 4.0, scores[eval.ID], 1e-9)
}

func TestContributionUpsert(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	fixtures := testutil.SetupFixtures(t, tc.DB)
	evalRepo := NewEvaluationRepository(tc.DB)
	contribRepo := NewContributionRepository(tc.DB)

	eval := &models.Evaluation{
		TeamID:            fixtures.Team.ID,
		TrainingSessionID: fixtures.Session.ID,
		Judge:             "Judge A",
	}
	require.NoError(t, evalRepo.Create(eval))

	contribution := &models.MemberContribution{
		EvaluationID: eval.ID,
		MemberID:     fixtures.Candidate.ID,
		Weight:       floatPtr(0.8),
	}
	require.NoError(t, contribRepo.Upsert(contribution))

	// A second save for the same pair updates in place
	contribution.Weight = floatPtr(1.1)
	require.NoError(t, contribRepo.Upsert(contribution))

	stored, err := contribRepo.GetByEvaluation(eval.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.NotNil(t, stored[0].Weight)
	assert.InDelta(t, 1.1, *stored[0].Weight, 1e-9)
}

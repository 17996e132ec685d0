package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selecao-backend/internal/models"
	"selecao-backend/internal/repository"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestComputeHiddenScore(t *testing.T) {
	weights := Weights{Immersion: 0.3, Development: 0.5, Presentation: 0.2}

	score := ComputeHiddenScore(intPtr(4), intPtr(3), intPtr(2), weights)
	assert.InDelta(t, 4*0.3+3*0.5+2*0.2, score, 1e-9)
}

func TestComputeHiddenScoreNilScores(t *testing.T) {
	weights := Weights{Immersion: 0.3, Development: 0.5, Presentation: 0.2}

	assert.Equal(t, 0.0, ComputeHiddenScore(nil, nil, nil, weights))
	assert.InDelta(t, 3*0.5, ComputeHiddenScore(nil, intPtr(3), nil, weights), 1e-9)
}

func TestComputeHiddenScoreDefaultWeights(t *testing.T) {
	// A missing weight name defaults to 1.0
	stored := map[string]float64{models.WeightImmersion: 0.3}
	weights := Weights{
		Immersion:    weightOrDefault(stored, models.WeightImmersion),
		Development:  weightOrDefault(stored, models.WeightDevelopment),
		Presentation: weightOrDefault(stored, models.WeightPresentation),
	}

	assert.Equal(t, 0.3, weights.Immersion)
	assert.Equal(t, 1.0, weights.Development)
	assert.Equal(t, 1.0, weights.Presentation)
}

func TestBuildTeamSummariesPenalty(t *testing.T) {
	averages := []repository.TeamAverage{
		{TeamID: 1, Name: "Alpha", AvgHidden: 3.0},
		{TeamID: 2, Name: "Beta", AvgHidden: 2.0},
	}
	presence := map[uint]float64{
		1: 0.5,  // below threshold, penalized
		2: 0.75, // at threshold, not penalized
	}

	summaries := BuildTeamSummaries(averages, presence, true)
	require.Len(t, summaries, 2)

	assert.InDelta(t, 3.0*0.9, summaries[0].FinalScore, 1e-9)
	assert.InDelta(t, 3.0, summaries[0].AvgHidden, 1e-9)
	assert.InDelta(t, 50.0, summaries[0].PresencePct, 1e-9)

	assert.InDelta(t, 2.0, summaries[1].FinalScore, 1e-9)
}

func TestBuildTeamSummariesPenaltyDisabled(t *testing.T) {
	averages := []repository.TeamAverage{{TeamID: 1, Name: "Alpha", AvgHidden: 3.0}}
	presence := map[uint]float64{1: 0.1}

	summaries := BuildTeamSummaries(averages, presence, false)
	require.Len(t, summaries, 1)
	assert.InDelta(t, 3.0, summaries[0].FinalScore, 1e-9)
}

func TestBuildTeamSummariesNoAttendance(t *testing.T) {
	// A team with no attendance rows reports 0% presence and gets the
	// penalty; a team with no evaluations still shows up with zeros
	averages := []repository.TeamAverage{{TeamID: 7, Name: "Gamma", AvgHidden: 0.0}}

	summaries := BuildTeamSummaries(averages, map[uint]float64{}, true)
	require.Len(t, summaries, 1)
	assert.Equal(t, 0.0, summaries[0].PresencePct)
	assert.Equal(t, 0.0, summaries[0].FinalScore)
}

func TestProjectScores(t *testing.T) {
	evalScores := map[uint]float64{10: 2.5, 11: 3.0}
	contributions := []models.MemberContribution{
		{EvaluationID: 10, MemberID: 1, Weight: floatPtr(1.2)},
		{EvaluationID: 11, MemberID: 1, Weight: floatPtr(0.5)},
		{EvaluationID: 10, MemberID: 2, Weight: nil}, // defaults to 1.0
	}
	names := map[uint]string{1: "Ana", 2: "Bruno"}
	teams := map[uint]string{1: "Alpha", 2: "Alpha"}

	scores := ProjectScores(evalScores, contributions, names, teams)
	require.Len(t, scores, 2)

	assert.Equal(t, uint(1), scores[0].MemberID)
	assert.InDelta(t, 2.5*1.2+3.0*0.5, scores[0].TotalScore, 1e-9)
	assert.Equal(t, 2, scores[0].EvalCount)

	assert.Equal(t, uint(2), scores[1].MemberID)
	assert.InDelta(t, 2.5, scores[1].TotalScore, 1e-9)
	assert.Equal(t, 1, scores[1].EvalCount)
}

func TestProjectScoresInactiveEvaluation(t *testing.T) {
	// Evaluation 99 is not in the active score map, so it contributes 0.0
	// but still counts toward eval_count
	evalScores := map[uint]float64{10: 2.0}
	contributions := []models.MemberContribution{
		{EvaluationID: 10, MemberID: 1, Weight: floatPtr(1.0)},
		{EvaluationID: 99, MemberID: 1, Weight: floatPtr(1.0)},
	}

	scores := ProjectScores(evalScores, contributions, map[uint]string{1: "Ana"}, map[uint]string{1: "Alpha"})
	require.Len(t, scores, 1)
	assert.InDelta(t, 2.0, scores[0].TotalScore, 1e-9)
	assert.Equal(t, 2, scores[0].EvalCount)
}

func TestProjectScoresOrderIndependent(t *testing.T) {
	evalScores := map[uint]float64{10: 1.5, 11: 2.5, 12: 3.5}
	contributions := []models.MemberContribution{
		{EvaluationID: 10, MemberID: 3, Weight: floatPtr(0.8)},
		{EvaluationID: 11, MemberID: 3, Weight: floatPtr(1.1)},
		{EvaluationID: 12, MemberID: 3, Weight: floatPtr(0.3)},
	}
	reversed := []models.MemberContribution{contributions[2], contributions[1], contributions[0]}

	names := map[uint]string{3: "Carla"}
	teams := map[uint]string{3: "Beta"}

	forward := ProjectScores(evalScores, contributions, names, teams)
	backward := ProjectScores(evalScores, reversed, names, teams)

	require.Len(t, forward, 1)
	require.Len(t, backward, 1)
	assert.InDelta(t, forward[0].TotalScore, backward[0].TotalScore, 1e-9)
}

func TestProjectScoresFallbackLabels(t *testing.T) {
	evalScores := map[uint]float64{10: 1.0}
	contributions := []models.MemberContribution{
		{EvaluationID: 10, MemberID: 42, Weight: floatPtr(1.0)},
	}

	scores := ProjectScores(evalScores, contributions, map[uint]string{}, map[uint]string{})
	require.Len(t, scores, 1)
	assert.Equal(t, "Candidato ID 42", scores[0].Name)
	assert.Equal(t, "Sem equipe", scores[0].Team)
}

func TestAssignRanksStatuses(t *testing.T) {
	scores := []models.MemberScore{
		{MemberID: 1, TotalScore: 90},
		{MemberID: 2, TotalScore: 80},
		{MemberID: 3, TotalScore: 70},
		{MemberID: 4, TotalScore: 60},
		{MemberID: 5, TotalScore: 50},
		{MemberID: 6, TotalScore: 40},
	}

	ranked := AssignRanks(scores, 2, 2)
	require.Len(t, ranked, 6)

	assert.Equal(t, models.StatusApproved, ranked[0].Status)
	assert.Equal(t, models.StatusApproved, ranked[1].Status)
	assert.Equal(t, models.StatusWaitlisted, ranked[2].Status)
	assert.Equal(t, models.StatusWaitlisted, ranked[3].Status)
	assert.Equal(t, models.StatusRejected, ranked[4].Status)
	assert.Equal(t, models.StatusRejected, ranked[5].Status)

	for i, m := range ranked {
		assert.Equal(t, i+1, m.Rank)
	}
}

func TestAssignRanksTieBreak(t *testing.T) {
	scores := []models.MemberScore{
		{MemberID: 9, TotalScore: 50},
		{MemberID: 3, TotalScore: 50},
		{MemberID: 5, TotalScore: 50},
	}

	ranked := AssignRanks(scores, 1, 1)
	require.Len(t, ranked, 3)

	// Equal scores rank by ascending member id
	assert.Equal(t, uint(3), ranked[0].MemberID)
	assert.Equal(t, uint(5), ranked[1].MemberID)
	assert.Equal(t, uint(9), ranked[2].MemberID)
}

func TestAssignRanksEmpty(t *testing.T) {
	ranked := AssignRanks(nil, 5, 5)
	assert.Empty(t, ranked)
}

func TestAssignRanksZeroCounts(t *testing.T) {
	scores := []models.MemberScore{{MemberID: 1, TotalScore: 10}}

	ranked := AssignRanks(scores, 0, 0)
	require.Len(t, ranked, 1)
	assert.Equal(t, models.StatusRejected, ranked[0].Status)
}

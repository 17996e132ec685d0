package service

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selecao-backend/internal/models"
)

func sampleRanked() []models.RankedMember {
	return []models.RankedMember{
		{
			MemberScore: models.MemberScore{MemberID: 1, Name: "Ana", Team: "Alpha", TotalScore: 7.5},
			Rank:        1,
			Status:      models.StatusApproved,
		},
		{
			MemberScore: models.MemberScore{MemberID: 2, Name: "Bruno", Team: "Beta", TotalScore: 3.125},
			Rank:        2,
			Status:      models.StatusRejected,
		},
	}
}

func TestRankingRecords(t *testing.T) {
	records := RankingRecords(sampleRanked())
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Posição no ranking", "Nome do aluno", "Equipe", "Score final", "Status final"}, records[0])
	assert.Equal(t, []string{"1", "Ana", "Alpha", "7.500", "Aprovado"}, records[1])
	assert.Equal(t, []string{"2", "Bruno", "Beta", "3.125", "Não aprovado"}, records[2])
}

func TestFinalResultRecords(t *testing.T) {
	records := FinalResultRecords(sampleRanked())
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Nome do aluno", "Equipe", "Score final interno", "Status final"}, records[0])
	assert.Equal(t, []string{"Ana", "Alpha", "7.500", "Aprovado"}, records[1])
}

func TestRankingRecordsEmpty(t *testing.T) {
	records := RankingRecords(nil)
	require.Len(t, records, 1)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, RankingRecords(sampleRanked())))

	parsed, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 3)
	assert.Equal(t, "7.500", parsed[1][3])
}

package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selecao-backend/internal/models"
)

func TestJSONResponseNilSlice(t *testing.T) {
	w := httptest.NewRecorder()

	var candidates []models.Candidate
	require.NoError(t, JSONResponse(w, candidates))

	assert.Equal(t, "[]\n", w.Body.String())
}

func TestJSONResponseNestedNilSlice(t *testing.T) {
	w := httptest.NewRecorder()

	payload := struct {
		Logs  []models.AuditLog `json:"logs"`
		Total int               `json:"total"`
	}{Total: 0}

	require.NoError(t, JSONResponse(w, payload))

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	assert.Equal(t, "[]", string(decoded["logs"]))
}

func TestJSONResponseKeepsTimestamps(t *testing.T) {
	w := httptest.NewRecorder()

	team := models.Team{ID: 1, Name: "Alpha", Competition: models.CompetitionOBR}
	require.NoError(t, JSONResponse(w, team))

	assert.True(t, strings.Contains(w.Body.String(), `"name":"Alpha"`))
}

func TestPathID(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/teams/12", nil)
	r.SetPathValue("id", "12")

	id, ok := pathID(r, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(12), id)
}

func TestPathIDInvalid(t *testing.T) {
	for _, raw := range []string{"", "0", "-3", "abc"} {
		r := httptest.NewRequest("GET", "/api/v1/teams/x", nil)
		r.SetPathValue("id", raw)

		if _, ok := pathID(r, "id"); ok {
			t.Errorf("expected %q to be rejected", raw)
		}
	}
}

package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"selecao-backend/internal/models"
)

// ExportService writes the CSV reports for the selection process
type ExportService struct {
	scoringService *ScoringService
	auditService   *AuditService
}

// NewExportService creates a new export service
func NewExportService(scoringService *ScoringService, auditService *AuditService) *ExportService {
	return &ExportService{
		scoringService: scoringService,
		auditService:   auditService,
	}
}

// RankingRecords builds the rows of the public ranking report, header
// included. One row per ranked member, ordered by rank position.
func RankingRecords(ranked []models.RankedMember) [][]string {
	records := make([][]string, 0, len(ranked)+1)
	records = append(records, []string{"Posição no ranking", "Nome do aluno", "Equipe", "Score final", "Status final"})

	for _, m := range ranked {
		records = append(records, []string{
			strconv.Itoa(m.Rank),
			m.Name,
			m.Team,
			fmt.Sprintf("%.3f", m.TotalScore),
			m.Status,
		})
	}

	return records
}

// FinalResultRecords builds the rows of the internal result report with
// the raw projected scores, header included.
func FinalResultRecords(ranked []models.RankedMember) [][]string {
	records := make([][]string, 0, len(ranked)+1)
	records = append(records, []string{"Nome do aluno", "Equipe", "Score final interno", "Status final"})

	for _, m := range ranked {
		records = append(records, []string{
			m.Name,
			m.Team,
			fmt.Sprintf("%.3f", m.TotalScore),
			m.Status,
		})
	}

	return records
}

// WriteRankingCSV writes the public ranking report
func (s *ExportService) WriteRankingCSV(w io.Writer, approvedCount, waitlistCount int) error {
	ranked, err := s.scoringService.Ranking(approvedCount, waitlistCount)
	if err != nil {
		return err
	}

	if err := writeCSV(w, RankingRecords(ranked)); err != nil {
		return err
	}

	s.auditService.Log("export.ranking", "evaluations",
		fmt.Sprintf("rows=%d", len(ranked)))

	return nil
}

// WriteFinalResultCSV writes the internal result report
func (s *ExportService) WriteFinalResultCSV(w io.Writer, approvedCount, waitlistCount int) error {
	ranked, err := s.scoringService.Ranking(approvedCount, waitlistCount)
	if err != nil {
		return err
	}

	if err := writeCSV(w, FinalResultRecords(ranked)); err != nil {
		return err
	}

	s.auditService.Log("export.final_result", "evaluations",
		fmt.Sprintf("rows=%d", len(ranked)))

	return nil
}

func writeCSV(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	for _, record := range records {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return nil
}

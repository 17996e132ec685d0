package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"selecao-backend/internal/models"
	"selecao-backend/internal/repository"
	"selecao-backend/internal/service"
)

// DiaryHandler handles team diary and attachment requests
type DiaryHandler struct {
	diaryRepo    *repository.DiaryRepository
	auditService *service.AuditService
}

// NewDiaryHandler creates a new diary handler
func NewDiaryHandler(diaryRepo *repository.DiaryRepository, auditService *service.AuditService) *DiaryHandler {
	return &DiaryHandler{
		diaryRepo:    diaryRepo,
		auditService: auditService,
	}
}

type diaryEntryRequest struct {
	Title   string  `json:"title" validate:"required,min=1,max=200"`
	Content *string `json:"content"`
}

type attachmentRequest struct {
	DiaryEntryID uint    `json:"diary_entry_id" validate:"required"`
	FilePath     string  `json:"file_path" validate:"required,max=500"`
	OriginalName string  `json:"original_name" validate:"required,max=200"`
	MimeType     *string `json:"mime_type" validate:"omitempty,max=100"`
}

// ListEntries lists the diary entries of a team
// @Summary List diary entries
// @Description Get the diary entries of a team, newest first
// @Tags Diary
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {array} models.DiaryEntry
// @Failure 400 {object} map[string]string "Invalid id"
// @Router /teams/{id}/diary [get]
func (h *DiaryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	entries, err := h.diaryRepo.GetEntriesByTeam(teamID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list diary entries")
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}

// CreateEntry adds a diary entry to a team
// @Summary Create diary entry
// @Description Add a diary entry to a team
// @Tags Diary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param request body diaryEntryRequest true "Entry data"
// @Success 201 {object} models.DiaryEntry
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /teams/{id}/diary [post]
func (h *DiaryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	var req diaryEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	entry := &models.DiaryEntry{
		TeamID:  teamID,
		Title:   req.Title,
		Content: req.Content,
	}

	if err := h.diaryRepo.CreateEntry(entry); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create diary entry")
		return
	}

	h.auditService.Log("diary.create", "diary_entries",
		fmt.Sprintf("team_id=%d, title=%q", teamID, entry.Title))

	respondWithJSON(w, http.StatusCreated, entry)
}

// UpdateEntry edits a diary entry
// @Summary Update diary entry
// @Description Update a diary entry's title or content
// @Tags Diary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Param request body diaryEntryRequest true "Entry data"
// @Success 200 {object} models.DiaryEntry
// @Failure 404 {object} map[string]string "Not found"
// @Router /diary/{id} [put]
func (h *DiaryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	var req diaryEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	entry, err := h.diaryRepo.GetEntryByID(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load diary entry")
		return
	}
	if entry == nil {
		respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
		return
	}

	entry.Title = req.Title
	entry.Content = req.Content

	if err := h.diaryRepo.UpdateEntry(entry); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to update diary entry")
		return
	}

	h.auditService.Log("diary.update", "diary_entries",
		fmt.Sprintf("entry_id=%d", id))

	respondWithJSON(w, http.StatusOK, entry)
}

// DeleteEntry removes a diary entry and its attachments
// @Summary Delete diary entry
// @Description Delete a diary entry; its attachment records are removed too
// @Tags Diary
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 404 {object} map[string]string "Not found"
// @Router /diary/{id} [delete]
func (h *DiaryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	entry, err := h.diaryRepo.GetEntryByID(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load diary entry")
		return
	}
	if entry == nil {
		respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
		return
	}

	if err := h.diaryRepo.DeleteEntry(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to delete diary entry")
		return
	}

	h.auditService.Log("diary.delete", "diary_entries",
		fmt.Sprintf("entry_id=%d, team_id=%d", id, entry.TeamID))

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Diary entry deleted"})
}

// ListAttachments lists the attachments recorded for a team
// @Summary List attachments
// @Description Get the attachment records of a team's diary entries
// @Tags Diary
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {array} models.Attachment
// @Failure 400 {object} map[string]string "Invalid id"
// @Router /teams/{id}/attachments [get]
func (h *DiaryHandler) ListAttachments(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	attachments, err := h.diaryRepo.GetAttachmentsByTeam(teamID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list attachments")
		return
	}

	respondWithJSON(w, http.StatusOK, attachments)
}

// CreateAttachment records an attachment on a diary entry
// @Summary Create attachment
// @Description Record an attachment reference on a diary entry; the file itself lives outside the store
// @Tags Diary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body attachmentRequest true "Attachment metadata"
// @Success 201 {object} models.Attachment
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /attachments [post]
func (h *DiaryHandler) CreateAttachment(w http.ResponseWriter, r *http.Request) {
	var req attachmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	attachment := &models.Attachment{
		DiaryEntryID: req.DiaryEntryID,
		FilePath:     req.FilePath,
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
	}

	if err := h.diaryRepo.CreateAttachment(attachment); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create attachment")
		return
	}

	h.auditService.Log("attachment.create", "attachments",
		fmt.Sprintf("entry_id=%d, name=%q", attachment.DiaryEntryID, attachment.OriginalName))

	respondWithJSON(w, http.StatusCreated, attachment)
}

// DeleteAttachment removes an attachment record
// @Summary Delete attachment
// @Description Delete an attachment record
// @Tags Diary
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attachment ID"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 400 {object} map[string]string "Invalid id"
// @Router /attachments/{id} [delete]
func (h *DiaryHandler) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	if err := h.diaryRepo.DeleteAttachment(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to delete attachment")
		return
	}

	h.auditService.Log("attachment.delete", "attachments",
		fmt.Sprintf("attachment_id=%d", id))

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Attachment deleted"})
}

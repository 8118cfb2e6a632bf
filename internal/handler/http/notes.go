package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-chi/chi/v5"
)

const (
	formFieldContent   = "content"
	formFieldTimestamp = "timestamp"
	formFieldFile      = "file"
)

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username, ok := requestUser(w, r)
	if !ok {
		return
	}

	notes, err := h.services.NoteService.ListNotes(ctx, username)
	if err != nil {
		writeError(w, log, err, "error listing notes")
		return
	}

	usage, err := h.services.NoteService.StorageUsage(ctx, username)
	if err != nil {
		writeError(w, log, err, "error computing storage usage")
		return
	}

	utils.WriteJSON(w, models.NotesResponse{
		Notes:  notes,
		Usage:  usage,
		Length: len(notes),
	}, http.StatusOK)
}

// addNote accepts either a multipart form (content, timestamp and an optional
// file part) or a JSON body for text-only notes.
func (h *Handler) addNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username, ok := requestUser(w, r)
	if !ok {
		return
	}

	var newNote models.NewNote
	if isJSONRequest(r) {
		var req models.CreateNoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn().Err(err).Msg("Invalid JSON was passed")
			http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
			return
		}
		newNote = models.NewNote{Content: req.Content, Timestamp: req.Timestamp}
	} else {
		if h.maxUploadSize > 0 {
			if r.ContentLength > h.maxUploadSize {
				log.Warn().Int64("size", r.ContentLength).Int64("limit", h.maxUploadSize).Msg("upload exceeds request size limit")
				http.Error(w, "upload exceeds request size limit", http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
		}

		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				log.Warn().Err(err).Int64("limit", maxBytesErr.Limit).Msg("upload exceeds request size limit")
				http.Error(w, "upload exceeds request size limit", http.StatusRequestEntityTooLarge)
				return
			}
			log.Warn().Err(err).Msg("invalid multipart form")
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		newNote = models.NewNote{
			Content:   r.FormValue(formFieldContent),
			Timestamp: r.FormValue(formFieldTimestamp),
		}

		file, header, err := r.FormFile(formFieldFile)
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			log.Warn().Err(err).Msg("invalid file part")
			http.Error(w, "invalid file part", http.StatusBadRequest)
			return
		default:
			defer file.Close()
			newNote.File = &models.Upload{
				Name:   header.Filename,
				Size:   header.Size,
				Reader: file,
			}
		}
	}

	noteID, err := h.services.NoteService.AddNote(ctx, username, newNote)
	if err != nil {
		writeError(w, log, err, "error adding note")
		return
	}

	utils.WriteJSON(w, models.NoteCreatedResponse{NoteID: noteID}, http.StatusCreated)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	username, ok := requestUser(w, r)
	if !ok {
		return
	}

	note, err := h.services.NoteService.GetNote(r.Context(), username, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, log, err, "error getting note")
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	username, ok := requestUser(w, r)
	if !ok {
		return
	}

	var req models.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.UpdateNote(r.Context(), username, chi.URLParam(r, "id"), req.Content); err != nil {
		writeError(w, log, err, "error updating note")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	username, ok := requestUser(w, r)
	if !ok {
		return
	}

	if err := h.services.NoteService.DeleteNote(r.Context(), username, chi.URLParam(r, "id")); err != nil {
		writeError(w, log, err, "error deleting note")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) downloadFile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	username, ok := requestUser(w, r)
	if !ok {
		return
	}

	download, err := h.services.NoteService.ResolveDownload(r.Context(), username, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, log, err, "error resolving attachment")
		return
	}
	defer download.Content.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", contentDisposition(download.FileName))
	w.Header().Set("Content-Length", strconv.FormatInt(download.Size, 10))
	w.WriteHeader(http.StatusOK)

	if _, err = io.Copy(w, download.Content); err != nil {
		log.Err(err).Str("file", download.FileName).Msg("error streaming attachment")
	}
}

func (h *Handler) storageUsage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	username, ok := requestUser(w, r)
	if !ok {
		return
	}

	usage, err := h.services.NoteService.StorageUsage(r.Context(), username)
	if err != nil {
		writeError(w, log, err, "error computing storage usage")
		return
	}

	utils.WriteJSON(w, usage, http.StatusOK)
}

func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// contentDisposition renders an attachment header. Plain ASCII names use the
// quoted form; anything else falls back to the RFC 2231 encoding.
func contentDisposition(fileName string) string {
	if isPlainASCII(fileName) {
		return `attachment; filename="` + fileName + `"`
	}
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": fileName}); v != "" {
		return v
	}
	return "attachment"
}

func isPlainASCII(s string) bool {
	for _, c := range s {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return !strings.ContainsAny(s, `"\`)
}

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"memepop/internal/http-server/handler/response"
	"memepop/internal/http-server/handler/session/dto"
	"memepop/internal/preset"
	"memepop/internal/usecase/editor"
	"memepop/internal/usecase/render"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/zlog"
)

const (
	maxMemory   = 8 << 20
	maxJSONBody = 64 << 10
)

type SessionHandler struct {
	editor        editorUsecase
	renderer      previewRenderer
	validate      *validator.Validate
	logger        *zlog.Zerolog
	maxUploadSize int64
}

func NewSessionHandler(uc editorUsecase, renderer previewRenderer, logger *zlog.Zerolog, maxUploadSize int64) *SessionHandler {
	return &SessionHandler{
		editor:        uc,
		renderer:      renderer,
		validate:      preset.NewValidator(),
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
}

func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.editor.Create(r.Context())
	if err != nil {
		h.handleError(w, err, "")
		return
	}

	response.JSON(w, h.logger, http.StatusCreated, dto.NewSessionResponse(s))
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s, err := h.editor.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, err, id)
		return
	}

	response.JSON(w, h.logger, http.StatusOK, dto.NewSessionResponse(s))
}

func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.editor.Delete(r.Context(), id); err != nil {
		h.handleError(w, err, id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s, err := h.editor.Reset(r.Context(), id)
	if err != nil {
		h.handleError(w, err, id)
		return
	}

	response.JSON(w, h.logger, http.StatusOK, dto.NewSessionResponse(s))
}

func (h *SessionHandler) EditText(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	index, ok := h.parseIndex(w, r)
	if !ok {
		return
	}

	var req dto.EditTextRequest
	if !h.decode(w, r, &req) {
		return
	}

	s, err := h.editor.ApplyEdit(r.Context(), id, index, req.ToEdit())
	if err != nil {
		h.handleError(w, err, id)
		return
	}

	response.JSON(w, h.logger, http.StatusOK, dto.NewSessionResponse(s))
}

func (h *SessionHandler) GetElement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	index, ok := h.parseIndex(w, r)
	if !ok {
		return
	}

	handle, mounted, err := h.editor.Element(r.Context(), id, index)
	if err != nil {
		h.handleError(w, err, id)
		return
	}

	response.JSON(w, h.logger, http.StatusOK, dto.ElementResponse{
		Index:   index,
		Handle:  handle,
		Mounted: mounted,
	})
}

func (h *SessionHandler) MountElement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	index, ok := h.parseIndex(w, r)
	if !ok {
		return
	}

	var req dto.ElementRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.editor.Mount(r.Context(), id, index, req.Handle); err != nil {
		h.handleError(w, err, id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) UnmountElement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	index, ok := h.parseIndex(w, r)
	if !ok {
		return
	}

	if err := h.editor.Unmount(r.Context(), id, index); err != nil {
		h.handleError(w, err, id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) SelectTint(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.TintRequest
	if !h.decode(w, r, &req) {
		return
	}

	s, err := h.editor.SelectTint(r.Context(), id, req.Name)
	if err != nil {
		h.handleError(w, err, id)
		return
	}

	response.JSON(w, h.logger, http.StatusOK, dto.NewSessionResponse(s))
}

// Preview renders the session's current layers over the uploaded image.
func (h *SessionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	s, err := h.editor.Get(ctx, id)
	if err != nil {
		h.handleError(w, err, id)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.handleError(w, ErrFileTooLarge, id)
			return
		}
		h.logger.Warn().Err(err).Msg("Failed to parse multipart form")
		response.Error(w, h.logger, http.StatusBadRequest, "Invalid request format", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.logger.Warn().Err(err).Msg("File not found in request")
		response.Error(w, h.logger, http.StatusBadRequest, "File is required", nil)
		return
	}
	defer file.Close()

	if err := h.validateFile(header); err != nil {
		h.handleError(w, err, id)
		return
	}

	out, format, err := h.renderer.Render(ctx, file, s.Texts, s.Tint, r.FormValue("format"))
	if err != nil {
		h.handleError(w, err, id)
		return
	}

	w.Header().Set("Content-Type", render.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"meme.%s\"", format))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, out); err != nil {
		h.logger.Error().Err(err).Str("session_id", id).Msg("Failed to stream preview")
	}
}

func (h *SessionHandler) validateFile(header *multipart.FileHeader) error {
	if header.Size > h.maxUploadSize {
		return ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !isValidExtension(ext) {
		return fmt.Errorf("%w: unsupported extension %q, allowed: jpg, jpeg, png, gif", render.ErrDecode, ext)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%w: file must be an image", render.ErrDecode)
	}

	return nil
}

func isValidExtension(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	}
	return false
}

func (h *SessionHandler) parseIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		response.Error(w, h.logger, http.StatusBadRequest, "Text index must be an integer", nil)
		return 0, false
	}
	return index, true
}

func (h *SessionHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Error(w, h.logger, http.StatusBadRequest, "Invalid request body", err)
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		response.Error(w, h.logger, http.StatusBadRequest, "Validation failed", err)
		return false
	}

	return true
}

func (h *SessionHandler) handleError(w http.ResponseWriter, err error, sessionID string) {
	switch {
	case errors.Is(err, editor.ErrSessionNotFound):
		h.logger.Info().Str("session_id", sessionID).Msg("Session not found")
		response.Error(w, h.logger, http.StatusNotFound, "Session not found", nil)
	case errors.Is(err, editor.ErrNotEditable):
		response.Error(w, h.logger, http.StatusForbidden, "Text is not editable", nil)
	case errors.Is(err, editor.ErrColorLocked):
		response.Error(w, h.logger, http.StatusForbidden, "Text color is not editable", nil)
	case errors.Is(err, editor.ErrOverlayDisabled):
		response.Error(w, h.logger, http.StatusConflict, "Overlay colors are disabled", nil)
	case errors.Is(err, editor.ErrTooManySessions):
		h.logger.Warn().Msg("Session limit reached")
		response.Error(w, h.logger, http.StatusTooManyRequests, "Too many sessions", nil)
	case errors.Is(err, ErrFileTooLarge):
		response.Error(w, h.logger, http.StatusRequestEntityTooLarge, "File too large", nil)
	case errors.Is(err, render.ErrImageTooLarge):
		response.Error(w, h.logger, http.StatusRequestEntityTooLarge, "Image dimensions too large", err)
	case errors.Is(err, editor.ErrInvalidEdit),
		errors.Is(err, editor.ErrIndexOutOfRange),
		errors.Is(err, editor.ErrUnknownTint),
		errors.Is(err, editor.ErrInvalidElementID):
		response.Error(w, h.logger, http.StatusBadRequest, "Invalid edit", err)
	case errors.Is(err, render.ErrDecode):
		response.Error(w, h.logger, http.StatusBadRequest, "Unsupported image", err)
	default:
		h.logger.Error().Err(err).Str("session_id", sessionID).Msg("Request failed")
		response.Error(w, h.logger, http.StatusInternalServerError, "Internal error", err)
	}
}

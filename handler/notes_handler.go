package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"notesapi/dto"
	"notesapi/middleware"
	"notesapi/usecase"
	"notesapi/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var (
	errInvalidBody  = errors.New("invalid body")
	errBodyTooLarge = errors.New("request body too large")
)

type NotesHandler struct {
	notesService *usecase.NotesService
}

func NewNotesHandler(notesService *usecase.NotesService) *NotesHandler {
	return &NotesHandler{notesService: notesService}
}

// RegisterRoutes mounts the notes resource under rg, e.g. /api/notes.
func (h *NotesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notes := rg.Group("/notes")
	{
		notes.POST("", h.CreateNote)
		notes.GET("", h.ListNotes)
		notes.GET("/:id", h.GetNote)
		notes.PATCH("/:id", h.UpdateNote)
		notes.DELETE("/:id", h.DeleteNote)
	}
}

func (h *NotesHandler) CreateNote(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	note, err := h.notesService.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	middleware.TrackNoteOperation("create")
	log.WithFields(log.Fields{
		"note_id":    note.ID,
		"request_id": c.GetString(middleware.RequestIDKey),
	}).Debug("note created")

	utils.Created(c, dto.NewSingleNoteResponse(note))
}

func (h *NotesHandler) GetNote(c *gin.Context) {
	note, err := h.notesService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.Success(c, dto.NewSingleNoteResponse(note))
}

func (h *NotesHandler) ListNotes(c *gin.Context) {
	page, err := queryInt(c, "page", usecase.DefaultPage)
	if err != nil {
		h.respondError(c, err)
		return
	}
	limit, err := queryInt(c, "limit", usecase.DefaultPageLimit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	notes, err := h.notesService.List(c.Request.Context(), page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.Success(c, dto.NewNoteListResponse(notes))
}

func (h *NotesHandler) UpdateNote(c *gin.Context) {
	var req dto.UpdateNoteRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	note, err := h.notesService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	middleware.TrackNoteOperation("update")
	utils.Success(c, dto.NewSingleNoteResponse(note))
}

func (h *NotesHandler) DeleteNote(c *gin.Context) {
	if err := h.notesService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	middleware.TrackNoteOperation("delete")
	utils.NoContent(c)
}

// respondError maps the service error taxonomy onto status codes. Store failures are
// logged with their cause and answered with an opaque 500.
func (h *NotesHandler) respondError(c *gin.Context, err error) {
	var (
		validationErr  *usecase.ValidationError
		conflictErr    *usecase.ConflictError
		persistenceErr *usecase.PersistenceError
	)

	switch {
	case errors.Is(err, errBodyTooLarge):
		middleware.TrackError("validation")
		utils.PayloadTooLarge(c, "Request body too large")
	case errors.Is(err, errInvalidBody):
		middleware.TrackError("validation")
		utils.BadRequest(c, "Invalid body")
	case errors.As(err, &validationErr):
		middleware.TrackError("validation")
		utils.ValidationFailed(c, validationErr.Fields)
	case errors.Is(err, usecase.ErrNotFound):
		utils.NotFound(c, fmt.Sprintf("Note with ID: %s not found", c.Param("id")))
	case errors.As(err, &conflictErr):
		middleware.TrackError("conflict")
		utils.Conflict(c, conflictErr.Message)
	case errors.As(err, &persistenceErr):
		middleware.TrackError("db")
		log.WithError(persistenceErr.Err).WithFields(log.Fields{
			"op":         persistenceErr.Op,
			"request_id": c.GetString(middleware.RequestIDKey),
		}).Error("notes store failure")
		utils.InternalError(c, "Internal Server Error")
	default:
		middleware.TrackError("unknown")
		log.WithError(err).WithField("request_id", c.GetString(middleware.RequestIDKey)).Error("unhandled notes error")
		utils.InternalError(c, "Internal Server Error")
	}
}

// bindJSON decodes the body. A value of the wrong JSON type for a known field is
// reported as a validation error on that field; a body cut off by the size limit is
// reported as errBodyTooLarge.
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errBodyTooLarge
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return usecase.NewValidationError(utils.FieldError{
				Field:  typeErr.Field,
				Reason: "must be of type " + typeErr.Type.String(),
			})
		}
		return errInvalidBody
	}
	return nil
}

func queryInt(c *gin.Context, key string, defaultVal int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, usecase.NewValidationError(utils.FieldError{
			Field:  key,
			Reason: "must be an integer",
		})
	}
	return value, nil
}

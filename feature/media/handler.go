package media

import (
	"errors"
	"fmt"
	"strconv"

	"media-manager/core/logger"
	"media-manager/core/reconcile"
	"media-manager/core/utils"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for media.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the media routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/media")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleUpload)
	group.Get("/audit", h.HandleAudit)
	group.Post("/audit/repair", h.HandleRepair)
	group.Get("/folders", h.HandleFolders)
	group.Post("/folders", h.HandleCreateFolder)
	group.Get("/:id", h.HandleGet)
	group.Patch("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)
	group.Post("/:id/move", h.HandleMove)
}

// HandleList lists media with drift tags.
// @Summary List Media
// @Description Joins storage objects with metadata rows. Entries carry a state of synced, missing_in_db or missing_in_storage. Missing image dimensions are probed.
// @Tags media
// @Produce json
// @Param folder query string false "Folder (includes subfolders)"
// @Success 200 {object} Listing
// @Failure 503 {object} map[string]string "Storage or database unavailable"
// @Router /media [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	listing, err := h.service.List(c.Context(), c.Query("folder"))
	if err != nil {
		return h.fail(c, "List media failed", err)
	}
	return c.JSON(listing)
}

// HandleAudit reports drift between storage and the database.
// @Summary Audit Media
// @Description Reports objects without rows and rows without objects. Out of sync is a 200.
// @Tags media
// @Produce json
// @Param folder query string false "Folder (includes subfolders)"
// @Success 200 {object} reconcile.ReconcilePlan
// @Failure 503 {object} map[string]string "Storage or database unavailable"
// @Router /media/audit [get]
func (h *Handler) HandleAudit(c *fiber.Ctx) error {
	plan, err := h.service.Audit(c.Context(), c.Query("folder"))
	if err != nil {
		return h.fail(c, "Audit failed", err)
	}
	return c.JSON(plan)
}

// HandleRepair repairs drift.
// @Summary Repair Media Drift
// @Description Upserts rows for objects that have none. Rows without objects are deleted only with delete_orphans and confirm, otherwise flagged.
// @Tags media
// @Produce json
// @Param folder query string false "Folder (includes subfolders)"
// @Param delete_orphans query boolean false "Delete rows whose objects are gone"
// @Param confirm query boolean false "Confirm destructive actions"
// @Param dry_run query boolean false "Plan only"
// @Success 200 {object} map[string]interface{} "Plan and apply result"
// @Failure 503 {object} map[string]string "Storage or database unavailable"
// @Router /media/audit/repair [post]
func (h *Handler) HandleRepair(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.Logger(), c)

	opts := reconcile.ReconcileOptions{
		Repair:        true,
		DeleteOrphans: utils.ToBool(c.Query("delete_orphans")),
		Confirmed:     utils.ToBool(c.Query("confirm")),
		DryRun:        utils.ToBool(c.Query("dry_run")),
	}

	plan, result, err := h.service.Repair(c.Context(), c.Query("folder"), opts)
	if err != nil {
		return h.fail(c, "Repair failed", err)
	}

	l.Info("Repair completed",
		zap.Int("executed", result.Executed),
		zap.Int("conflicts", len(result.Conflicts)),
		zap.Bool("dry_run", opts.DryRun))

	return c.JSON(fiber.Map{
		"summary":           plan.Summary,
		"missingInDatabase": plan.MissingInDatabase,
		"missingInStorage":  plan.MissingInStorage,
		"actions":           plan.Actions,
		"executed":          result.Executed,
		"skipped":           result.Skipped,
		"conflicts":         result.Conflicts,
	})
}

// HandleFolders returns the folder tree.
// @Summary List Folders
// @Tags media
// @Produce json
// @Success 200 {object} map[string][]string
// @Failure 503 {object} map[string]string "Storage or database unavailable"
// @Router /media/folders [get]
func (h *Handler) HandleFolders(c *fiber.Ctx) error {
	folders, err := h.service.Folders(c.Context())
	if err != nil {
		return h.fail(c, "List folders failed", err)
	}
	return c.JSON(fiber.Map{"folders": folders})
}

// HandleCreateFolder creates an empty folder.
// @Summary Create Folder
// @Tags media
// @Accept json
// @Produce json
// @Param body body FolderPayload true "Folder path"
// @Success 201 {object} FolderPayload
// @Failure 400 {object} map[string]string "Invalid path"
// @Router /media/folders [post]
func (h *Handler) HandleCreateFolder(c *fiber.Ctx) error {
	var body FolderPayload
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return h.fail(c, "Create folder failed", fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}

	folder, err := h.service.CreateFolder(c.Context(), body.Path)
	if err != nil {
		return h.fail(c, "Create folder failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(FolderPayload{Path: folder})
}

// HandleUpload stores a new file.
// @Summary Upload Media
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Param folder formData string false "Folder"
// @Param title formData string false "Title (derived from the filename if empty)"
// @Param alt formData string false "Alt text (alt, altText or alt_text)"
// @Success 201 {object} asset.Record
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 503 {object} map[string]string "Storage or database unavailable"
// @Router /media [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return h.fail(c, "Upload failed", fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}

	f, err := fh.Open()
	if err != nil {
		return h.fail(c, "Upload failed", fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}
	defer f.Close()

	rec, err := h.service.Upload(c.Context(), UploadInput{
		Folder:      c.FormValue("folder"),
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Body:        f,
		Text:        PayloadFromForm(func(k string) string { return c.FormValue(k) }),
	})
	if err != nil {
		return h.fail(c, "Upload failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// HandleGet returns one record.
// @Summary Get Media
// @Tags media
// @Produce json
// @Param id path int true "Media ID"
// @Success 200 {object} asset.Record
// @Failure 404 {object} map[string]string "Not found"
// @Router /media/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, "Get media failed", err)
	}
	rec, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.fail(c, "Get media failed", err)
	}
	return c.JSON(rec)
}

// HandleUpdate edits title and alt text.
// @Summary Update Media Text
// @Tags media
// @Accept json
// @Produce json
// @Param id path int true "Media ID"
// @Param body body TextPayload true "title and alt text (alt, altText or alt_text)"
// @Success 200 {object} asset.Record
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Not found"
// @Router /media/{id} [patch]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, "Update media failed", err)
	}

	payload, err := PayloadFromJSON(c.Body())
	if err != nil {
		return h.fail(c, "Update media failed", err)
	}

	rec, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		return h.fail(c, "Update media failed", err)
	}
	return c.JSON(rec)
}

// HandleDelete deletes a record, and the object with cascade=true.
// @Summary Delete Media
// @Tags media
// @Param id path int true "Media ID"
// @Param cascade query boolean false "Also delete the stored object"
// @Success 204
// @Failure 404 {object} map[string]string "Not found"
// @Failure 503 {object} map[string]string "Storage or database unavailable"
// @Router /media/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, "Delete media failed", err)
	}

	if err := h.service.Delete(c.Context(), id, utils.ToBool(c.Query("cascade"))); err != nil {
		return h.fail(c, "Delete media failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleMove moves media to another folder.
// @Summary Move Media
// @Tags media
// @Accept json
// @Produce json
// @Param id path int true "Media ID"
// @Param body body MovePayload true "Target folder"
// @Success 200 {object} asset.Record
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 409 {object} map[string]string "Target already exists"
// @Router /media/{id}/move [post]
func (h *Handler) HandleMove(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, "Move media failed", err)
	}

	var body MovePayload
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return h.fail(c, "Move media failed", fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}

	rec, err := h.service.Move(c.Context(), id, body.Folder)
	if err != nil {
		return h.fail(c, "Move media failed", err)
	}
	return c.JSON(rec)
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer", ErrInvalidInput)
	}
	return id, nil
}

// fail maps service errors to status codes and logs them.
func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	l := logger.WithRayID(h.service.Logger(), c)

	switch {
	case errors.Is(err, ErrInvalidInput):
		l.Info(msg, zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrConflict):
		l.Info(msg, zap.Error(err))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, reconcile.ErrStorageUnavailable), errors.Is(err, reconcile.ErrMetadataUnavailable):
		l.Error(msg, zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   msg,
			"details": err.Error(),
		})
	default:
		l.Error(msg, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msg})
	}
}

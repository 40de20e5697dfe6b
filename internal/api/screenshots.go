package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/marketpulse/internal/domain/dto"
	"github.com/guttosm/marketpulse/internal/middleware"
	"github.com/guttosm/marketpulse/internal/service"
)

// uploadField is the multipart form field carrying the image.
const uploadField = "file"

func screenshotID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("id must be a positive integer", nil))
		return 0, false
	}
	return id, true
}

// UploadScreenshot godoc
// @Summary      Upload screenshot
// @Description  Stores an image, extracts its text with OCR and records the tickers and investment thesis found. OCR is optional; without it the text fields are empty.
// @Tags         screenshots
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file               true  "Image file"
// @Success      201   {object}  models.Screenshot  "Created"
// @Failure      400   {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500   {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/screenshots/upload [post]
func (h *Handler) UploadScreenshot(c *gin.Context) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("file is required", err))
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("unreadable upload", err))
		return
	}
	defer func() { _ = f.Close() }()

	shot, err := h.screenshots.Upload(c.Request.Context(), service.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	})
	if err != nil {
		fail(c, failureMessage(err, "screenshot not found"), err)
		return
	}
	c.JSON(http.StatusCreated, shot)
}

// AnalyzeScreenshot godoc
// @Summary      Analyze screenshot
// @Description  Runs the paid AI analysis once and stores the result; later calls return the stored analysis. Returns 501 when no analyzer is configured.
// @Tags         screenshots
// @Produce      json
// @Param        id   path      int                true  "Screenshot ID"
// @Success      200  {object}  models.Screenshot  "Success"
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Failure      501  {object}  dto.ErrorResponse  "Not Configured"
// @Failure      503  {object}  dto.ErrorResponse  "Analyzer Unavailable"
// @Router       /api/v1/screenshots/{id}/analyze [post]
func (h *Handler) AnalyzeScreenshot(c *gin.Context) {
	id, ok := screenshotID(c)
	if !ok {
		return
	}
	shot, err := h.screenshots.Analyze(c.Request.Context(), id)
	if err != nil {
		msg := failureMessage(err, "screenshot not found")
		if middleware.StatusFor(err) == http.StatusServiceUnavailable {
			msg = "ai analyzer unavailable"
		}
		fail(c, msg, err)
		return
	}
	c.JSON(http.StatusOK, shot)
}

// ListScreenshots godoc
// @Summary      List screenshots
// @Description  Every screenshot with its analysis status, newest first
// @Tags         screenshots
// @Produce      json
// @Success      200  {array}   models.Screenshot  "Success"
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/screenshots [get]
func (h *Handler) ListScreenshots(c *gin.Context) {
	shots, err := h.screenshots.List(c.Request.Context())
	if err != nil {
		fail(c, "failed to list screenshots", err)
		return
	}
	c.JSON(http.StatusOK, shots)
}

// GetScreenshot godoc
// @Summary      Get screenshot
// @Tags         screenshots
// @Produce      json
// @Param        id   path      int                true  "Screenshot ID"
// @Success      200  {object}  models.Screenshot  "Success"
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/screenshots/{id} [get]
func (h *Handler) GetScreenshot(c *gin.Context) {
	id, ok := screenshotID(c)
	if !ok {
		return
	}
	shot, err := h.screenshots.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, failureMessage(err, "screenshot not found"), err)
		return
	}
	c.JSON(http.StatusOK, shot)
}

// DeleteScreenshot godoc
// @Summary      Delete screenshot
// @Description  Removes the record and its image file
// @Tags         screenshots
// @Produce      json
// @Param        id   path      int                  true  "Screenshot ID"
// @Success      200  {object}  dto.MessageResponse  "Deleted"
// @Failure      400  {object}  dto.ErrorResponse    "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse    "Not Found"
// @Router       /api/v1/screenshots/{id} [delete]
func (h *Handler) DeleteScreenshot(c *gin.Context) {
	id, ok := screenshotID(c)
	if !ok {
		return
	}
	if err := h.screenshots.Delete(c.Request.Context(), id); err != nil {
		fail(c, failureMessage(err, "screenshot not found"), err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Screenshot deleted successfully"})
}

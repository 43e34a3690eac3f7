package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
)

type imageRequest struct {
	Prompt      string `json:"prompt" binding:"required" example:"rotary kiln pyrolysis plant at dusk"`
	AspectRatio string `json:"aspect_ratio,omitempty" example:"16:9"`
}

type videoRequest struct {
	Prompt string `json:"prompt" binding:"required" example:"walkthrough of a biochar reactor hall"`
}

// @Summary      Media generation status
// @Tags         media
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/media/status [get]
// @Security     BearerAuth
func (h *Handler) mediaStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"available": h.services.Media.MediaAvailable()})
}

// @Summary      Generate an illustrative image
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        body  body      imageRequest  true  "Prompt"
// @Success      200   {object}  map[string]string  "mime_type, data (base64)"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Failure      504   {object}  map[string]string
// @Router       /api/v1/media/image [post]
// @Security     BearerAuth
func (h *Handler) generateImage(c *gin.Context) {
	var req imageRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	img, err := h.services.Media.GenerateImage(c.Request.Context(), req.Prompt, req.AspectRatio)
	if err != nil {
		h.mediaError(c, "media_image_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mime_type": img.MIMEType,
		"data":      base64.StdEncoding.EncodeToString(img.Data),
	})
}

// @Summary      Generate an illustrative video
// @Description  Blocks while the content service renders; bounded by the configured poll budget
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        body  body      videoRequest  true  "Prompt"
// @Success      200   {object}  genai.Video
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Failure      504   {object}  map[string]string
// @Router       /api/v1/media/video [post]
// @Security     BearerAuth
func (h *Handler) generateVideo(c *gin.Context) {
	var req videoRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	video, err := h.services.Media.GenerateVideo(c.Request.Context(), req.Prompt)
	if err != nil {
		h.mediaError(c, "media_video_failed", err)
		return
	}
	c.JSON(http.StatusOK, video)
}

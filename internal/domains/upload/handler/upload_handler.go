package handler

import (
	"github.com/gin-gonic/gin"

	"travelblog-backend/internal/domains/upload/service"
	"travelblog-backend/internal/shared/response"
)

const maxUploadSize = 20 << 20 // 20 MiB

type UploadHandler struct {
	service service.UploadService
}

func NewUploadHandler(s service.UploadService) *UploadHandler {
	return &UploadHandler{service: s}
}

// Upload handles POST /upload (multipart: file, pathPrefix).
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "UPL001", "file field is required")
		return
	}
	if fileHeader.Size > maxUploadSize {
		response.BadRequest(c, "UPL002", "file exceeds the 20 MiB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalServerError(c, "UPL003", "failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.service.UploadPhoto(
		c.Request.Context(),
		fileHeader.Filename,
		c.PostForm("pathPrefix"),
		fileHeader.Header.Get("Content-Type"),
		file,
		fileHeader.Size,
	)
	if err != nil {
		response.InternalServerError(c, "UPL003", "failed to store photo")
		return
	}

	response.Success(c, 201, result)
}

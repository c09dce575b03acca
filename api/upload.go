package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dashboard/logger"
	"dashboard/storage"

	"github.com/gin-gonic/gin"
)

// UploadHandler 客户头像上传
type UploadHandler struct {
	store   *storage.ImageStore
	maxSize int64
	now     func() time.Time
}

// tooLargeMessage 超限提示，按 MB 展示上限（默认 5MB）
func (h *UploadHandler) tooLargeMessage() string {
	return fmt.Sprintf("File size must be less than %dMB", h.maxSize>>20)
}

// NewUploadHandler 创建上传处理器，maxSize 为字节上限（upload.max_size_mb 换算）
func NewUploadHandler(store *storage.ImageStore, maxSize int64) *UploadHandler {
	return &UploadHandler{store: store, maxSize: maxSize, now: time.Now}
}

// UploadResponse 上传成功响应
type UploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Upload 上传客户头像
// @Summary 上传客户头像
// @Description 文件名由客户名派生（如 amy-burns.png），未提供客户名时使用时间戳加原文件名
// @Tags 上传
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "图片文件（image/*，默认不超过 5MB，见 upload.max_size_mb）"
// @Param customerName formData string false "客户名称"
// @Success 200 {object} UploadResponse "上传成功"
// @Failure 400 {object} APIError "No file provided / File must be an image / File size must be less than 5MB"
// @Failure 500 {object} APIError "Failed to upload file"
// @Router /api/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		ErrorJSON(c, http.StatusBadRequest, "No file provided")
		return
	}
	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		ErrorJSON(c, http.StatusBadRequest, "File must be an image")
		return
	}
	if header.Size > h.maxSize {
		ErrorJSON(c, http.StatusBadRequest, h.tooLargeMessage())
		return
	}

	log := logger.WithComponent("upload")

	f, err := header.Open()
	if err != nil {
		log.WithError(err).Error("open uploaded file failed")
		ErrorJSON(c, http.StatusInternalServerError, "Failed to upload file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		log.WithError(err).Error("read uploaded file failed")
		ErrorJSON(c, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	filename := storage.ImageFilename(c.PostForm("customerName"), header.Filename, h.now())
	url, err := h.store.Save(filename, data)
	if err != nil {
		log.WithError(err).WithField("filename", filename).Error("save uploaded file failed")
		ErrorJSON(c, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	c.JSON(http.StatusOK, UploadResponse{URL: url, Filename: filename})
}

package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	gallerysvc "github.com/thienvyma/tagiangecolodge/internal/app/services/gallery"
	"github.com/thienvyma/tagiangecolodge/internal/domain/gallery"
)

type GalleryHandler struct {
	Service *gallerysvc.Service
	Logger  *slog.Logger
}

type galleryItemRequest struct {
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Category string `json:"category"`
	Position int    `json:"position"`
}

type galleryItemResponse struct {
	ID       string `json:"id"`
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Category string `json:"category,omitempty"`
	Position int    `json:"position"`
}

func newGalleryItemResponse(i *gallery.Item) galleryItemResponse {
	return galleryItemResponse{ID: i.ID, Src: i.Src, Alt: i.Alt, Category: i.Category, Position: i.Position}
}

func (h GalleryHandler) List(c *gin.Context) {
	items, err := h.Service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	out := make([]galleryItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, newGalleryItemResponse(i))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h GalleryHandler) Create(c *gin.Context) {
	var req galleryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	item, err := h.Service.Add(c.Request.Context(), &gallery.Item{
		Src:      req.Src,
		Alt:      req.Alt,
		Category: req.Category,
		Position: req.Position,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newGalleryItemResponse(item))
}

func (h GalleryHandler) Update(c *gin.Context) {
	var req galleryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	item := &gallery.Item{
		ID:       c.Param("id"),
		Src:      req.Src,
		Alt:      req.Alt,
		Category: req.Category,
		Position: req.Position,
	}
	if err := h.Service.Update(c.Request.Context(), item); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGalleryItemResponse(item))
}

func (h GalleryHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h GalleryHandler) Reorder(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.Service.Reorder(c.Request.Context(), req.IDs); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type uploadResultResponse struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BulkUpload accepts a multipart batch under the "files" field. Per-file alt
// texts and categories ride along as parallel form arrays.
func (h GalleryHandler) BulkUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}
	alts := form.Value["alts"]
	categories := form.Value["categories"]

	files := make([]gallerysvc.UploadFile, 0, len(headers))
	for i, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file: " + fh.Filename})
			return
		}
		defer f.Close()
		file := gallerysvc.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Reader:      f,
		}
		if i < len(alts) {
			file.Alt = alts[i]
		}
		if i < len(categories) {
			file.Category = categories[i]
		}
		files = append(files, file)
	}

	results, err := h.Service.BulkUpload(c.Request.Context(), files, nil)
	out := make([]uploadResultResponse, 0, len(results))
	for _, r := range results {
		item := uploadResultResponse{Name: r.Name, Status: string(r.Status), URL: r.URL}
		if r.Err != nil {
			item.Error = r.Err.Error()
		}
		out = append(out, item)
	}
	status := http.StatusOK
	if err != nil {
		// Partial failure still reports per-file outcomes.
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{"results": out})
}

// Upload stores a single file and returns its public URL.
func (h GalleryHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer f.Close()

	url, err := h.Service.UploadOne(c.Request.Context(), gallerysvc.UploadFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Reader:      f,
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("upload failed", "file", fh.Filename, "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h GalleryHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gallery.ErrSrcRequired), errors.Is(err, gallery.ErrAltRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gallery.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("gallery operation failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ GalleryHTTP = (*GalleryHandler)(nil)

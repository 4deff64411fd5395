package web

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dsgnrg/looptrack/internal/errors"
	"github.com/dsgnrg/looptrack/internal/record"
)

// Accepted extensions per media kind. The record store only keeps the
// path string, so this is the one place format is checked.
var allowedExt = map[string]map[string]bool{
	"audio": {".wav": true, ".mp3": true, ".flac": true, ".ogg": true, ".aiff": true, ".m4a": true},
	"image": {".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true},
}

// uploadMedia returns the handler for POST /api/upload/<kind>. Files are
// streamed under uploads/<date>/ and the stored relative path comes back
// for the caller to attach to a sketch or moodboard.
func (h *Handlers) uploadMedia(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes)

		file, err := c.FormFile("file")
		if err != nil {
			h.renderError(c, errors.NewInvalidRequest("multipart field \"file\" is required: "+err.Error()))
			return
		}
		if file.Size > h.cfg.MaxUploadBytes {
			h.renderError(c, errors.NewInvalidRequest(
				fmt.Sprintf("file exceeds the %d byte upload limit", h.cfg.MaxUploadBytes)))
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedExt[kind][ext] {
			h.renderError(c, errors.NewInvalidRequest(fmt.Sprintf("unsupported %s extension %q", kind, ext)))
			return
		}

		day := h.now().Format(record.DateFormat)
		dir := filepath.Join(h.store.UploadsDir(), day)
		if err := os.MkdirAll(dir, 0700); err != nil {
			h.renderError(c, errors.NewInternal(err))
			return
		}

		stored := fmt.Sprintf("%d_%s", h.now().UnixMilli(), sanitizeFilename(file.Filename))
		if err := c.SaveUploadedFile(file, filepath.Join(dir, stored)); err != nil {
			h.renderError(c, errors.NewInternal(err))
			return
		}

		rel := path.Join(day, stored)
		c.JSON(http.StatusOK, gin.H{"success": true, "path": rel, "url": "/files/" + rel})
	}
}

// sanitizeFilename strips directories and maps anything outside a safe
// character set to underscores.
func sanitizeFilename(name string) string {
	name = filepath.Base(filepath.FromSlash(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

// ServeFile handles GET /files/*path. Paths written before uploads were
// date-scoped live flat in uploads/, so a miss falls back to the bare
// file name there.
func (h *Handlers) ServeFile(c *gin.Context) {
	rel := strings.TrimPrefix(c.Param("path"), "/")
	if rel == "" || strings.Contains(rel, "..") {
		h.renderError(c, errors.NewInvalidRequest("invalid file path"))
		return
	}

	full := filepath.Join(h.store.UploadsDir(), filepath.FromSlash(rel))
	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		c.File(full)
		return
	}

	flat := filepath.Join(h.store.UploadsDir(), filepath.Base(rel))
	if info, err := os.Stat(flat); err == nil && !info.IsDir() {
		c.File(flat)
		return
	}

	h.renderError(c, errors.NewNotFound("file", rel))
}

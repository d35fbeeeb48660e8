package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"flatly-backend/services"
	"flatly-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const maxImageBytes = 10 << 20

// parseIDParam reads the :id path parameter. It answers 400 itself and
// returns ok=false when the value is not a positive integer.
func parseIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, fmt.Sprintf("invalid id %q", raw))
		return 0, false
	}
	return uint(id), true
}

func queryFloat(c *gin.Context, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", key, raw)
	}
	return &v, nil
}

func queryInt(c *gin.Context, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", key, raw)
	}
	return &v, nil
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// bindMultipartJSON decodes the JSON form field named part into dst and runs
// the binding validation on it.
func bindMultipartJSON(c *gin.Context, part string, dst any) error {
	raw := c.PostForm(part)
	if raw == "" {
		return fmt.Errorf("missing %q form field", part)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("invalid %q form field: %w", part, err)
	}
	return binding.Validator.ValidateStruct(dst)
}

// readImageFiles loads every file of the "files" form field into memory.
func readImageFiles(c *gin.Context) ([]services.ImageFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}
	headers := form.File["files"]
	files := make([]services.ImageFile, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > maxImageBytes {
			return nil, fmt.Errorf("file %q exceeds %d bytes", fh.Filename, maxImageBytes)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("cannot open %q: %w", fh.Filename, err)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("cannot read %q: %w", fh.Filename, err)
		}
		files = append(files, services.ImageFile{Name: fh.Filename, Content: content})
	}
	return files, nil
}

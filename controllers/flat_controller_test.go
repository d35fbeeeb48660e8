package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flatly-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flatJSON = `{"name":"Loft","location":"Prague","price":900,"distance":1.5,"amenities":["wifi"],"roomNumber":2}`

func TestCreateFlat_JSON(t *testing.T) {
	tc := newTestControllers(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/flats", strings.NewReader(flatJSON))
	c.Request.Header.Set("Content-Type", "application/json")

	tc.flats.CreateFlat(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response models.FlatDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotZero(t, response.ID)
	assert.Equal(t, "Loft", response.Name)
	assert.Equal(t, []string{"wifi"}, response.Amenities)
	assert.Empty(t, response.Images)
}

func TestCreateFlat_InvalidPayload(t *testing.T) {
	tc := newTestControllers(t)

	for _, body := range []string{
		`{"location":"Prague","price":900,"roomNumber":2}`,
		`{"name":"Loft","location":"Prague","price":-1,"roomNumber":2}`,
		`{"name":"Loft","location":"Prague","price":900,"roomNumber":0}`,
		`not json`,
	} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/api/flats", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		tc.flats.CreateFlat(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	var count int64
	tc.db.Model(&models.Flat{}).Count(&count)
	assert.Zero(t, count)
}

func multipartBody(t *testing.T, flat string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	if flat != "" {
		require.NoError(t, mw.WriteField("flat", flat))
	}
	for name, content := range files {
		fw, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestCreateFlat_MultipartWithImages(t *testing.T) {
	tc := newTestControllers(t)
	body, contentType := multipartBody(t, flatJSON, map[string]string{"front.png": "png"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/flats", body)
	c.Request.Header.Set("Content-Type", contentType)

	tc.flats.CreateFlat(c)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var response flatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Loft", response.Name)
	require.Len(t, response.Images, 1)
	require.Len(t, response.Uploads, 1)
	assert.Equal(t, response.Images[0], response.Uploads[0].URL)
	assert.True(t, strings.HasSuffix(response.Images[0], "_front.png"))
}

func TestCreateFlat_MultipartMissingFlatPart(t *testing.T) {
	tc := newTestControllers(t)
	body, contentType := multipartBody(t, "", map[string]string{"front.png": "png"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/flats", body)
	c.Request.Header.Set("Content-Type", contentType)

	tc.flats.CreateFlat(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFlat(t *testing.T) {
	tc := newTestControllers(t)
	flat, err := tc.flats.FlatSvc.Create(models.FlatDTO{Name: "Loft", Location: "Prague", Price: 900, RoomNumber: 2})
	require.NoError(t, err)

	tests := []struct {
		id   string
		want int
	}{
		{"1", http.StatusOK},
		{"2", http.StatusNotFound},
		{"abc", http.StatusBadRequest},
		{"0", http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/api/flats/"+tt.id, nil)
		c.Params = gin.Params{gin.Param{Key: "id", Value: tt.id}}

		tc.flats.GetFlat(c)
		assert.Equal(t, tt.want, w.Code, tt.id)
	}
	assert.Equal(t, uint(1), flat.ID)
}

func TestFilterFlats_Handler(t *testing.T) {
	tc := newTestControllers(t)
	_, err := tc.flats.FlatSvc.Create(models.FlatDTO{Name: "A", Location: "Central Park", Price: 1000, RoomNumber: 2})
	require.NoError(t, err)
	_, err = tc.flats.FlatSvc.Create(models.FlatDTO{Name: "B", Location: "Harbour", Price: 2000, RoomNumber: 3})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flats/filter?location=PARK&maxPrice=1500", nil)
	tc.flats.FilterFlats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response []models.FlatDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, "A", response[0].Name)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flats/filter?minPrice=cheap", nil)
	tc.flats.FilterFlats(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteImage_Handler(t *testing.T) {
	tc := newTestControllers(t)
	flat, err := tc.flats.FlatSvc.Create(models.FlatDTO{Name: "A", Location: "Berlin", Price: 500, RoomNumber: 1})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("DELETE", "/api/flats/1/images?imageUrl=http://localhost:8080/uploads/nope.png", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "1"}}
	tc.flats.DeleteImage(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("DELETE", "/api/flats/1/images", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "1"}}
	tc.flats.DeleteImage(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, uint(1), flat.ID)
}

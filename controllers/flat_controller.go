package controllers

import (
	"log"
	"net/http"
	"strings"

	"flatly-backend/models"
	"flatly-backend/services"
	"flatly-backend/utils"

	"github.com/gin-gonic/gin"
)

type FlatController struct {
	FlatSvc *services.FlatService
}

func NewFlatController(svc *services.FlatService) *FlatController {
	return &FlatController{FlatSvc: svc}
}

// flatResponse is a flat plus the per-file results of images sent with it.
type flatResponse struct {
	models.FlatDTO
	Uploads []services.UploadResult `json:"uploads,omitempty"`
}

// GET /api/flats
func (ctrl *FlatController) GetFlats(c *gin.Context) {
	flats, err := ctrl.FlatSvc.List()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flats)
}

// GET /api/flats/filter
func (ctrl *FlatController) FilterFlats(c *gin.Context) {
	var filter services.FlatFilter
	var err error

	if loc := strings.TrimSpace(c.Query("location")); loc != "" {
		filter.Location = &loc
	}
	if filter.MinPrice, err = queryFloat(c, "minPrice"); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if filter.MaxPrice, err = queryFloat(c, "maxPrice"); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if filter.RoomNumber, err = queryInt(c, "roomNumber"); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if filter.MinDistance, err = queryFloat(c, "minDistance"); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if filter.MaxDistance, err = queryFloat(c, "maxDistance"); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	flats, err := ctrl.FlatSvc.Filter(filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flats)
}

// GET /api/flats/:id
func (ctrl *FlatController) GetFlat(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	flat, err := ctrl.FlatSvc.GetByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flat)
}

// bindFlat accepts either a JSON body or a multipart form with a "flat" JSON
// part and optional "files".
func bindFlat(c *gin.Context) (models.FlatDTO, []services.ImageFile, bool) {
	var dto models.FlatDTO
	if !isMultipart(c) {
		if err := c.ShouldBindJSON(&dto); err != nil {
			log.Printf("❌ JSON BINDING ERROR (400): %v", err)
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return dto, nil, false
		}
		return dto, nil, true
	}

	if err := bindMultipartJSON(c, "flat", &dto); err != nil {
		log.Printf("❌ MULTIPART BINDING ERROR (400): %v", err)
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return dto, nil, false
	}
	files, err := readImageFiles(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return dto, nil, false
	}
	return dto, files, true
}

// respondWithUploads attaches files to the flat and writes the refreshed flat.
func (ctrl *FlatController) respondWithUploads(c *gin.Context, code int, flat models.FlatDTO, files []services.ImageFile) {
	if len(files) == 0 {
		c.JSON(code, flat)
		return
	}
	results, err := ctrl.FlatSvc.AttachImages(c.Request.Context(), flat.ID, files)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	refreshed, err := ctrl.FlatSvc.GetByID(flat.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(code, flatResponse{FlatDTO: refreshed, Uploads: results})
}

// POST /api/flats
func (ctrl *FlatController) CreateFlat(c *gin.Context) {
	dto, files, ok := bindFlat(c)
	if !ok {
		return
	}
	flat, err := ctrl.FlatSvc.Create(dto)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ctrl.respondWithUploads(c, http.StatusCreated, flat, files)
}

// PUT /api/flats/:id
func (ctrl *FlatController) UpdateFlat(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	dto, files, ok := bindFlat(c)
	if !ok {
		return
	}
	flat, err := ctrl.FlatSvc.Update(id, dto)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ctrl.respondWithUploads(c, http.StatusOK, flat, files)
}

// DELETE /api/flats/:id
func (ctrl *FlatController) DeleteFlat(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.FlatSvc.Delete(id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/flats/:id/images
func (ctrl *FlatController) UploadImages(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	files, err := readImageFiles(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if len(files) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "no files provided")
		return
	}

	results, err := ctrl.FlatSvc.AttachImages(c.Request.Context(), id, files)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	images, err := ctrl.FlatSvc.Images(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images, "uploads": results})
}

// GET /api/flats/:id/images
func (ctrl *FlatController) GetImages(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	images, err := ctrl.FlatSvc.Images(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

// DELETE /api/flats/:id/images?imageUrl=
func (ctrl *FlatController) DeleteImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	imageURL := strings.TrimSpace(c.Query("imageUrl"))
	if imageURL == "" {
		utils.JSONError(c, http.StatusBadRequest, "imageUrl is required")
		return
	}
	flat, err := ctrl.FlatSvc.DetachImage(c.Request.Context(), id, imageURL)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flat)
}

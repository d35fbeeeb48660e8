package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"

	"flatly-backend/models"
	"flatly-backend/storage"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ImageFile is one uploaded file of an image batch.
type ImageFile struct {
	Name    string
	Content []byte
}

// UploadResult reports the outcome of uploading one file of a batch.
type UploadResult struct {
	FileName string `json:"fileName"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (r UploadResult) OK() bool {
	return r.Error == ""
}

type FlatService struct {
	DB    *gorm.DB
	Blobs storage.BlobStore
}

func NewFlatService(db *gorm.DB, blobs storage.BlobStore) *FlatService {
	return &FlatService{DB: db, Blobs: blobs}
}

func (s *FlatService) find(db *gorm.DB, id uint) (models.Flat, error) {
	var flat models.Flat
	if err := db.First(&flat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Flat{}, fmt.Errorf("%w: id=%d", ErrFlatNotFound, id)
		}
		return models.Flat{}, fmt.Errorf("failed to find flat %d: %w", id, err)
	}
	return flat, nil
}

func (s *FlatService) List() ([]models.FlatDTO, error) {
	var flats []models.Flat
	if err := s.DB.Order("id").Find(&flats).Error; err != nil {
		return nil, fmt.Errorf("failed to list flats: %w", err)
	}
	return toFlatDTOs(flats), nil
}

func (s *FlatService) GetByID(id uint) (models.FlatDTO, error) {
	flat, err := s.find(s.DB, id)
	if err != nil {
		return models.FlatDTO{}, err
	}
	return models.ToFlatDTO(flat), nil
}

// Create stores the flat metadata; images start empty and are attached later.
func (s *FlatService) Create(dto models.FlatDTO) (models.FlatDTO, error) {
	flat := models.Flat{Images: datatypes.JSONSlice[string]{}}
	applyFlatFields(&flat, dto)

	if err := s.DB.Create(&flat).Error; err != nil {
		log.Printf("❌ FlatService.Create error: %v", err)
		return models.FlatDTO{}, fmt.Errorf("failed to create flat: %w", err)
	}
	log.Printf("⬅️ FlatService.Create ok: flat_id=%d", flat.ID)
	return models.ToFlatDTO(flat), nil
}

// Update overwrites every mutable field except images.
func (s *FlatService) Update(id uint, dto models.FlatDTO) (models.FlatDTO, error) {
	flat, err := s.find(s.DB, id)
	if err != nil {
		return models.FlatDTO{}, err
	}
	applyFlatFields(&flat, dto)

	err = s.DB.Model(&flat).
		Select("name", "location", "price", "description", "distance", "amenities", "availability", "room_number").
		Updates(&flat).Error
	if err != nil {
		return models.FlatDTO{}, fmt.Errorf("failed to update flat %d: %w", id, err)
	}
	return models.ToFlatDTO(flat), nil
}

// Delete removes the flat together with its bookings.
func (s *FlatService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("flat_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return fmt.Errorf("failed to delete bookings of flat %d: %w", id, err)
		}
		result := tx.Delete(&models.Flat{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete flat %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: id=%d", ErrFlatNotFound, id)
		}
		return nil
	})
}

func (s *FlatService) Filter(filter FlatFilter) ([]models.FlatDTO, error) {
	var flats []models.Flat
	if err := filter.Apply(s.DB.Model(&models.Flat{})).Order("id").Find(&flats).Error; err != nil {
		return nil, fmt.Errorf("failed to filter flats: %w", err)
	}
	return toFlatDTOs(flats), nil
}

func (s *FlatService) Images(id uint) ([]string, error) {
	flat, err := s.find(s.DB, id)
	if err != nil {
		return nil, err
	}
	return models.ToFlatDTO(flat).Images, nil
}

// AttachImages uploads every file independently and appends the URLs of the
// successful uploads to the flat, in upload order. A failed upload does not
// stop the batch; it is reported in its UploadResult. If the metadata update
// fails, the blobs uploaded by this call are deleted again.
func (s *FlatService) AttachImages(ctx context.Context, id uint, files []ImageFile) ([]UploadResult, error) {
	flat, err := s.find(s.DB.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	results := make([]UploadResult, 0, len(files))
	var uploaded []string
	for _, f := range files {
		res := UploadResult{FileName: f.Name}
		url, err := s.Blobs.Upload(ctx, f.Content, f.Name)
		if err != nil {
			log.Printf("❌ upload of %q for flat %d failed: %v", f.Name, id, err)
			res.Error = err.Error()
		} else {
			res.URL = url
			uploaded = append(uploaded, url)
		}
		results = append(results, res)
	}

	if len(uploaded) == 0 {
		return results, nil
	}

	images := append(slices.Clone([]string(flat.Images)), uploaded...)
	err = s.DB.WithContext(ctx).Model(&flat).Update("images", datatypes.JSONSlice[string](images)).Error
	if err != nil {
		log.Printf("❌ saving images of flat %d failed, removing %d uploaded blobs: %v", id, len(uploaded), err)
		for _, url := range uploaded {
			if derr := s.Blobs.Delete(ctx, url); derr != nil {
				log.Printf("⚠️ compensating delete of %s failed: %v", url, derr)
			}
		}
		return results, fmt.Errorf("failed to save images of flat %d: %w", id, err)
	}

	log.Printf("⬅️ FlatService.AttachImages flat_id=%d uploaded=%d failed=%d", id, len(uploaded), len(files)-len(uploaded))
	return results, nil
}

// DetachImage removes url from the flat and deletes the blob. Both happen in
// one transaction: if the blob cannot be deleted the image list is kept.
// The blob is deleted before the commit, so a failed commit leaves url listed
// without its blob; that case is logged with the url.
func (s *FlatService) DetachImage(ctx context.Context, id uint, url string) (models.FlatDTO, error) {
	var out models.Flat
	blobDeleted := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		flat, err := s.find(tx, id)
		if err != nil {
			return err
		}
		idx := slices.Index([]string(flat.Images), url)
		if idx < 0 {
			return fmt.Errorf("%w: flat id=%d url=%s", ErrImageNotFound, id, url)
		}
		images := slices.Delete(slices.Clone([]string(flat.Images)), idx, idx+1)

		if err := tx.Model(&flat).Update("images", datatypes.JSONSlice[string](images)).Error; err != nil {
			return fmt.Errorf("failed to save images of flat %d: %w", id, err)
		}
		if err := s.Blobs.Delete(ctx, url); err != nil {
			return fmt.Errorf("failed to delete blob %s: %w", url, err)
		}
		blobDeleted = true
		flat.Images = images
		out = flat
		return nil
	})
	if err != nil {
		if blobDeleted {
			log.Printf("❌ commit failed after deleting blob %s of flat %d: %v", url, id, err)
		}
		return models.FlatDTO{}, err
	}
	return models.ToFlatDTO(out), nil
}

func applyFlatFields(flat *models.Flat, dto models.FlatDTO) {
	flat.Name = dto.Name
	flat.Location = dto.Location
	flat.Price = dto.Price
	flat.Description = dto.Description
	flat.Distance = dto.Distance
	flat.Amenities = datatypes.JSONSlice[string](dto.Amenities)
	if flat.Amenities == nil {
		flat.Amenities = datatypes.JSONSlice[string]{}
	}
	flat.Availability = dto.Availability
	flat.RoomNumber = dto.RoomNumber
}

func toFlatDTOs(flats []models.Flat) []models.FlatDTO {
	out := make([]models.FlatDTO, 0, len(flats))
	for _, f := range flats {
		out = append(out, models.ToFlatDTO(f))
	}
	return out
}

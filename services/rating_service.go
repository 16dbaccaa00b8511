package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/caffio-app/caffio-api/models"
)

// AddReviewInput carries a new review submission
type AddReviewInput struct {
	CafeID       uint
	Rating       int
	Text         *string
	CustomerID   *uint
	CustomerName *string
}

// RatingService persists reviews and maintains the denormalized
// (rating_avg, rating_count) aggregate on the cafe row.
type RatingService struct {
	db *gorm.DB
}

// NewRatingService creates a new rating service
func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// AddReview inserts the review and recomputes the cafe's rating aggregate
// from all of its reviews. Insert and recompute run inside one transaction so
// concurrent submissions cannot overwrite each other with stale aggregates.
// The recompute scans every review for the cafe; fine at single-cafe scale.
func (s *RatingService) AddReview(input AddReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidArgument)
	}

	var cafe models.Cafe
	if err := s.db.First(&cafe, input.CafeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cafe %d", ErrNotFound, input.CafeID)
		}
		return nil, err
	}

	review := models.Review{
		CafeID:       input.CafeID,
		CustomerID:   input.CustomerID,
		CustomerName: input.CustomerName,
		Rating:       input.Rating,
		Text:         input.Text,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		var agg struct {
			Avg   float64
			Count int
		}
		if err := tx.Model(&models.Review{}).
			Select("AVG(rating) as avg, COUNT(*) as count").
			Where("cafe_id = ?", input.CafeID).
			Scan(&agg).Error; err != nil {
			return err
		}

		return tx.Model(&models.Cafe{}).
			Where("id = ?", input.CafeID).
			Updates(map[string]interface{}{
				"rating_avg":   agg.Avg,
				"rating_count": agg.Count,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return &review, nil
}

// FindByCafe returns a cafe's reviews, newest first
func (s *RatingService) FindByCafe(cafeID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("cafe_id = ?", cafeID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

package services

import (
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/stayserve/marketplace-backend/internal/database"
)

// RatingService maintains the denormalized rating aggregates on
// providers. Every recompute rescans the provider's completed reviews
// instead of adjusting incrementally, so a lost update can never skew
// the average permanently.
type RatingService struct {
	bookingRepo  *database.BookingRepository
	providerRepo *database.ProviderRepository
	logger       *logrus.Logger

	// mu guards locks; recomputes for the same provider are serialized
	// while different providers proceed in parallel. Entries are never
	// removed, so the map holds one mutex per provider ever recomputed.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRatingService creates a new RatingService
func NewRatingService(
	bookingRepo *database.BookingRepository,
	providerRepo *database.ProviderRepository,
	logger *logrus.Logger,
) *RatingService {
	return &RatingService{
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		logger:       logger,
		locks:        make(map[string]*sync.Mutex),
	}
}

func (s *RatingService) providerLock(providerID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[providerID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[providerID] = lock
	}
	return lock
}

// Recompute rescans all reviews on the provider's completed bookings
// and persists the fresh average and count. The average is rounded
// half-up to one decimal place.
func (s *RatingService) Recompute(providerID string) error {
	lock := s.providerLock(providerID)
	lock.Lock()
	defer lock.Unlock()

	ratings, err := s.bookingRepo.GetCompletedReviewRatings(providerID)
	if err != nil {
		return fmt.Errorf("failed to load reviews for provider %s: %w", providerID, err)
	}

	average := 0.0
	if len(ratings) > 0 {
		sum := 0
		for _, rating := range ratings {
			sum += rating
		}
		average = math.Floor(float64(sum)/float64(len(ratings))*10+0.5) / 10
	}

	if err := s.providerRepo.UpdateRating(providerID, average, len(ratings)); err != nil {
		return fmt.Errorf("failed to store rating for provider %s: %w", providerID, err)
	}

	s.logger.WithFields(logrus.Fields{
		"provider_id":    providerID,
		"average_rating": average,
		"total_reviews":  len(ratings),
	}).Info("Provider rating recomputed")

	return nil
}

package services

import (
	"database/sql"
	"errors"
	"fmt"

	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/realtime"
	"qr_dine_backend/internal/repositories"
)

var ErrFeedbackNotFound = errors.New("feedback not found")

// --- DTOs ---

// SubmitFeedbackRequest is the public, unauthenticated feedback submission.
type SubmitFeedbackRequest struct {
	OrderID      string `json:"order_id"`
	CustomerName string `json:"customer_name"`
	Rating       int    `json:"rating" binding:"required"`
	Comment      string `json:"comment"`
}

// RespondFeedbackRequest is the owner's reply.
type RespondFeedbackRequest struct {
	Response string `json:"response" binding:"required"`
}

// --- FeedbackService Interface ---
type FeedbackService interface {
	Submit(restaurantID string, req SubmitFeedbackRequest) (*models.Feedback, error)
	List(restaurantID string, filters models.FeedbackFilters) ([]models.Feedback, int, error)
	Respond(id, restaurantID string, req RespondFeedbackRequest) (*models.Feedback, error)
	Stats(restaurantID string) (*models.FeedbackStats, error)
}

type feedbackService struct {
	feedbackRepo repositories.FeedbackRepository
	orderRepo    repositories.OrderRepository
	db           *sql.DB
	notifier     Notifier
}

// NewFeedbackService creates a new instance of FeedbackService.
func NewFeedbackService(
	fr repositories.FeedbackRepository,
	or repositories.OrderRepository,
	db *sql.DB,
	notifier Notifier,
) FeedbackService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	return &feedbackService{feedbackRepo: fr, orderRepo: or, db: db, notifier: notifier}
}

func (s *feedbackService) Submit(restaurantID string, req SubmitFeedbackRequest) (*models.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	feedback := &models.Feedback{
		RestaurantID: restaurantID,
		CustomerName: models.NewNullString(req.CustomerName),
		Rating:       req.Rating,
		Comment:      models.NewNullString(req.Comment),
	}
	if req.OrderID != "" {
		// The order link is optional but must point at an order of this restaurant.
		order, err := s.orderRepo.GetOrderByID(req.OrderID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrOrderNotFound
			}
			return nil, err
		}
		if order.RestaurantID != restaurantID {
			return nil, ErrOrderNotFound
		}
		feedback.OrderID = models.NewNullString(req.OrderID)
	}
	if _, err := s.feedbackRepo.Create(s.db, feedback); err != nil {
		return nil, err
	}
	s.notifier.Broadcast(restaurantID, realtime.EventNewFeedback, feedback.PublicView())
	return feedback, nil
}

func (s *feedbackService) List(restaurantID string, filters models.FeedbackFilters) ([]models.Feedback, int, error) {
	return s.feedbackRepo.ListByRestaurant(restaurantID, filters)
}

func (s *feedbackService) Respond(id, restaurantID string, req RespondFeedbackRequest) (*models.Feedback, error) {
	if err := s.feedbackRepo.Respond(s.db, id, restaurantID, req.Response); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	feedback, err := s.feedbackRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.notifier.Broadcast(restaurantID, realtime.EventFeedbackUpdated, feedback.PublicView())
	return feedback, nil
}

func (s *feedbackService) Stats(restaurantID string) (*models.FeedbackStats, error) {
	return s.feedbackRepo.Stats(restaurantID)
}

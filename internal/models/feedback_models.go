package models

import (
	"database/sql"
	"time"
)

type Feedback struct {
	ID            string         `json:"id"`
	RestaurantID  string         `json:"restaurant_id"`
	OrderID       sql.NullString `json:"-"`
	CustomerName  sql.NullString `json:"-"`
	Rating        int            `json:"rating"`
	Comment       sql.NullString `json:"-"`
	Response      sql.NullString `json:"-"`
	RespondedAt   sql.NullTime   `json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
}

type FeedbackResponse struct {
	ID           string     `json:"id"`
	RestaurantID string     `json:"restaurant_id"`
	OrderID      *string    `json:"order_id,omitempty"`
	CustomerName *string    `json:"customer_name,omitempty"`
	Rating       int        `json:"rating"`
	Comment      *string    `json:"comment,omitempty"`
	Response     *string    `json:"response,omitempty"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (f *Feedback) PublicView() FeedbackResponse {
	resp := FeedbackResponse{
		ID:           f.ID,
		RestaurantID: f.RestaurantID,
		OrderID:      StrOrNil(f.OrderID),
		CustomerName: StrOrNil(f.CustomerName),
		Rating:       f.Rating,
		Comment:      StrOrNil(f.Comment),
		Response:     StrOrNil(f.Response),
		CreatedAt:    f.CreatedAt,
	}
	if f.RespondedAt.Valid {
		resp.RespondedAt = &f.RespondedAt.Time
	}
	return resp
}

// FeedbackFilters narrows feedback listing on the dashboard.
type FeedbackFilters struct {
	Rating   *int `form:"rating"`
	Page     int  `form:"page"`
	PageSize int  `form:"page_size"`
}

// FeedbackStats aggregates ratings for the dashboard header.
type FeedbackStats struct {
	Total         int64         `json:"total"`
	AverageRating float64       `json:"average_rating"`
	CountsByStar  map[int]int64 `json:"counts_by_star"`
}

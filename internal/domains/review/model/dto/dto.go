package dto

import (
	"resto/internal/domains/review/model"
	"resto/shared"
	gDto "resto/shared/dto"
	gModel "resto/shared/model"
	"resto/shared/timezone"

	"github.com/google/uuid"
)

// SubmitReviewRequest is the public testimonial form. Submissions wait for moderation.
type SubmitReviewRequest struct {
	CustomerName string  `json:"customer_name" validate:"required,min=2,max=100"`
	Email        *string `json:"email"         validate:"omitempty,email"`
	Phone        *string `json:"phone"         validate:"omitempty,max=30"`
	Location     *string `json:"location"      validate:"omitempty,max=100"`
	Rating       int     `json:"rating"        validate:"required,gte=1,lte=5"`
	ReviewText   string  `json:"review_text"   validate:"required,min=10,max=2000"`
}

func (s *SubmitReviewRequest) ToModel(user string) model.CustomerReview {
	return model.CustomerReview{
		ID:           uuid.NewString(),
		CustomerName: s.CustomerName,
		Email:        s.Email,
		Phone:        s.Phone,
		Location:     s.Location,
		Rating:       s.Rating,
		ReviewText:   s.ReviewText,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type CreateReviewRequest struct {
	SubmitReviewRequest
	IsApproved bool `json:"is_approved"`
}

func (c *CreateReviewRequest) ToModel(user string) model.CustomerReview {
	review := c.SubmitReviewRequest.ToModel(user)
	review.IsApproved = c.IsApproved

	return review
}

type UpdateReviewRequest struct {
	CustomerName string  `db:"customer_name" json:"customer_name" validate:"omitempty,min=2,max=100"`
	Email        *string `db:"email"         json:"email"         validate:"omitempty,email"`
	Phone        *string `db:"phone"         json:"phone"         validate:"omitempty,max=30"`
	Location     *string `db:"location"      json:"location"      validate:"omitempty,max=100"`
	Rating       *int    `db:"rating"        json:"rating"        validate:"omitempty,gte=1,lte=5"`
	ReviewText   string  `db:"review_text"   json:"review_text"   validate:"omitempty,min=10,max=2000"`
	IsApproved   *bool   `db:"is_approved"   json:"is_approved"`
}

type ApprovalRequest struct {
	IsApproved *bool `json:"is_approved" validate:"required"`
}

type ReviewResponse struct {
	ID           string  `json:"id"`
	CustomerName string  `json:"customer_name"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Location     *string `json:"location"`
	Rating       int     `json:"rating"`
	ReviewText   string  `json:"review_text"`
	IsApproved   bool    `json:"is_approved"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(m model.CustomerReview) {
	r.ID = m.ID
	r.CustomerName = m.CustomerName
	r.Email = m.Email
	r.Phone = m.Phone
	r.Location = m.Location
	r.Rating = m.Rating
	r.ReviewText = m.ReviewText
	r.IsApproved = m.IsApproved
	r.Metadata.FromModel(m.Metadata)
}

// Public drops the reviewer's contact details.
func (r ReviewResponse) Public() ReviewResponse {
	r.Email = nil
	r.Phone = nil

	return r
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.CustomerReview, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, m := range models {
		r.Reviews[i].FromModel(m)
	}
}

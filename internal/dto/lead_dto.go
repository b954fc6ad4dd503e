package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubmitLeadRequest struct {
	Name       string `json:"name" validate:"required,max=120"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Company    string `json:"company" validate:"max=120"`
	Phone      string `json:"phone" validate:"max=40"`
	Budget     string `json:"budget" validate:"omitempty,oneof=small medium large enterprise"`
	Message    string `json:"message" validate:"required,max=5000"`
	SourcePage string `json:"source_page" validate:"max=255"`
	// Website is a honeypot field hidden from humans; bots fill it in.
	Website string `json:"website"`
}

type SubmitLeadResponse struct {
	Id uuid.UUID `json:"id"`
}

type LeadListQuery struct {
	Page  int    `query:"page" validate:"omitempty,min=1"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Q     string `query:"q" validate:"omitempty,max=120"`
	Sort  string `query:"sort" validate:"omitempty,oneof=created_at -created_at name -name email -email"`
}

type LeadResponse struct {
	Id         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Company    string    `json:"company"`
	Phone      string    `json:"phone"`
	Budget     string    `json:"budget"`
	Message    string    `json:"message"`
	SourcePage string    `json:"source_page"`
	CreatedAt  time.Time `json:"created_at"`
}

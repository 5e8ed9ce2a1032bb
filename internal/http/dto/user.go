package dto

import "funil.app/crm/internal/model"

type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Position *string `json:"position,omitempty" binding:"omitempty,max=255"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=50"`
}

type UserResponse struct {
	User     *model.User `json:"user"`
	Warnings []string    `json:"warnings,omitempty"`
}

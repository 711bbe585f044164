package domain

import "time"

type Employee struct {
	EmployeeID string    `json:"id" dynamodbav:"employee_id"`
	Name       string    `json:"name" dynamodbav:"name"`
	Email      string    `json:"email" dynamodbav:"email"`
	Position   *string   `json:"position" dynamodbav:"position"`
	Department *string   `json:"department" dynamodbav:"department"`
	PictureURL *string   `json:"picture_url" dynamodbav:"picture_url"`
	ResumeURL  *string   `json:"resume_url" dynamodbav:"resume_url"`
	Enable     bool      `json:"-" dynamodbav:"enable"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateEmployeeRequest struct {
	Name       string  `json:"name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Position   *string `json:"position"`
	Department *string `json:"department"`
}

type UpdateEmployeeRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Position   *string `json:"position"`
	Department *string `json:"department"`
}

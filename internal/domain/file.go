package domain

import "time"

// File kinds attached to an employee record.
const (
	FileKindPicture = "picture"
	FileKindResume  = "resume"
)

type File struct {
	FileID     string    `json:"id" dynamodbav:"file_id"`
	EmployeeID string    `json:"employee_id" dynamodbav:"employee_id"`
	Kind       string    `json:"kind" dynamodbav:"kind"` // "picture" | "resume"
	Object     string    `json:"object" dynamodbav:"object"`
	Size       int64     `json:"size" dynamodbav:"size"`
	Type       string    `json:"type" dynamodbav:"type"`
	Name       string    `json:"name" dynamodbav:"name"`
	Hash       string    `json:"hash" dynamodbav:"hash"`
	URL        string    `json:"url" dynamodbav:"url"`
	Enable     bool      `json:"-" dynamodbav:"enable"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated" dynamodbav:"updated_at"`
}

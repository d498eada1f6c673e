package domain

import "time"

// Employee is an authenticated account backing the session provider.
type Employee struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Department   string
	CompanyCode  string
	AccountCode  string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BlobObject is a stored attachment served back by the file endpoint.
type BlobObject struct {
	ID        string
	FileName  string
	MimeType  string
	Data      []byte
	CreatedAt time.Time
}

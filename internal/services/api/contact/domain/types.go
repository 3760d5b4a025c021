// Package domain holds contact submission types independent of transport or storage
package domain

import (
	"time"
)

// Status is the processing state of a submission
type Status string

const (
	// StatusPending is the state every submission starts in
	StatusPending Status = "pending"

	// StatusInProgress means someone is working on the request
	StatusInProgress Status = "in_progress"

	// StatusCompleted means the request was answered
	StatusCompleted Status = "completed"

	// StatusArchived hides the request from the working set
	StatusArchived Status = "archived"
)

// Statuses lists every accepted status in lifecycle order
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusArchived}

// ParseStatus accepts exactly one of the four status names
func ParseStatus(raw string) (Status, bool) {
	for _, s := range Statuses {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

// ServiceKind is the kind of work the requester asks about
type ServiceKind string

const (
	// ServiceWebDevelopment is website and web app work
	ServiceWebDevelopment ServiceKind = "web-development"
	// ServiceGraphicDesign is branding and design work
	ServiceGraphicDesign ServiceKind = "graphic-design"
	// ServiceITConsulting is advisory work
	ServiceITConsulting ServiceKind = "it-consulting"
	// ServiceDatabaseSolutions is database design and tuning
	ServiceDatabaseSolutions ServiceKind = "database-solutions"
	// ServiceOther is anything else
	ServiceOther ServiceKind = "other"
)

// ServiceKinds lists the accepted service identifiers
var ServiceKinds = []ServiceKind{
	ServiceWebDevelopment,
	ServiceGraphicDesign,
	ServiceITConsulting,
	ServiceDatabaseSolutions,
	ServiceOther,
}

// Valid reports whether k is one of ServiceKinds
func (k ServiceKind) Valid() bool {
	for _, s := range ServiceKinds {
		if s == k {
			return true
		}
	}
	return false
}

// Origin is the network metadata captured with a submission
type Origin struct {
	IP        string
	UserAgent string
}

// NewSubmission is what the store persists on create
type NewSubmission struct {
	Clean
	Origin Origin
}

// Created is returned by the store after an insert
type Created struct {
	ID        int64
	CreatedAt time.Time
}

// Submission is a stored contact request
type Submission struct {
	ID        int64       `json:"id"                  example:"42"`
	FirstName string      `json:"first_name"          example:"Ada"`
	LastName  string      `json:"last_name"           example:"Lovelace"`
	Email     string      `json:"email"               example:"ada@example.com"`
	Phone     *string     `json:"phone"               example:"+15551234567"`
	Service   ServiceKind `json:"service"             example:"web-development"`
	Message   string      `json:"message"             example:"I would like a new website for my bakery."`
	Status    Status      `json:"status"              example:"pending"`
	EmailSent bool        `json:"email_sent"          example:"false"`
	IPAddress *string     `json:"ip_address,omitempty" example:"203.0.113.7"`
	UserAgent *string     `json:"user_agent,omitempty" example:"Mozilla/5.0"`
	CreatedAt time.Time   `json:"created_at"          example:"2025-09-03T13:00:00Z"`
	UpdatedAt time.Time   `json:"updated_at"          example:"2025-09-03T13:05:00Z"`
}

// FullName joins first and last name
func (s Submission) FullName() string { return s.FirstName + " " + s.LastName }

// Receipt is the outcome of a successful submit
type Receipt struct {
	ID        int64
	CreatedAt time.Time
}

// StatusInput is the body of a status update
type StatusInput struct {
	Status string `json:"status" example:"in_progress"`
}

// Pagination describes one page of a listing
type Pagination struct {
	Page       int `json:"page"       example:"1"`
	Limit      int `json:"limit"      example:"20"`
	Total      int `json:"total"      example:"57"`
	TotalPages int `json:"totalPages" example:"3"`
}

// Page is a listing result
type Page struct {
	Submissions []Submission `json:"submissions"`
	Pagination  Pagination   `json:"pagination"`
}

const (
	// DefaultPage is used when page is missing or not positive
	DefaultPage = 1
	// DefaultLimit is used when limit is missing or not positive
	DefaultLimit = 20
	// MaxLimit caps the page size
	MaxLimit = 100
	// MaxPage keeps (page-1)*limit well inside a positive OFFSET
	MaxPage = 1_000_000
)

// NormalizePaging applies defaults, clamps limit into [1, MaxLimit] and page into [1, MaxPage]
func NormalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// TotalPages is ceil(total/limit), zero for an empty table
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

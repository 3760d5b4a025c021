// Package domain holds notification types shared by the renderer, mailer and runner
package domain

import "time"

// Contact is the submission data the notification messages are built from
type Contact struct {
	ID          int64
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Service     string
	Message     string
	IP          string
	SubmittedAt time.Time
}

// FullName joins first and last name
func (c Contact) FullName() string { return c.FirstName + " " + c.LastName }

// Message is one rendered email
type Message struct {
	FromName string
	To       string
	ReplyTo  string
	Subject  string
	Text     string
	HTML     string
}

// Outcome reports which of the two messages went out
type Outcome struct {
	OperatorSent  bool
	RequesterSent bool
}

// Brand carries the company details printed in messages
type Brand struct {
	Company      string
	OperatorFrom string
	ReplyFrom    string
	Signer       string
	SiteURL      string
	Phone        string
	ContactEmail string
}

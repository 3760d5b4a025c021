// Package render builds the operator and requester emails for a contact
package render

import (
	"bytes"
	"embed"
	htmltpl "html/template"
	"strings"
	texttpl "text/template"
	"time"

	"kristech/internal/services/notify/domain"
)

//go:embed templates/*.tmpl
var files embed.FS

var funcs = map[string]any{
	"lines": func(s string) []string { return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") },
}

var (
	texts = texttpl.Must(texttpl.New("text").Funcs(funcs).ParseFS(files, "templates/*.txt.tmpl"))
	htmls = htmltpl.Must(htmltpl.New("html").Funcs(funcs).ParseFS(files, "templates/*.html.tmpl"))
)

var serviceNames = map[string]string{
	"web-development":    "Web Development",
	"graphic-design":     "Graphic Design",
	"it-consulting":      "IT Consulting",
	"database-solutions": "Database Solutions",
	"other":              "Other Services",
}

// ServiceName returns the display name for a service id, unknown ids pass through
func ServiceName(id string) string {
	if n, ok := serviceNames[id]; ok {
		return n
	}
	return id
}

// SubmittedLayout formats the submission time in messages
const SubmittedLayout = "Mon, 02 Jan 2006 15:04 MST"

type view struct {
	Brand       domain.Brand
	Contact     domain.Contact
	ServiceName string
	Submitted   string
}

func newView(b domain.Brand, c domain.Contact) view {
	at := c.SubmittedAt
	if at.IsZero() {
		at = time.Now()
	}
	return view{
		Brand:       b,
		Contact:     c,
		ServiceName: ServiceName(c.Service),
		Submitted:   at.UTC().Format(SubmittedLayout),
	}
}

// Operator builds the notification sent to the site operator
// replies go straight to the requester
func Operator(b domain.Brand, c domain.Contact, to string) (domain.Message, error) {
	return build(newView(b, c), "operator", domain.Message{
		FromName: b.OperatorFrom,
		To:       to,
		ReplyTo:  c.Email,
		Subject:  "New Contact Form Submission - " + c.Service,
	})
}

// Requester builds the acknowledgement sent back to the person who wrote in
func Requester(b domain.Brand, c domain.Contact) (domain.Message, error) {
	return build(newView(b, c), "requester", domain.Message{
		FromName: b.ReplyFrom,
		To:       c.Email,
		ReplyTo:  b.ContactEmail,
		Subject:  "Thank you for contacting " + b.Company,
	})
}

func build(v view, name string, m domain.Message) (domain.Message, error) {
	var txt, html bytes.Buffer
	if err := texts.ExecuteTemplate(&txt, name+".txt.tmpl", v); err != nil {
		return domain.Message{}, err
	}
	if err := htmls.ExecuteTemplate(&html, name+".html.tmpl", v); err != nil {
		return domain.Message{}, err
	}
	m.Text = strings.TrimSpace(txt.String()) + "\n"
	m.HTML = html.String()
	return m, nil
}

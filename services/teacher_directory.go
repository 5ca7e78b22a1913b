package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"admission-management-api/models"
)

// TeacherContact is one faculty contact responsible for a course.
type TeacherContact struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile,omitempty"`
}

// TeacherDirectory maps a course to the teachers who review its candidates.
// It is built once at startup and injected into the services that need it,
// so tests can supply fixtures.
type TeacherDirectory map[string][]TeacherContact

// DefaultTeacherDirectory returns the built-in course assignments.
// BasicComputers is co-taught, so it carries two contacts.
func DefaultTeacherDirectory() TeacherDirectory {
	return TeacherDirectory{
		"DBMS": {
			{Name: "Shilpa Raut", Email: "dbms.faculty@tti.example.org"},
		},
		"CloudComputing": {
			{Name: "Vinod Borate", Email: "cloud.faculty@tti.example.org"},
		},
		"Accessibility": {
			{Name: "Rajshree Ladkat", Email: "accessibility.faculty@tti.example.org"},
		},
		"BasicComputers": {
			{Name: "Supriya Jagdale", Email: "basics.faculty1@tti.example.org"},
			{Name: "Suvarna Khatate", Email: "basics.faculty2@tti.example.org"},
		},
		"MachineLearning": {
			{Name: "Batul Chinikamwala", Email: "ml.faculty@tti.example.org"},
		},
	}
}

// LoadTeacherDirectory reads COURSE_TEACHERS (a JSON object of
// course -> [{name,email,mobile}]) when set, falling back to the defaults.
func LoadTeacherDirectory() (TeacherDirectory, error) {
	raw := strings.TrimSpace(os.Getenv("COURSE_TEACHERS"))
	if raw == "" {
		return DefaultTeacherDirectory(), nil
	}
	var dir TeacherDirectory
	if err := json.Unmarshal([]byte(raw), &dir); err != nil {
		return nil, fmt.Errorf("invalid COURSE_TEACHERS: %w", err)
	}
	for course := range dir {
		if !models.IsValidCourse(course) {
			return nil, fmt.Errorf("invalid COURSE_TEACHERS: unknown course %q", course)
		}
	}
	return dir, nil
}

// Lookup returns the contacts for a course, nil when none are configured.
func (d TeacherDirectory) Lookup(course string) []TeacherContact {
	return d[course]
}

// Emails returns the usable contact emails for a course.
func (d TeacherDirectory) Emails(course string) []string {
	var emails []string
	for _, t := range d[course] {
		if strings.TrimSpace(t.Email) != "" {
			emails = append(emails, t.Email)
		}
	}
	return emails
}

// Names joins the contact names for use in salutations.
func (d TeacherDirectory) Names(course string) string {
	var names []string
	for _, t := range d[course] {
		if strings.TrimSpace(t.Name) != "" {
			names = append(names, t.Name)
		}
	}
	return strings.Join(names, " and ")
}

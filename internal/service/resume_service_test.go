package service

import (
	"bytes"
	"context"
	"testing"

	"proconnect/internal/models"
)

func TestResumeServiceGeneratePDF(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(context.Context, uint) (*models.User, error) {
		return &models.User{ID: 1, Name: "Jordan Tate", Email: "jordan@example.com"}, nil
	}
	profiles := noopProfileRepo()
	profiles.getByUserIDFn = func(context.Context, uint) (*models.Profile, error) {
		return &models.Profile{
			UserID:          1,
			Bio:             "Backend engineer",
			CurrentPosition: "Staff Engineer at Initech",
			Education: []models.Education{
				{Institution: "State University", Degree: "BSc", StartYear: "2010", EndYear: "2014"},
			},
			Experience: []models.Experience{
				{Company: "Initech", Position: "Engineer", StartYear: "2014", Description: "Built the platform"},
			},
			Skills: []string{"Go", "PostgreSQL"},
		}, nil
	}

	svc := NewResumeService(users, profiles)
	resume, err := svc.GeneratePDF(context.Background(), 1)
	if err != nil {
		t.Fatalf("generate pdf: %v", err)
	}
	if resume.Filename != "Jordan_Tate_resume.pdf" {
		t.Fatalf("unexpected filename: %q", resume.Filename)
	}
	if len(resume.Content) == 0 || !bytes.HasPrefix(resume.Content, []byte("%PDF")) {
		t.Fatalf("expected a PDF document, got %d bytes", len(resume.Content))
	}
}

func TestResumeServiceGeneratePDFEmptyProfile(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(context.Context, uint) (*models.User, error) {
		return &models.User{ID: 1, Name: "Jordan Tate", Email: "jordan@example.com"}, nil
	}

	// Empty sections are simply omitted; the document still renders.
	svc := NewResumeService(users, noopProfileRepo())
	resume, err := svc.GeneratePDF(context.Background(), 1)
	if err != nil {
		t.Fatalf("generate pdf: %v", err)
	}
	if !bytes.HasPrefix(resume.Content, []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
}

func TestResumeServiceGeneratePDFUnknownUser(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(context.Context, uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", 99)
	}

	svc := NewResumeService(users, noopProfileRepo())
	_, err := svc.GeneratePDF(context.Background(), 99)
	assertAppErrorCode(t, err, "NOT_FOUND")
}

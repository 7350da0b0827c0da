package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"proconnect/internal/models"
	"proconnect/internal/observability"
	"proconnect/internal/repository"

	"github.com/go-pdf/fpdf"
)

// ResumeService renders a user's profile as a downloadable PDF resume.
type ResumeService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

// NewResumeService returns a new ResumeService.
func NewResumeService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository) *ResumeService {
	return &ResumeService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// Resume is a rendered PDF document with its download filename.
type Resume struct {
	Filename string
	Content  []byte
}

// GeneratePDF renders the user's profile as a PDF. Sections with no data are
// omitted, matching the profile page.
func (s *ResumeService) GeneratePDF(ctx context.Context, userID uint) (*Resume, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 25)
	pdf.CellFormat(0, 14, fmt.Sprintf("%s's Profile", user.Name), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 15)
	pdf.CellFormat(0, 8, "Email: "+user.Email, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Name: "+user.Name, "", 1, "L", false, 0, "")

	if profile.Bio != "" {
		s.sectionHeading(pdf, "Bio")
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 6, profile.Bio, "", "L", false)
	}

	if profile.CurrentPosition != "" {
		s.sectionHeading(pdf, "Current Position")
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 6, profile.CurrentPosition, "", "L", false)
	}

	if len(profile.Education) > 0 {
		s.sectionHeading(pdf, "Education")
		for _, edu := range profile.Education {
			pdf.SetFont("Helvetica", "B", 14)
			pdf.CellFormat(0, 7, edu.Institution, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 12)
			pdf.CellFormat(0, 6, fmt.Sprintf("%s, %s - %s", edu.Degree, edu.StartYear, orPresent(edu.EndYear)), "", 1, "L", false, 0, "")
			pdf.Ln(2)
		}
	}

	if len(profile.Experience) > 0 {
		s.sectionHeading(pdf, "Experience")
		for _, exp := range profile.Experience {
			pdf.SetFont("Helvetica", "B", 14)
			pdf.CellFormat(0, 7, exp.Company, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 12)
			pdf.CellFormat(0, 6, fmt.Sprintf("%s, %s - %s", exp.Position, exp.StartYear, orPresent(exp.EndYear)), "", 1, "L", false, 0, "")
			if exp.Description != "" {
				pdf.SetFont("Helvetica", "", 10)
				pdf.MultiCell(0, 5, exp.Description, "", "L", false)
			}
			pdf.Ln(2)
		}
	}

	if len(profile.Skills) > 0 {
		s.sectionHeading(pdf, "Skills")
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 6, strings.Join(profile.Skills, ", "), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.ResumeExports.Inc()

	filename := strings.ReplaceAll(user.Name, " ", "_") + "_resume.pdf"
	return &Resume{Filename: filename, Content: buf.Bytes()}, nil
}

func (s *ResumeService) sectionHeading(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
}

func orPresent(year string) string {
	if year == "" {
		return "Present"
	}
	return year
}

// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"proconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with a believable identity. The external auth ID
// is synthetic; seeded accounts cannot log in through the identity provider.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	name := gofakeit.Name()
	username := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + fmt.Sprintf("%d", f.rand.Intn(1000))

	user := &models.User{
		Name:           name,
		Username:       username,
		Email:          username + "@" + gofakeit.DomainName(),
		ExternalAuthID: "seed-" + gofakeit.UUID(),
		CreatedAt:      f.pastTime(365),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateProfile persists a career profile for the user.
func (f *Factory) CreateProfile(user *models.User) (*models.Profile, error) {
	profile := &models.Profile{
		UserID:          user.ID,
		Bio:             gofakeit.Paragraph(1, 2, 8, " "),
		CurrentPosition: gofakeit.JobTitle() + " at " + gofakeit.Company(),
		Skills:          f.skills(),
	}

	numEdu := 1 + f.rand.Intn(2)
	for i := 0; i < numEdu; i++ {
		startYear := 2000 + f.rand.Intn(18)
		profile.Education = append(profile.Education, models.Education{
			Institution:  gofakeit.Company() + " University",
			Degree:       f.pick("B.Sc.", "M.Sc.", "B.A.", "MBA", "Ph.D."),
			FieldOfStudy: f.pick("Computer Science", "Economics", "Design", "Marketing", "Engineering"),
			StartYear:    fmt.Sprintf("%d", startYear),
			EndYear:      fmt.Sprintf("%d", startYear+3+f.rand.Intn(2)),
			SortOrder:    i,
		})
	}

	numExp := 1 + f.rand.Intn(3)
	for i := 0; i < numExp; i++ {
		startYear := 2010 + f.rand.Intn(12)
		endYear := fmt.Sprintf("%d", startYear+1+f.rand.Intn(4))
		if i == 0 && f.rand.Intn(2) == 0 {
			endYear = "" // current role
		}
		profile.Experience = append(profile.Experience, models.Experience{
			Company:     gofakeit.Company(),
			Position:    gofakeit.JobTitle(),
			StartYear:   fmt.Sprintf("%d", startYear),
			EndYear:     endYear,
			Description: gofakeit.Sentence(12),
			SortOrder:   i,
		})
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// CreatePost persists a post authored by the user with a realistic
// created_at spread.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID:    user.ID,
		Body:      gofakeit.Paragraph(1, 3, 10, " "),
		CreatedAt: f.pastTime(90),
	}
	if f.rand.Intn(4) == 0 {
		post.Media = gofakeit.UUID() + ".jpg"
		post.FileType = "jpeg"
	}
	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment by the user on the post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		UserID:    user.ID,
		PostID:    post.ID,
		Body:      gofakeit.Sentence(8 + f.rand.Intn(10)),
		CreatedAt: post.CreatedAt.Add(time.Duration(1+f.rand.Intn(72)) * time.Hour),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike adds the user to the post's like set, ignoring duplicates.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := &models.Like{UserID: user.ID, PostID: post.ID}
	err := f.db.Create(like).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// CreateConnection persists an edge between two users in the given state.
func (f *Factory) CreateConnection(requester, recipient *models.User, status models.ConnectionStatus) (*models.ConnectionRequest, error) {
	request := &models.ConnectionRequest{
		RequesterID: requester.ID,
		RecipientID: recipient.ID,
		Status:      status,
		CreatedAt:   f.pastTime(180),
	}
	if err := f.db.Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

func (f *Factory) skills() []string {
	all := []string{
		"Go", "PostgreSQL", "Redis", "Kubernetes", "React", "TypeScript",
		"Product Management", "Data Analysis", "SQL", "Python", "Leadership",
		"Public Speaking", "UX Design", "Figma", "Terraform", "AWS",
	}
	f.rand.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	return all[:3+f.rand.Intn(5)]
}

func (f *Factory) pick(options ...string) string {
	return options[f.rand.Intn(len(options))]
}

func (f *Factory) pastTime(maxDays int) time.Time {
	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	minsBack := f.rand.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

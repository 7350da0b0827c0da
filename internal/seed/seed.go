package seed

import (
	"fmt"
	"log/slog"

	"proconnect/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with a demo mesh: users with profiles, posts
// with comments and likes, and connection edges in all three states.
func Seed(db *gorm.DB, opts Options) error {
	slog.Info("starting database seeding", "users", opts.NumUsers, "posts", opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			slog.Warn("could not clear all existing data, continuing", "error", err)
		}
	}

	factory := NewFactory(db)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	slog.Info("users created", "count", len(users))

	posts, err := createPosts(factory, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	slog.Info("posts created", "count", len(posts))

	if err := createEngagement(factory, users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	if err := createConnectionMesh(factory, users); err != nil {
		return fmt.Errorf("failed to create connections: %w", err)
	}

	slog.Info("seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	// Child tables first to respect FKs.
	tables := []string{"likes", "comments", "posts", "connection_requests",
		"profile_education", "profile_experience", "profiles", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return nil, err
		}
		if _, err := f.CreateProfile(user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(f *Factory, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[f.rand.Intn(len(users))]
		post, err := f.CreatePost(author)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createEngagement(f *Factory, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		numLikes := f.rand.Intn(len(users)/2 + 1)
		for i := 0; i < numLikes; i++ {
			if err := f.CreateLike(users[f.rand.Intn(len(users))], post); err != nil {
				return err
			}
		}

		numComments := f.rand.Intn(4)
		for i := 0; i < numComments; i++ {
			if _, err := f.CreateComment(users[f.rand.Intn(len(users))], post); err != nil {
				return err
			}
		}
	}
	return nil
}

// createConnectionMesh links each user to a handful of others, spreading the
// edges across pending, accepted and rejected so every state-machine branch
// has data behind it.
func createConnectionMesh(f *Factory, users []*models.User) error {
	if len(users) < 2 {
		return nil
	}

	statuses := []models.ConnectionStatus{
		models.ConnectionStatusAccepted,
		models.ConnectionStatusAccepted,
		models.ConnectionStatusPending,
		models.ConnectionStatusRejected,
	}

	seen := map[[2]uint]bool{}
	for i, user := range users {
		numEdges := 2 + f.rand.Intn(4)
		for e := 0; e < numEdges; e++ {
			other := users[f.rand.Intn(len(users))]
			if other.ID == user.ID {
				continue
			}

			key := [2]uint{user.ID, other.ID}
			if user.ID > other.ID {
				key = [2]uint{other.ID, user.ID}
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			status := statuses[(i+e)%len(statuses)]
			if _, err := f.CreateConnection(user, other, status); err != nil {
				return err
			}
		}
	}
	return nil
}

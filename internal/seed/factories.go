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

	"agriconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		//nolint:gosec // Weak random number generator is fine for seeding
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var regions = []string{
	"Kaolack", "Thies", "Saint-Louis", "Ziguinchor", "Tambacounda",
	"Fatick", "Kolda", "Louga", "Matam", "Kaffrine",
}

var cropTopics = []string{
	"millet spacing after the first rains",
	"groundnut seed storage before planting season",
	"drip lines on a half-hectare tomato plot",
	"neem extract against aphids on okra",
	"composting rice straw for the dry season",
	"goat fattening rations on crop residue",
	"intercropping cowpea with maize",
	"early sorghum varieties for short rains",
	"solar pump maintenance for market gardens",
	"selling onions through the cooperative",
}

// CreateUser constructs and persists a sample models.User.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Region:   regions[f.rand.Intn(len(regions))],
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post without persisting it. Useful for batching.
// forumID may be nil for a global feed post.
func (f *Factory) BuildPost(user *models.User, forumID *uint, overrides ...func(*models.Post)) *models.Post {
	topic := cropTopics[f.rand.Intn(len(cropTopics))]
	post := &models.Post{
		Content: fmt.Sprintf("Anyone tried %s? %s", topic, gofakeit.Paragraph(1, 2, 8, " ")),
		UserID:  user.ID,
		ForumID: forumID,
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	minsBack := f.rand.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	// roughly a third of posts carry a field photo
	if f.rand.Intn(3) == 0 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment persists a comment by the given user on the given post.
// parent may be nil for a top-level comment.
func (f *Factory) CreateComment(user *models.User, post *models.Post, parent *models.Comment) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(f.rand.Intn(12) + 3),
		UserID:  user.ID,
		PostID:  post.ID,
	}
	if parent != nil {
		comment.ParentCommentID = &parent.ID
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike records a like of post by user, ignoring duplicates.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := &models.Like{UserID: user.ID, PostID: post.ID}
	err := f.db.Create(like).Error
	if err != nil && isDuplicate(err) {
		return nil
	}
	return err
}

func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	// sqlite (used in tests) reports duplicates as plain text
	return strings.Contains(err.Error(), "UNIQUE constraint")
}

package seed

import (
	"fmt"
	"log"

	"agriconnect/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	MaxDays     int
	SkipBcrypt  bool
	ShouldClean bool
}

// forumPresets are the default communities every seeded database gets.
var forumPresets = []struct {
	Name        string
	Slug        string
	Description string
}{
	{"Rice Growers", "rice-growers", "Paddy preparation, varieties, and harvest timing."},
	{"Market Gardening", "market-gardening", "Vegetables for local markets: onions, tomatoes, okra."},
	{"Livestock Keepers", "livestock-keepers", "Cattle, goats, and poultry health and feed."},
	{"Irrigation & Water", "irrigation-water", "Pumps, drip lines, and water management."},
	{"Soil & Compost", "soil-compost", "Fertility, composting, and erosion control."},
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("%d test users created", len(users))

	forums, err := createOrGetForums(db, users)
	if err != nil {
		return fmt.Errorf("failed to create forums: %w", err)
	}
	log.Printf("%d forums available", len(forums))

	if err := joinForums(db, factory, users, forums); err != nil {
		return fmt.Errorf("failed to create memberships: %w", err)
	}

	posts, err := createPosts(factory, users, forums, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := createInteractions(db, factory, users, posts); err != nil {
		return fmt.Errorf("failed to create interactions: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comment_likes, likes, comments, posts, forum_memberships, forums, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

// createOrGetForums ensures the preset forums exist, each owned by a seeded user.
func createOrGetForums(db *gorm.DB, users []*models.User) ([]*models.Forum, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("at least one user is required to own forums")
	}

	forums := make([]*models.Forum, 0, len(forumPresets))
	for i, preset := range forumPresets {
		owner := users[i%len(users)]

		var forum models.Forum
		err := db.Where("slug = ?", preset.Slug).First(&forum).Error
		if err == nil {
			forums = append(forums, &forum)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}

		forum = models.Forum{
			Name:            preset.Name,
			Slug:            preset.Slug,
			Description:     preset.Description,
			CreatedByUserID: owner.ID,
		}
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&forum).Error; err != nil {
				return err
			}
			return tx.Create(&models.ForumMembership{
				ForumID: forum.ID,
				UserID:  owner.ID,
				Role:    models.ForumMembershipRoleOwner,
			}).Error
		})
		if txErr != nil {
			return nil, txErr
		}
		forums = append(forums, &forum)
	}
	return forums, nil
}

// joinForums has each user follow roughly half of the forums.
func joinForums(db *gorm.DB, factory *Factory, users []*models.User, forums []*models.Forum) error {
	for _, user := range users {
		for _, forum := range forums {
			if factory.rand.Intn(2) == 0 {
				continue
			}
			membership := models.ForumMembership{
				ForumID: forum.ID,
				UserID:  user.ID,
				Role:    models.ForumMembershipRoleMember,
			}
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "forum_id"}, {Name: "user_id"}},
				DoNothing: true,
			}).Create(&membership).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// createPosts spreads posts between the global feed and forums the author follows.
func createPosts(factory *Factory, users []*models.User, forums []*models.Forum, count int) ([]*models.Post, error) {
	memberForums := make(map[uint][]*models.Forum, len(users))
	for _, user := range users {
		var memberships []models.ForumMembership
		if err := factory.db.Where("user_id = ?", user.ID).Find(&memberships).Error; err != nil {
			return nil, err
		}
		byID := make(map[uint]*models.Forum, len(forums))
		for _, f := range forums {
			byID[f.ID] = f
		}
		for _, m := range memberships {
			if f, ok := byID[m.ForumID]; ok {
				memberForums[user.ID] = append(memberForums[user.ID], f)
			}
		}
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		user := users[factory.rand.Intn(len(users))]

		// Two thirds global feed, one third inside a followed forum.
		var forumID *uint
		if joined := memberForums[user.ID]; len(joined) > 0 && factory.rand.Intn(3) == 0 {
			forumID = &joined[factory.rand.Intn(len(joined))].ID
		}

		posts = append(posts, factory.BuildPost(user, forumID))
	}

	if err := factory.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// createInteractions sprinkles likes, comments, and one-level replies over the
// seeded posts, honoring the forum gate: only members interact with forum posts.
func createInteractions(db *gorm.DB, factory *Factory, users []*models.User, posts []*models.Post) error {
	canInteract := func(user *models.User, post *models.Post) (bool, error) {
		if post.ForumID == nil {
			return true, nil
		}
		var count int64
		err := db.Model(&models.ForumMembership{}).
			Where("forum_id = ? AND user_id = ?", *post.ForumID, user.ID).
			Count(&count).Error
		return count > 0, err
	}

	likes, comments, replies := 0, 0, 0
	for _, post := range posts {
		for i := 0; i < factory.rand.Intn(4); i++ {
			user := users[factory.rand.Intn(len(users))]
			ok, err := canInteract(user, post)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := factory.CreateLike(user, post); err != nil {
				return err
			}
			likes++
		}

		var lastTopLevel *models.Comment
		for i := 0; i < factory.rand.Intn(3); i++ {
			user := users[factory.rand.Intn(len(users))]
			ok, err := canInteract(user, post)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			comment, err := factory.CreateComment(user, post, nil)
			if err != nil {
				return err
			}
			comments++
			lastTopLevel = comment
		}

		if lastTopLevel != nil && factory.rand.Intn(2) == 0 {
			user := users[factory.rand.Intn(len(users))]
			ok, err := canInteract(user, post)
			if err != nil {
				return err
			}
			if ok {
				if _, err := factory.CreateComment(user, post, lastTopLevel); err != nil {
					return err
				}
				replies++
			}
		}
	}

	log.Printf("%d likes, %d comments, %d replies created", likes, comments, replies)
	return nil
}

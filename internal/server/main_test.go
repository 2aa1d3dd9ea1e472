package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"agriconnect/internal/config"
	"agriconnect/internal/database"
	"agriconnect/internal/repository"
	"agriconnect/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testPassword = "TestPass123!@#"

// newHandlerTestServer builds a Server over an in-memory SQLite database with
// no Redis, and mounts the full route table on a bare Fiber app so requests
// flow through the real auth middleware.
func newHandlerTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	forumRepo := repository.NewForumRepository(db)

	s := &Server{
		config: &config.Config{
			JWTSecret: "handler-test-secret-key",
			Env:       "test",
		},
		db:          db,
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		forumRepo:   forumRepo,
	}
	s.postService = service.NewPostService(postRepo, forumRepo)
	s.commentService = service.NewCommentService(commentRepo, postRepo, forumRepo)
	s.forumService = service.NewForumService(forumRepo)
	s.userService = service.NewUserService(userRepo, postRepo)

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app
}

// signupUser registers a user through the API and returns their bearer token
// and user ID.
func signupUser(t *testing.T, app *fiber.App, username string) (string, uint) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": testPassword,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("signup request: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup %s expected 201, got %d", username, resp.StatusCode)
	}

	var data struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	if data.Token == "" || data.User.ID == 0 {
		t.Fatalf("signup response missing token or user: %+v", data)
	}
	return data.Token, data.User.ID
}

// doJSON performs a JSON request with an optional bearer token and decodes the
// response body into out (when out is non-nil).
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

// createForum creates a forum as the given user and returns its ID and slug.
func createForum(t *testing.T, app *fiber.App, token, name string) (uint, string) {
	t.Helper()

	var forum struct {
		ID   uint   `json:"id"`
		Slug string `json:"slug"`
	}
	status := doJSON(t, app, http.MethodPost, "/api/forums", token, map[string]string{
		"name": name,
	}, &forum)
	if status != http.StatusCreated {
		t.Fatalf("create forum %q expected 201, got %d", name, status)
	}
	return forum.ID, forum.Slug
}

// createPost creates a post as the given user. forumID may be nil for the
// global feed.
func createPost(t *testing.T, app *fiber.App, token, content string, forumID *uint) uint {
	t.Helper()

	body := map[string]interface{}{"content": content}
	if forumID != nil {
		body["forum_id"] = *forumID
	}

	var post struct {
		ID uint `json:"id"`
	}
	status := doJSON(t, app, http.MethodPost, "/api/posts", token, body, &post)
	if status != http.StatusCreated {
		t.Fatalf("create post expected 201, got %d", status)
	}
	return post.ID
}

func likePath(postID uint) string {
	return fmt.Sprintf("/api/posts/%d/like", postID)
}

package service

import (
	"context"
	"strings"

	"agriconnect/internal/models"
	"agriconnect/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

type UpdateProfileInput struct {
	UserID uint
	Bio    *string
	Avatar *string
	Region *string
}

func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository) *UserService {
	return &UserService{userRepo: userRepo, postRepo: postRepo}
}

func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) GetProfileByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if len(bio) > 500 {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = bio
	}
	if in.Avatar != nil {
		user.Avatar = strings.TrimSpace(*in.Avatar)
	}
	if in.Region != nil {
		user.Region = strings.TrimSpace(*in.Region)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

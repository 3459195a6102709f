package service

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"carrental/internal/model"
	"carrental/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DTOs for Request validation. Users are created/updated via multipart forms
// so a profile image can travel with the fields.
type CreateUserRequest struct {
	Name         string                `form:"name" binding:"required"`
	Email        string                `form:"email" binding:"required,email"`
	Password     string                `form:"password" binding:"required,min=6"`
	Role         string                `form:"role" binding:"required"`
	ProfileImage *multipart.FileHeader `form:"profile_image"`
}

type UpdateUserRequest struct {
	Name         string                `form:"name"`
	Email        string                `form:"email" binding:"omitempty,email"`
	Password     string                `form:"password" binding:"omitempty,min=6"`
	Role         string                `form:"role"`
	ProfileImage *multipart.FileHeader `form:"profile_image"`
}

// RoleRef is the plural role shape some clients read: roles[0].name.
type RoleRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UserResponse is the User wire shape, password omitted. Both role shapes are
// carried: the scalar role and the roles list.
type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Roles        []RoleRef `json:"roles,omitempty"`
	ProfileImage string    `json:"profile_image,omitempty"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
}

// UserService defines the interface for business logic related to User
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context, page, limit int, search string) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	repo   repository.UserRepository
	roles  repository.RoleRepository
	images *ImageStore
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, roles repository.RoleRepository, images *ImageStore) UserService {
	return &userService{repo: repo, roles: roles, images: images}
}

// validateRole accepts any role present in the roles table.
func (s *userService) validateRole(ctx context.Context, role string) error {
	if _, err := s.roles.GetByName(ctx, role); err != nil {
		return errors.New("invalid role: " + role)
	}
	return nil
}

// Helper: parse model to standard json API response
func mapUserToResponse(user *model.User) *UserResponse {
	res := &UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    user.UpdatedAt.Format(time.RFC3339),
	}
	for _, r := range user.Roles {
		res.Roles = append(res.Roles, RoleRef{ID: r.ID, Name: r.Name})
	}
	return res
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	if err := s.validateRole(ctx, req.Role); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("email already exists")
	}

	// Hash password automatically
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     req.Role,
	}

	if req.ProfileImage != nil {
		filename, err := s.images.Save(req.ProfileImage)
		if err != nil {
			return nil, errors.New("failed to store profile image: " + err.Error())
		}
		user.ProfileImage = filename
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return mapUserToResponse(user), nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return mapUserToResponse(user), nil
}

// GetUser exposes the model for callers that derive navigation from it.
func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) ListUsers(ctx context.Context, page, limit int, search string) ([]UserResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	users, total, err := s.repo.List(ctx, page, limit, search)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, *mapUserToResponse(&u))
	}

	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if req.Role != "" {
		if err := s.validateRole(ctx, req.Role); err != nil {
			return nil, err
		}
		user.Role = req.Role
	}

	if req.Name != "" {
		user.Name = req.Name
	}

	if req.Email != "" && req.Email != user.Email {
		if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
			return nil, errors.New("email already exists")
		}
		user.Email = req.Email
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errors.New("failed to hash password")
		}
		user.Password = string(hashed)
	}

	if req.ProfileImage != nil {
		filename, err := s.images.Save(req.ProfileImage)
		if err != nil {
			return nil, errors.New("failed to store profile image: " + err.Error())
		}
		if user.ProfileImage != "" {
			_ = s.images.Remove(user.ProfileImage)
		}
		user.ProfileImage = filename
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return mapUserToResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.New("user not found")
	}
	return s.repo.Delete(ctx, id)
}

package service

import (
	"context"

	"carrental/internal/repository"
)

// RolesResponse is the shape the dashboard's role picker consumes.
type RolesResponse struct {
	Roles []RoleRef `json:"roles"`
}

// RoleService exposes the assignable roles.
type RoleService interface {
	ListRoles(ctx context.Context) (*RolesResponse, error)
}

type roleService struct {
	repo repository.RoleRepository
}

// NewRoleService returns a new instance of RoleService
func NewRoleService(repo repository.RoleRepository) RoleService {
	return &roleService{repo: repo}
}

func (s *roleService) ListRoles(ctx context.Context) (*RolesResponse, error) {
	roles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	res := &RolesResponse{Roles: make([]RoleRef, 0, len(roles))}
	for _, r := range roles {
		res.Roles = append(res.Roles, RoleRef{ID: r.ID, Name: r.Name})
	}
	return res, nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/nk_store/internal/authz"
	"github.com/Skotchmaster/nk_store/internal/models"
	"github.com/Skotchmaster/nk_store/internal/repo"
	"github.com/Skotchmaster/nk_store/internal/transport"
)

type UserService struct {
	Repo            *repo.GormRepo
	SuperAdminEmail string
}

// Resolve loads (creating on first sight) the user behind a verified token
// and returns it together with its effective role.
func (s *UserService) Resolve(ctx context.Context, id, email, name string) (*models.User, string, error) {
	if id == "" {
		return nil, "", fmt.Errorf("user id required: %w", ErrValidation)
	}
	u, err := s.Repo.EnsureUser(ctx, id, strings.ToLower(strings.TrimSpace(email)), strings.TrimSpace(name))
	if err != nil {
		return nil, "", err
	}
	return u, authz.Role(s.SuperAdminEmail, u), nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		return nil, notFound(err, "user %s", id)
	}
	return u, nil
}

func (s *UserService) SetOrderUpdates(ctx context.Context, id string, enabled bool) error {
	if err := s.Repo.SetOrderUpdates(ctx, id, enabled); err != nil {
		return notFound(err, "user %s", id)
	}
	return nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, req transport.ProfileRequest) (*models.User, error) {
	if err := s.Repo.UpdateProfile(ctx, id, repo.ProfileUpdate{
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		City:        req.City,
	}); err != nil {
		return nil, notFound(err, "user %s", id)
	}
	return s.Get(ctx, id)
}

func (s *UserService) AddAddress(ctx context.Context, id string, a models.Address) (*models.User, error) {
	if !validAddress(a) {
		return nil, fmt.Errorf("address incomplete: %w", ErrValidation)
	}
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	a.ID = uuid.NewString()
	addrs := append(models.Addresses{}, u.Addresses...)
	addrs = append(addrs, a)
	if err := s.Repo.SetAddresses(ctx, id, addrs); err != nil {
		return nil, err
	}
	u.Addresses = addrs
	return u, nil
}

func (s *UserService) RemoveAddress(ctx context.Context, id, addressID string) (*models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	addrs := make(models.Addresses, 0, len(u.Addresses))
	for _, a := range u.Addresses {
		if a.ID != addressID {
			addrs = append(addrs, a)
		}
	}
	if len(addrs) == len(u.Addresses) {
		return nil, fmt.Errorf("address %s: %w", addressID, ErrNotFound)
	}
	if err := s.Repo.SetAddresses(ctx, id, addrs); err != nil {
		return nil, err
	}
	u.Addresses = addrs
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

// SetRole changes a stored role. The super admin's role comes from config and
// cannot be changed here.
func (s *UserService) SetRole(ctx context.Context, id, role string) error {
	if !authz.ValidRole(role) {
		return fmt.Errorf("role %q: %w", role, ErrValidation)
	}
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if s.SuperAdminEmail != "" && strings.EqualFold(u.Email, s.SuperAdminEmail) {
		return fmt.Errorf("super admin role is fixed: %w", ErrForbidden)
	}
	return s.Repo.SetRole(ctx, id, role)
}

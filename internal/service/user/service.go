package user

import (
	"context"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/medibook-api/internal/model"
	"github.com/medibook/medibook-api/internal/repository"
	apperr "github.com/medibook/medibook-api/pkg/errors"
)

type Service struct {
	repo repository.UserRepository
}

func NewService(repo repository.UserRepository) *Service {
	return &Service{repo: repo}
}

// Profile returns the user's own record.
func (s *Service) Profile(ctx context.Context, userID string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.Validation("invalid user id")
	}
	return s.repo.Get(ctx, oid)
}

// UpdateProfile updates the owning user's profile fields. The address arrives
// as a JSON string alongside the multipart image upload; imageURL is empty
// when no new image was uploaded.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest, imageURL string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperr.Validation("invalid user id")
	}

	user, err := s.repo.Get(ctx, oid)
	if err != nil {
		return err
	}

	user.Name = req.Name
	user.Phone = req.Phone
	user.DOB = req.DOB
	user.Gender = req.Gender

	if req.Address != "" {
		var address model.Address
		if err := json.Unmarshal([]byte(req.Address), &address); err != nil {
			return apperr.Validation("invalid address format")
		}
		user.Address = address
	}

	if imageURL != "" {
		user.Image = imageURL
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

package doctor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/medibook-api/internal/model"
	"github.com/medibook/medibook-api/internal/repository"
	apperr "github.com/medibook/medibook-api/pkg/errors"
	"github.com/medibook/medibook-api/pkg/security"
)

const (
	publicListKey        = "doctors:public"
	publicListTTL        = 5 * time.Minute
	cacheCleanupInterval = 15 * time.Minute
)

type Service struct {
	repo   repository.DoctorRepository
	hasher security.PasswordHasher
	cache  *cache.Cache
}

func NewService(repo repository.DoctorRepository, hasher security.PasswordHasher) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		cache:  cache.New(publicListTTL, cacheCleanupInterval),
	}
}

// AddDoctor registers a new doctor. The address arrives as a JSON string
// alongside the multipart image upload.
func (s *Service) AddDoctor(ctx context.Context, req *model.AddDoctorRequest, imageURL string) (*model.Doctor, error) {
	if existing, _ := s.repo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, apperr.Validation("email already registered")
	}

	var address model.Address
	if err := json.Unmarshal([]byte(req.Address), &address); err != nil {
		return nil, apperr.Validation("invalid address format")
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	doctor := &model.Doctor{
		Name:        req.Name,
		Email:       req.Email,
		Password:    hashed,
		Image:       imageURL,
		Speciality:  req.Speciality,
		Degree:      req.Degree,
		Experience:  req.Experience,
		About:       req.About,
		Available:   true,
		Fees:        req.Fees,
		Address:     address,
		SlotsBooked: make(map[string][]string),
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	s.cache.Delete(publicListKey)
	return doctor, nil
}

// PublicList returns every doctor with credentials stripped, for the
// patient-facing listing. Results are cached briefly.
func (s *Service) PublicList(ctx context.Context) ([]*model.Doctor, error) {
	if cached, ok := s.cache.Get(publicListKey); ok {
		return cached.([]*model.Doctor), nil
	}

	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	public := make([]*model.Doctor, 0, len(doctors))
	for _, d := range doctors {
		sanitized := *d
		sanitized.Email = ""
		sanitized.Password = ""
		public = append(public, &sanitized)
	}

	s.cache.SetDefault(publicListKey, public)
	return public, nil
}

// ListAll returns every doctor for the admin console.
func (s *Service) ListAll(ctx context.Context) ([]*model.Doctor, error) {
	return s.repo.List(ctx)
}

// ToggleAvailability flips whether the doctor accepts new bookings.
func (s *Service) ToggleAvailability(ctx context.Context, docID string) error {
	oid, err := primitive.ObjectIDFromHex(docID)
	if err != nil {
		return apperr.Validation("invalid doctor id")
	}

	doctor, err := s.repo.Get(ctx, oid)
	if err != nil {
		return err
	}

	doctor.Available = !doctor.Available
	if err := s.repo.Update(ctx, doctor); err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}

	s.cache.Delete(publicListKey)
	return nil
}

// Profile returns a doctor's own record.
func (s *Service) Profile(ctx context.Context, docID string) (*model.Doctor, error) {
	oid, err := primitive.ObjectIDFromHex(docID)
	if err != nil {
		return nil, apperr.Validation("invalid doctor id")
	}
	return s.repo.Get(ctx, oid)
}

// UpdateProfile lets a doctor change fees, address and availability.
func (s *Service) UpdateProfile(ctx context.Context, docID string, req *model.UpdateDoctorProfileRequest) error {
	oid, err := primitive.ObjectIDFromHex(docID)
	if err != nil {
		return apperr.Validation("invalid doctor id")
	}

	doctor, err := s.repo.Get(ctx, oid)
	if err != nil {
		return err
	}

	if req.Fees != nil {
		doctor.Fees = *req.Fees
	}
	if req.Address != nil {
		doctor.Address = *req.Address
	}
	if req.Available != nil {
		doctor.Available = *req.Available
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}

	s.cache.Delete(publicListKey)
	return nil
}

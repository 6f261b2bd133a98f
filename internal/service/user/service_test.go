package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/medibook-api/internal/model"
	"github.com/medibook/medibook-api/internal/repository"
	apperr "github.com/medibook/medibook-api/pkg/errors"
)

type stubRepo struct {
	repository.UserRepository
	user *model.User
}

func (r *stubRepo) Get(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	if r.user == nil || r.user.ID != id {
		return nil, apperr.NotFound("user")
	}
	copied := *r.user
	return &copied, nil
}

func (r *stubRepo) Update(_ context.Context, user *model.User) error {
	if r.user == nil || r.user.ID != user.ID {
		return apperr.NotFound("user")
	}
	copied := *user
	r.user = &copied
	return nil
}

func updateRequest() *model.UpdateProfileRequest {
	return &model.UpdateProfileRequest{
		Name:   "John Carter",
		Phone:  "5551234567",
		DOB:    "1990-01-20",
		Gender: "Male",
	}
}

func TestProfile(t *testing.T) {
	stored := &model.User{ID: primitive.NewObjectID(), Name: "John Carter"}
	svc := NewService(&stubRepo{user: stored})

	user, err := svc.Profile(context.Background(), stored.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "John Carter", user.Name)

	_, err = svc.Profile(context.Background(), "bad-id")
	assert.True(t, apperr.IsCode(err, apperr.ErrValidation))
}

func TestUpdateProfile(t *testing.T) {
	stored := &model.User{ID: primitive.NewObjectID(), Image: "/media/old.png"}
	repo := &stubRepo{user: stored}
	svc := NewService(repo)

	req := updateRequest()
	req.Address = `{"line1":"42 Baker St","line2":"London"}`

	require.NoError(t, svc.UpdateProfile(context.Background(), stored.ID.Hex(), req, ""))

	assert.Equal(t, "John Carter", repo.user.Name)
	assert.Equal(t, "5551234567", repo.user.Phone)
	assert.Equal(t, "42 Baker St", repo.user.Address.Line1)
	// no new upload keeps the existing image
	assert.Equal(t, "/media/old.png", repo.user.Image)
}

func TestUpdateProfileWithImage(t *testing.T) {
	stored := &model.User{ID: primitive.NewObjectID(), Image: "/media/old.png"}
	repo := &stubRepo{user: stored}
	svc := NewService(repo)

	require.NoError(t, svc.UpdateProfile(context.Background(), stored.ID.Hex(), updateRequest(), "/media/new.png"))
	assert.Equal(t, "/media/new.png", repo.user.Image)
}

func TestUpdateProfileBadAddress(t *testing.T) {
	stored := &model.User{ID: primitive.NewObjectID()}
	svc := NewService(&stubRepo{user: stored})

	req := updateRequest()
	req.Address = "not json"

	err := svc.UpdateProfile(context.Background(), stored.ID.Hex(), req, "")
	assert.True(t, apperr.IsCode(err, apperr.ErrValidation))
}

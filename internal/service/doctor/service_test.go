package doctor

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/medibook-api/internal/model"
	apperr "github.com/medibook/medibook-api/pkg/errors"
)

type fakeRepo struct {
	mu       sync.Mutex
	doctors  map[primitive.ObjectID]*model.Doctor
	listHits int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{doctors: make(map[primitive.ObjectID]*model.Doctor)}
}

func (r *fakeRepo) Create(_ context.Context, doctor *model.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doctor.ID.IsZero() {
		doctor.ID = primitive.NewObjectID()
	}
	copied := *doctor
	r.doctors[doctor.ID] = &copied
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id primitive.ObjectID) (*model.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doctor, ok := r.doctors[id]
	if !ok {
		return nil, apperr.NotFound("doctor")
	}
	copied := *doctor
	return &copied, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*model.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, doctor := range r.doctors {
		if doctor.Email == email {
			copied := *doctor
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("doctor")
}

func (r *fakeRepo) Update(_ context.Context, doctor *model.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.doctors[doctor.ID]; !ok {
		return apperr.NotFound("doctor")
	}
	copied := *doctor
	r.doctors[doctor.ID] = &copied
	return nil
}

func (r *fakeRepo) UpdateSlots(_ context.Context, id primitive.ObjectID, slots map[string][]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doctor, ok := r.doctors[id]
	if !ok {
		return apperr.NotFound("doctor")
	}
	doctor.SlotsBooked = slots
	return nil
}

func (r *fakeRepo) List(_ context.Context) ([]*model.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listHits++
	out := make([]*model.Doctor, 0, len(r.doctors))
	for _, doctor := range r.doctors {
		copied := *doctor
		out = append(out, &copied)
	}
	return out, nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return assert.AnError
	}
	return nil
}

func addDoctorRequest() *model.AddDoctorRequest {
	return &model.AddDoctorRequest{
		Name:       "Dr. Richard James",
		Email:      "richard@medibook.local",
		Password:   "supersecret",
		Speciality: "General physician",
		Degree:     "MBBS",
		Experience: "4 Years",
		About:      "Committed to preventive care.",
		Fees:       500,
		Address:    `{"line1":"17th Cross, Richmond","line2":"Circle, Ring Road, London"}`,
	}
}

func TestAddDoctor(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, plainHasher{})

	doctor, err := svc.AddDoctor(context.Background(), addDoctorRequest(), "/media/abc.png")
	require.NoError(t, err)

	assert.False(t, doctor.ID.IsZero())
	assert.True(t, doctor.Available)
	assert.Equal(t, "hashed:supersecret", doctor.Password)
	assert.Equal(t, "/media/abc.png", doctor.Image)
	assert.Equal(t, "17th Cross, Richmond", doctor.Address.Line1)
	assert.NotNil(t, doctor.SlotsBooked)

	_, err = svc.AddDoctor(context.Background(), addDoctorRequest(), "")
	assert.True(t, apperr.IsCode(err, apperr.ErrValidation))
}

func TestAddDoctorBadAddress(t *testing.T) {
	svc := NewService(newFakeRepo(), plainHasher{})

	req := addDoctorRequest()
	req.Address = "not json"

	_, err := svc.AddDoctor(context.Background(), req, "")
	assert.True(t, apperr.IsCode(err, apperr.ErrValidation))
}

func TestPublicListStripsCredentials(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, plainHasher{})

	_, err := svc.AddDoctor(context.Background(), addDoctorRequest(), "")
	require.NoError(t, err)

	public, err := svc.PublicList(context.Background())
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Empty(t, public[0].Email)
	assert.Empty(t, public[0].Password)
	assert.Equal(t, "Dr. Richard James", public[0].Name)
}

func TestPublicListCaching(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, plainHasher{})

	doctor, err := svc.AddDoctor(context.Background(), addDoctorRequest(), "")
	require.NoError(t, err)

	_, err = svc.PublicList(context.Background())
	require.NoError(t, err)
	_, err = svc.PublicList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listHits, "second read served from cache")

	// mutations bust the cache
	require.NoError(t, svc.ToggleAvailability(context.Background(), doctor.ID.Hex()))

	public, err := svc.PublicList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listHits)
	require.Len(t, public, 1)
	assert.False(t, public[0].Available)
}

func TestToggleAvailability(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, plainHasher{})

	doctor, err := svc.AddDoctor(context.Background(), addDoctorRequest(), "")
	require.NoError(t, err)

	require.NoError(t, svc.ToggleAvailability(context.Background(), doctor.ID.Hex()))
	stored, err := repo.Get(context.Background(), doctor.ID)
	require.NoError(t, err)
	assert.False(t, stored.Available)

	require.NoError(t, svc.ToggleAvailability(context.Background(), doctor.ID.Hex()))
	stored, err = repo.Get(context.Background(), doctor.ID)
	require.NoError(t, err)
	assert.True(t, stored.Available)

	err = svc.ToggleAvailability(context.Background(), "nope")
	assert.True(t, apperr.IsCode(err, apperr.ErrValidation))
}

func TestUpdateProfile(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, plainHasher{})

	doctor, err := svc.AddDoctor(context.Background(), addDoctorRequest(), "")
	require.NoError(t, err)

	fees := 750.0
	available := false
	err = svc.UpdateProfile(context.Background(), doctor.ID.Hex(), &model.UpdateDoctorProfileRequest{
		Fees:      &fees,
		Available: &available,
	})
	require.NoError(t, err)

	stored, err := repo.Get(context.Background(), doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, 750.0, stored.Fees)
	assert.False(t, stored.Available)
	// untouched fields keep their values
	assert.Equal(t, "17th Cross, Richmond", stored.Address.Line1)
}

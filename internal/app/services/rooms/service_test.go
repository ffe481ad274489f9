package rooms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainrooms "github.com/thienvyma/tagiangecolodge/internal/domain/rooms"
)

type fakeRoomRepo struct {
	items map[string]*domainrooms.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{items: make(map[string]*domainrooms.Room)}
}

func (r *fakeRoomRepo) ByID(_ context.Context, id string) (*domainrooms.Room, error) {
	room, ok := r.items[id]
	if !ok {
		return nil, domainrooms.ErrRoomNotFound
	}
	return room, nil
}

func (r *fakeRoomRepo) List(_ context.Context) ([]*domainrooms.Room, error) {
	out := make([]*domainrooms.Room, 0, len(r.items))
	for _, room := range r.items {
		out = append(out, room)
	}
	return out, nil
}

func (r *fakeRoomRepo) Save(_ context.Context, room *domainrooms.Room) error {
	r.items[room.ID] = room
	return nil
}

func (r *fakeRoomRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domainrooms.ErrRoomNotFound
	}
	delete(r.items, id)
	return nil
}

func TestCreateAssignsID(t *testing.T) {
	repo := newFakeRoomRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), &domainrooms.Room{
		Name:        "Bungalow tre",
		NightlyRate: 550000,
		Capacity:    2,
		Available:   true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Contains(t, repo.items, created.ID)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeRoomRepo())

	cases := []struct {
		name string
		room *domainrooms.Room
		want error
	}{
		{"blank name", &domainrooms.Room{NightlyRate: 100000}, domainrooms.ErrNameRequired},
		{"zero rate", &domainrooms.Room{Name: "Dorm"}, domainrooms.ErrInvalidRate},
		{"negative rate", &domainrooms.Room{Name: "Dorm", NightlyRate: -1}, domainrooms.ErrInvalidRate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.room)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUpdateUnknownRoom(t *testing.T) {
	svc := NewService(newFakeRoomRepo())

	err := svc.Update(context.Background(), &domainrooms.Room{
		ID:          "missing",
		Name:        "Dorm",
		NightlyRate: 100000,
	})
	assert.ErrorIs(t, err, domainrooms.ErrRoomNotFound)
}

func TestUpdateOverwrites(t *testing.T) {
	repo := newFakeRoomRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), &domainrooms.Room{
		Name:        "Dorm",
		NightlyRate: 150000,
	})
	require.NoError(t, err)

	updated := *created
	updated.NightlyRate = 180000
	require.NoError(t, svc.Update(context.Background(), &updated))
	assert.Equal(t, int64(180000), repo.items[created.ID].NightlyRate)
}

func TestDeleteUnknownRoom(t *testing.T) {
	svc := NewService(newFakeRoomRepo())
	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), domainrooms.ErrRoomNotFound)
}

package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

func TestUpdateProfile_PartialPatch(t *testing.T) {
	users := &fakeUserRepo{rows: map[string]ports.UserWithCounts{
		"alice": {User: domain.User{ID: "alice", Username: "alice", FullName: "Alice", Bio: "chats"}},
	}}
	svc := NewProfileService(users)
	ctx := context.Background()

	newBio := "chats et chiens"
	user, err := svc.UpdateProfile(ctx, "alice", domain.ProfileUpdate{Bio: &newBio})
	require.NoError(t, err)

	// Seul le champ présent bouge, le reste est intact
	assert.Equal(t, "chats et chiens", user.Bio)
	assert.Equal(t, "Alice", user.FullName)
}

func TestUpdateProfile_Validation(t *testing.T) {
	users := &fakeUserRepo{rows: map[string]ports.UserWithCounts{
		"alice": {User: domain.User{ID: "alice"}},
	}}
	svc := NewProfileService(users)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, "", domain.ProfileUpdate{})
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	tooLong := strings.Repeat("x", 501)
	_, err = svc.UpdateProfile(ctx, "alice", domain.ProfileUpdate{Bio: &tooLong})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateProfile(ctx, "ghost", domain.ProfileUpdate{})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

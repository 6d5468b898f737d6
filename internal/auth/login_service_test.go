package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/database"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/database/testutil"
	apperrors "github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/errors"
)

func TestLoginServiceLogin(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	require.NoError(t, database.EnsureAdminUser(db, "Admin@Auzzie.com", "secret-pass"))

	jwtSvc, err := NewJWTService(JWTConfig{Secret: "test-secret"})
	require.NoError(t, err)
	svc, err := NewLoginService(db, jwtSvc)
	require.NoError(t, err)

	ctx := context.Background()
	result, err := svc.Login(ctx, "admin@auzzie.com", "secret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, "admin@auzzie.com", result.User.Email)

	claims, err := jwtSvc.ValidateAccessToken(result.Token)
	require.NoError(t, err)
	require.Equal(t, result.User.ID, claims.UserID)
}

func TestLoginServiceRejectsBadCredentials(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	require.NoError(t, database.EnsureAdminUser(db, "admin@auzzie.com", "secret-pass"))

	jwtSvc, err := NewJWTService(JWTConfig{Secret: "test-secret"})
	require.NoError(t, err)
	svc, err := NewLoginService(db, jwtSvc)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = svc.Login(ctx, "admin@auzzie.com", "wrong")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@auzzie.com", "secret-pass")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "", "")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

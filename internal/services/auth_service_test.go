package services

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tasktracker/internal/auth"
	"tasktracker/internal/database"
	apierrors "tasktracker/internal/errors"
	"tasktracker/internal/repository"
	"tasktracker/internal/validation"
)

var testTokenSecret = []byte("test-secret")

// openTestDB opens a named shared-cache in-memory database so concurrent
// queries from the listing path see the same schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, database.MigrateWith(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()

	db := openTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), testTokenSecret)
}

func registerInput(email string) validation.RegisterInput {
	return validation.RegisterInput{
		Name:     "Ann",
		Email:    email,
		Password: "longenough1",
	}
}

func TestAuthService_Register(t *testing.T) {
	svc := setupAuthService(t)

	payload, err := svc.Register(registerInput("ann@example.com"))
	require.NoError(t, err)
	require.NotZero(t, payload.User.ID)
	require.Equal(t, "Ann", payload.User.Name)
	require.Equal(t, "ann@example.com", payload.User.Email)
	require.NotEmpty(t, payload.Token)

	claims, err := auth.ParseToken(payload.Token, testTokenSecret)
	require.NoError(t, err)
	userID, err := claims.SubjectUserID()
	require.NoError(t, err)
	require.Equal(t, payload.User.ID, userID)
	require.Equal(t, "ann@example.com", claims.Email)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Register(registerInput("ann@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(registerInput("ann@example.com"))
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Equal(t, "Email already in use", apiErr.Message)
}

func TestAuthService_Login(t *testing.T) {
	svc := setupAuthService(t)

	registered, err := svc.Register(registerInput("ann@example.com"))
	require.NoError(t, err)

	payload, err := svc.Login(validation.LoginInput{
		Email:    "ann@example.com",
		Password: "longenough1",
	})
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, payload.User.ID)

	claims, err := auth.ParseToken(payload.Token, testTokenSecret)
	require.NoError(t, err)
	userID, err := claims.SubjectUserID()
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, userID)
}

func TestAuthService_LoginFailuresAreIdentical(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Register(registerInput("ann@example.com"))
	require.NoError(t, err)

	wrongPassword := func() *apierrors.APIError {
		_, err := svc.Login(validation.LoginInput{Email: "ann@example.com", Password: "not-the-password"})
		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		return apiErr
	}()

	unknownEmail := func() *apierrors.APIError {
		_, err := svc.Login(validation.LoginInput{Email: "nobody@example.com", Password: "not-the-password"})
		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		return apiErr
	}()

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Status)
	require.Equal(t, wrongPassword.Status, unknownEmail.Status)
	require.Equal(t, wrongPassword.Message, unknownEmail.Message)
}

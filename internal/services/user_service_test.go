package services

import (
	"net/http"
	"testing"

	"apptnu_backend/internal/models"
	"apptnu_backend/internal/repositories"
	"apptnu_backend/internal/services/dto"
	"apptnu_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestUserService(db *gorm.DB) UserService {
	return NewUserService(repositories.NewUserRepository(db))
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestGetProfileNotFoundNamesID(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db)

	_, err := svc.GetProfile("missing-id")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	assert.Contains(t, appErr.Message, "missing-id")
}

func TestUpdateUserOnlyTouchesProvidedFields(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "inst@test.ac.id")
	svc := newTestUserService(db)

	updated, err := svc.UpdateUser(user.ID, &dto.AdminUpdateUserRequest{
		UpdateUserRequest: dto.UpdateUserRequest{
			InstitutionName: strPtr("Universitas Baru"),
			CollectionCount: intPtr(2500),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Universitas Baru", updated.InstitutionName)
	assert.Equal(t, 2500, updated.CollectionCount)
	// Untouched fields keep their values.
	assert.Equal(t, user.Email, updated.Email)
	assert.Equal(t, user.HeadLibrarian, updated.HeadLibrarian)
	assert.Equal(t, user.Province, updated.Province)
	assert.Equal(t, user.MembershipStatus, updated.MembershipStatus)
	assert.True(t, updated.UpdatedAt.After(user.UpdatedAt) || updated.UpdatedAt.Equal(user.UpdatedAt))
}

func TestAdminCanSetMembershipStatus(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "inst@test.ac.id")
	svc := newTestUserService(db)

	updated, err := svc.UpdateUser(user.ID, &dto.AdminUpdateUserRequest{
		MembershipStatus: strPtr("active"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MembershipStatusActive, updated.MembershipStatus)
}

func TestDeleteUserCascadesOnlyOwnRows(t *testing.T) {
	db := setupTestDB(t)
	victim := createTestUser(t, db, "victim@test.ac.id")
	keeper := createTestUser(t, db, "keeper@test.ac.id")

	createTestPayment(t, db, victim.ID, "ORDER-1-"+victim.ID, models.PaymentStatusPaid)
	createTestPayment(t, db, keeper.ID, "ORDER-1-"+keeper.ID, models.PaymentStatusPaid)
	require.NoError(t, db.Create(&models.Document{
		UserID:       victim.ID,
		DocumentType: models.DocumentTypeCertificate,
		FileName:     "certificate_v.pdf",
		FilePath:     "/tmp/certificate_v.pdf",
	}).Error)
	require.NoError(t, db.Create(&models.Document{
		UserID:       keeper.ID,
		DocumentType: models.DocumentTypeCertificate,
		FileName:     "certificate_k.pdf",
		FilePath:     "/tmp/certificate_k.pdf",
	}).Error)

	svc := newTestUserService(db)
	require.NoError(t, svc.DeleteUser(victim.ID))

	var users, payments, documents int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Payment{}).Count(&payments)
	db.Model(&models.Document{}).Count(&documents)
	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 1, payments)
	assert.EqualValues(t, 1, documents)

	var remaining models.Payment
	require.NoError(t, db.First(&remaining).Error)
	assert.Equal(t, keeper.ID, remaining.UserID)
}

func TestDeleteUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db)

	err := svc.DeleteUser("missing-id")
	require.Error(t, err)
}

func TestListUsersNoFilterReturnsAll(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "a@test.ac.id")
	createTestUser(t, db, "b@test.ac.id")
	createTestUser(t, db, "c@test.ac.id")
	svc := newTestUserService(db)

	users, err := svc.ListUsers(&dto.UserListQuery{})
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestListUsersZeroLimitShortCircuits(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "a@test.ac.id")
	svc := newTestUserService(db)

	users, err := svc.ListUsers(&dto.UserListQuery{Limit: intPtr(0)})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestListUsersConjunctiveFilter(t *testing.T) {
	db := setupTestDB(t)
	a := createTestUser(t, db, "a@test.ac.id")
	b := createTestUser(t, db, "b@test.ac.id")
	createTestUser(t, db, "c@test.ac.id")

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", a.ID).Updates(map[string]interface{}{
		"membership_status": models.MembershipStatusActive,
		"provinsi":          models.ProvinceJawaBarat,
	}).Error)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
		"membership_status": models.MembershipStatusActive,
	}).Error)

	svc := newTestUserService(db)

	active, err := svc.ListUsers(&dto.UserListQuery{MembershipStatus: "active"})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	// Both conditions must hold at once.
	both, err := svc.ListUsers(&dto.UserListQuery{
		MembershipStatus: "active",
		Province:         "Jawa Barat",
	})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, a.ID, both[0].ID)
}

func TestListUsersLimitAndOffset(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "a@test.ac.id")
	createTestUser(t, db, "b@test.ac.id")
	createTestUser(t, db, "c@test.ac.id")
	svc := newTestUserService(db)

	page, err := svc.ListUsers(&dto.UserListQuery{Limit: intPtr(2)})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := svc.ListUsers(&dto.UserListQuery{Limit: intPtr(2), Offset: intPtr(2)})
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

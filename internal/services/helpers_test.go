package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"apptnu_backend/database"
	"apptnu_backend/internal/models"
	"apptnu_backend/internal/notification"
	"apptnu_backend/internal/payment/midtrans"
	"apptnu_backend/internal/repositories"
	"apptnu_backend/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:            email,
		PasswordHash:     "irrelevant",
		Role:             models.UserRoleMember,
		InstitutionName:  "Universitas Test",
		HeadLibrarian:    "Kepala Test",
		HeadPhone:        "081111111111",
		Agency:           "Yayasan Test",
		PICName:          "PIC Test",
		PICPhone:         "082222222222",
		FullAddress:      "Jl. Test No. 1",
		Province:         models.ProvinceJawaTimur,
		InstitutionEmail: email,
		WebsiteURL:       "https://test.ac.id",
		AutomationURL:    "https://otomasi.test.ac.id",
		RepositoryStatus: models.RepositoryStatusSudah,
		CollectionCount:  1000,
		Accreditation:    models.AccreditationB,
		MembershipType:   models.MembershipTypeNew,
		MembershipStatus: models.MembershipStatusPending,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPayment(t *testing.T, db *gorm.DB, userID, orderID string, status models.PaymentStatus) *models.Payment {
	t.Helper()

	payment := &models.Payment{
		UserID:          userID,
		MidtransOrderID: orderID,
		Amount:          decimal.NewFromInt(130000),
		Status:          status,
	}
	require.NoError(t, db.Create(payment).Error)
	return payment
}

// recordingProvider captures WhatsApp sends for assertions.
type recordingProvider struct {
	mu    sync.Mutex
	sends []struct{ Phone, Message string }
}

func (p *recordingProvider) Send(_ context.Context, phone, message string) notification.SendResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sends = append(p.sends, struct{ Phone, Message string }{phone, message})
	return notification.SendResult{Success: true, MessageID: "test"}
}

func (p *recordingProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sends)
}

func newTestPaymentService(db *gorm.DB, gateway *midtrans.Client, strict bool, provider notification.Provider) PaymentService {
	if provider == nil {
		provider = &recordingProvider{}
	}
	return NewPaymentService(
		db,
		repositories.NewPaymentRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewWebhookEventRepository(db),
		gateway,
		strict,
		NewNotificationService(provider),
	)
}

func newTestDocumentService(t *testing.T, db *gorm.DB) (DocumentService, *storage.LocalStorage) {
	t.Helper()

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	svc := NewDocumentService(
		repositories.NewDocumentRepository(db),
		repositories.NewPaymentRepository(db),
		repositories.NewUserRepository(db),
		store,
		"http://localhost:4000",
		nil,
	)
	return svc, store
}

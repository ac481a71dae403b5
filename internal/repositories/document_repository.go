package repositories

import (
	"errors"

	"apptnu_backend/internal/models"

	"gorm.io/gorm"
)

var ErrDocumentNotFound = errors.New("document not found")

type DocumentRepository interface {
	Create(document *models.Document) error
	FindByID(id string) (*models.Document, error)
	FindByDownloadToken(token string) (*models.Document, error)
	ListByUser(userID string) ([]models.Document, error)
}

type DocumentRepositoryImpl struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &DocumentRepositoryImpl{db: db}
}

func (r *DocumentRepositoryImpl) Create(document *models.Document) error {
	return r.db.Create(document).Error
}

func (r *DocumentRepositoryImpl) FindByID(id string) (*models.Document, error) {
	var document models.Document
	err := r.db.First(&document, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &document, nil
}

func (r *DocumentRepositoryImpl) FindByDownloadToken(token string) (*models.Document, error) {
	var document models.Document
	err := r.db.First(&document, "download_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &document, nil
}

func (r *DocumentRepositoryImpl) ListByUser(userID string) ([]models.Document, error) {
	var documents []models.Document
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&documents).Error
	return documents, err
}

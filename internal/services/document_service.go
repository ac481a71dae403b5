package services

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"apptnu_backend/internal/email"
	"apptnu_backend/internal/logger"
	"apptnu_backend/internal/models"
	"apptnu_backend/internal/repositories"
	"apptnu_backend/internal/services/dto"
	"apptnu_backend/internal/storage"
	"apptnu_backend/pkg/apperrors"

	"github.com/google/uuid"
)

const defaultMimeType = "application/octet-stream"

// UploadDocumentInput is caller-supplied document metadata. The file itself
// is expected to already exist at FilePath.
type UploadDocumentInput struct {
	DocumentType string `json:"document_type" validate:"required,oneof=transfer_proof receipt certificate"`
	FileName     string `json:"file_name" validate:"required"`
	FilePath     string `json:"file_path" validate:"required"`
	FileSize     *int64 `json:"file_size"`
	MimeType     string `json:"mime_type"`
}

// DownloadFile is what the download endpoint streams.
type DownloadFile struct {
	Path     string
	FileName string
	MimeType string
}

type DocumentService interface {
	GenerateCertificate(userID string) (*dto.DocumentResponse, error)
	GenerateReceipt(userID, paymentID string) (*dto.DocumentResponse, error)
	UploadDocument(userID string, input *UploadDocumentInput) (*dto.DocumentResponse, error)
	ListUserDocuments(userID string) ([]models.Document, error)
	ResolveDownload(token string) (*DownloadFile, error)
}

type DocumentServiceImpl struct {
	docRepo     repositories.DocumentRepository
	paymentRepo repositories.PaymentRepository
	userRepo    repositories.UserRepository
	store       storage.Storage
	baseURL     string
	mailer      email.Sender // nil when SMTP is not configured
}

func NewDocumentService(
	docRepo repositories.DocumentRepository,
	paymentRepo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
	store storage.Storage,
	baseURL string,
	mailer email.Sender,
) DocumentService {
	return &DocumentServiceImpl{
		docRepo:     docRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		store:       store,
		baseURL:     baseURL,
		mailer:      mailer,
	}
}

// GenerateCertificate renders the membership certificate PDF and issues a
// bearer download token for it.
func (s *DocumentServiceImpl) GenerateCertificate(userID string) (*dto.DocumentResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound(userID)
		}
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	pdf := renderSimplePDF("Sertifikat Keanggotaan APPTNU", []string{
		fmt.Sprintf("Institusi: %s", user.InstitutionName),
		fmt.Sprintf("Kepala Perpustakaan: %s", user.HeadLibrarian),
		fmt.Sprintf("Provinsi: %s", user.Province),
		fmt.Sprintf("Jenis Keanggotaan: %s", user.MembershipType),
		fmt.Sprintf("Status Keanggotaan: %s", user.MembershipStatus),
		fmt.Sprintf("Diterbitkan: %s", now.Format("2 January 2006")),
	})

	fileName := fmt.Sprintf("certificate_%s_%d.pdf", userID, now.UnixMilli())
	token := fmt.Sprintf("token_%d_%s", now.UnixMilli(), randomHex(16))

	return s.storeDocument(user, models.DocumentTypeCertificate, fileName, token, pdf)
}

// GenerateReceipt issues a payment receipt. The payment must belong to the
// user and already be settled; one conjunctive query enforces both.
func (s *DocumentServiceImpl) GenerateReceipt(userID, paymentID string) (*dto.DocumentResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound(userID)
		}
		return nil, apperrors.InternalError(err)
	}

	payment, err := s.paymentRepo.FindPaidByIDAndUser(paymentID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.ErrPaymentNotPaid
		}
		return nil, apperrors.InternalError(err)
	}

	settledAt := "-"
	if payment.SettlementTime != nil {
		settledAt = payment.SettlementTime.Format("2 January 2006 15:04")
	}

	now := time.Now()
	pdf := renderSimplePDF("Kwitansi Pembayaran Keanggotaan", []string{
		fmt.Sprintf("Institusi: %s", user.InstitutionName),
		fmt.Sprintf("Order ID: %s", payment.MidtransOrderID),
		fmt.Sprintf("Jumlah: Rp %s", payment.Amount.StringFixed(2)),
		fmt.Sprintf("Tanggal Pelunasan: %s", settledAt),
	})

	fileName := fmt.Sprintf("receipt_%s_%s_%d.pdf", userID, paymentID, now.UnixMilli())
	token := uuid.NewString()

	return s.storeDocument(user, models.DocumentTypeReceipt, fileName, token, pdf)
}

// UploadDocument registers caller-supplied metadata, e.g. a manual transfer
// proof placed on disk out of band.
func (s *DocumentServiceImpl) UploadDocument(userID string, input *UploadDocumentInput) (*dto.DocumentResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound(userID)
		}
		return nil, apperrors.InternalError(err)
	}

	docType := models.DocumentType(input.DocumentType)
	switch docType {
	case models.DocumentTypeTransferProof, models.DocumentTypeReceipt, models.DocumentTypeCertificate:
	default:
		return nil, apperrors.ErrUnsupportedDocumentType
	}

	token := randomHex(32)
	mime := input.MimeType
	var mimePtr *string
	if mime != "" {
		mimePtr = &mime
	}

	document := &models.Document{
		UserID:        user.ID,
		DocumentType:  docType,
		FileName:      input.FileName,
		FilePath:      input.FilePath,
		FileSize:      input.FileSize,
		MimeType:      mimePtr,
		DownloadToken: &token,
	}
	if err := s.docRepo.Create(document); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.DocumentResponse{
		Document:    document,
		DownloadURL: s.downloadURL(token),
	}, nil
}

func (s *DocumentServiceImpl) ListUserDocuments(userID string) ([]models.Document, error) {
	documents, err := s.docRepo.ListByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return documents, nil
}

// ResolveDownload turns a bearer token into a file to stream. A missing row
// and a missing file are distinct errors: the first means the token is bad,
// the second means the artifact was lost after issuance.
func (s *DocumentServiceImpl) ResolveDownload(token string) (*DownloadFile, error) {
	document, err := s.docRepo.FindByDownloadToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return nil, apperrors.ErrInvalidDownloadToken
		}
		return nil, apperrors.InternalError(err)
	}

	if !s.store.Exists(document.FilePath) {
		return nil, apperrors.ErrDocumentFileMissing
	}

	mime := defaultMimeType
	if document.MimeType != nil && *document.MimeType != "" {
		mime = *document.MimeType
	}

	return &DownloadFile{
		Path:     document.FilePath,
		FileName: document.FileName,
		MimeType: mime,
	}, nil
}

func (s *DocumentServiceImpl) storeDocument(user *models.User, docType models.DocumentType, fileName, token string, content []byte) (*dto.DocumentResponse, error) {
	path, size, err := s.store.Save(fileName, bytes.NewReader(content))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	mime := "application/pdf"
	document := &models.Document{
		UserID:        user.ID,
		DocumentType:  docType,
		FileName:      fileName,
		FilePath:      path,
		FileSize:      &size,
		MimeType:      &mime,
		DownloadToken: &token,
	}
	if err := s.docRepo.Create(document); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url := s.downloadURL(token)
	if s.mailer != nil && user.Email != "" {
		go s.emailDownloadLink(user.Email, document, url)
	}

	return &dto.DocumentResponse{Document: document, DownloadURL: url}, nil
}

func (s *DocumentServiceImpl) emailDownloadLink(to string, document *models.Document, url string) {
	body := fmt.Sprintf(
		"<p>Dokumen <b>%s</b> Anda sudah tersedia.</p><p><a href=\"%s\">Unduh dokumen</a></p>",
		document.FileName, url,
	)
	if err := s.mailer.Send(to, "Dokumen APPTNU tersedia", body); err != nil {
		logger.WithError(err).Warn("Download link email failed", "document_id", document.ID)
	}
}

func (s *DocumentServiceImpl) downloadURL(token string) string {
	if s.baseURL == "" {
		return "/api/v1/documents/download/" + token
	}
	return s.baseURL + "/api/v1/documents/download/" + token
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b)
}

package models

type UserRole string
type MembershipStatus string
type PaymentStatus string
type DocumentType string
type Province string
type RepositoryStatus string
type AccreditationStatus string
type MembershipType string

const (
	UserRoleMember UserRole = "member"
	UserRoleAdmin  UserRole = "admin"

	MembershipStatusPending  MembershipStatus = "pending"
	MembershipStatusActive   MembershipStatus = "active"
	MembershipStatusExpired  MembershipStatus = "expired"
	MembershipStatusInactive MembershipStatus = "inactive"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
	PaymentStatusExpired PaymentStatus = "expired"

	DocumentTypeTransferProof DocumentType = "transfer_proof"
	DocumentTypeReceipt       DocumentType = "receipt"
	DocumentTypeCertificate   DocumentType = "certificate"

	ProvinceJawaTimur  Province = "Jawa Timur"
	ProvinceJawaBarat  Province = "Jawa Barat"
	ProvinceJawaTengah Province = "Jawa Tengah"

	RepositoryStatusBelum RepositoryStatus = "Belum"
	RepositoryStatusSudah RepositoryStatus = "Sudah"

	AccreditationA    AccreditationStatus = "Akreditasi A"
	AccreditationB    AccreditationStatus = "Akreditasi B"
	AccreditationNone AccreditationStatus = "Belum Akreditasi"

	MembershipTypeNew     MembershipType = "Pendaftaran Baru"
	MembershipTypeRenewal MembershipType = "Perpanjangan"
)

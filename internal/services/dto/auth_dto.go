package dto

import "apptnu_backend/internal/models"

// RegisterRequest carries the full institutional registration form. JSON
// field names keep the Indonesian vocabulary of the original forms.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`

	InstitutionName  string `json:"nama_perguruan_tinggi" validate:"required"`
	HeadLibrarian    string `json:"nama_kepala_perpustakaan" validate:"required"`
	HeadPhone        string `json:"no_hp_kepala" validate:"required"`
	Agency           string `json:"instansi" validate:"required"`
	PICName          string `json:"nama_pic" validate:"required"`
	PICPhone         string `json:"no_hp_pic" validate:"required"`
	FullAddress      string `json:"alamat_lengkap" validate:"required"`
	Province         string `json:"provinsi" validate:"required,oneof='Jawa Timur' 'Jawa Barat' 'Jawa Tengah'"`
	InstitutionEmail string `json:"email_institusi" validate:"required,email"`
	WebsiteURL       string `json:"url_website" validate:"required,url"`
	AutomationURL    string `json:"url_otomasi" validate:"required,url"`
	RepositoryStatus string `json:"repository_status" validate:"required,oneof=Belum Sudah"`
	CollectionCount  int    `json:"jumlah_koleksi" validate:"gte=0"`
	Accreditation    string `json:"status_akreditasi" validate:"required,oneof='Akreditasi A' 'Akreditasi B' 'Belum Akreditasi'"`
	MembershipType   string `json:"jenis_keanggotaan" validate:"required,oneof='Pendaftaran Baru' 'Perpanjangan'"`
}

// LoginRequest is the credential pair.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse returns the signed token plus the public user view.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

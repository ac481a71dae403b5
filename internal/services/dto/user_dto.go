package dto

// UpdateUserRequest is a partial profile update. Absent fields stay
// untouched; role and password never change through this path.
type UpdateUserRequest struct {
	Email            *string `json:"email" validate:"omitempty,email"`
	InstitutionName  *string `json:"nama_perguruan_tinggi" validate:"omitempty,min=1"`
	HeadLibrarian    *string `json:"nama_kepala_perpustakaan" validate:"omitempty,min=1"`
	HeadPhone        *string `json:"no_hp_kepala" validate:"omitempty,min=1"`
	Agency           *string `json:"instansi" validate:"omitempty,min=1"`
	PICName          *string `json:"nama_pic" validate:"omitempty,min=1"`
	PICPhone         *string `json:"no_hp_pic" validate:"omitempty,min=1"`
	FullAddress      *string `json:"alamat_lengkap" validate:"omitempty,min=1"`
	Province         *string `json:"provinsi" validate:"omitempty,oneof='Jawa Timur' 'Jawa Barat' 'Jawa Tengah'"`
	InstitutionEmail *string `json:"email_institusi" validate:"omitempty,email"`
	WebsiteURL       *string `json:"url_website" validate:"omitempty,url"`
	AutomationURL    *string `json:"url_otomasi" validate:"omitempty,url"`
	RepositoryStatus *string `json:"repository_status" validate:"omitempty,oneof=Belum Sudah"`
	CollectionCount  *int    `json:"jumlah_koleksi" validate:"omitempty,gte=0"`
	Accreditation    *string `json:"status_akreditasi" validate:"omitempty,oneof='Akreditasi A' 'Akreditasi B' 'Belum Akreditasi'"`
	MembershipType   *string `json:"jenis_keanggotaan" validate:"omitempty,oneof='Pendaftaran Baru' 'Perpanjangan'"`
}

// AdminUpdateUserRequest extends the member update with membership status,
// which only admins may set.
type AdminUpdateUserRequest struct {
	UpdateUserRequest
	MembershipStatus *string `json:"membership_status" validate:"omitempty,oneof=pending active expired inactive"`
}

// UserListQuery is the admin listing filter, bound from query params.
type UserListQuery struct {
	MembershipStatus string `form:"membership_status" validate:"omitempty,oneof=pending active expired inactive"`
	Province         string `form:"provinsi" validate:"omitempty,oneof='Jawa Timur' 'Jawa Barat' 'Jawa Tengah'"`
	MembershipType   string `form:"jenis_keanggotaan" validate:"omitempty,oneof='Pendaftaran Baru' 'Perpanjangan'"`
	Limit            *int   `form:"limit" validate:"omitempty,gte=0"`
	Offset           *int   `form:"offset" validate:"omitempty,gte=0"`
}

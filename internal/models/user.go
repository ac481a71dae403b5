package models

// User is an institutional member of the association. Column names keep the
// original Indonesian field vocabulary used by the registration forms.
type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`

	InstitutionName  string              `gorm:"column:nama_perguruan_tinggi;not null" json:"nama_perguruan_tinggi"`
	HeadLibrarian    string              `gorm:"column:nama_kepala_perpustakaan;not null" json:"nama_kepala_perpustakaan"`
	HeadPhone        string              `gorm:"column:no_hp_kepala;type:varchar(20);not null" json:"no_hp_kepala"`
	Agency           string              `gorm:"column:instansi;not null" json:"instansi"`
	PICName          string              `gorm:"column:nama_pic;not null" json:"nama_pic"`
	PICPhone         string              `gorm:"column:no_hp_pic;type:varchar(20);not null" json:"no_hp_pic"`
	FullAddress      string              `gorm:"column:alamat_lengkap;not null" json:"alamat_lengkap"`
	Province         Province            `gorm:"column:provinsi;type:varchar(30);not null" json:"provinsi"`
	InstitutionEmail string              `gorm:"column:email_institusi;not null" json:"email_institusi"`
	WebsiteURL       string              `gorm:"column:url_website;not null" json:"url_website"`
	AutomationURL    string              `gorm:"column:url_otomasi;not null" json:"url_otomasi"`
	RepositoryStatus RepositoryStatus    `gorm:"column:repository_status;type:varchar(10);not null" json:"repository_status"`
	CollectionCount  int                 `gorm:"column:jumlah_koleksi;not null" json:"jumlah_koleksi"`
	Accreditation    AccreditationStatus `gorm:"column:status_akreditasi;type:varchar(30);not null" json:"status_akreditasi"`
	MembershipType   MembershipType      `gorm:"column:jenis_keanggotaan;type:varchar(30);not null" json:"jenis_keanggotaan"`

	MembershipStatus MembershipStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"membership_status"`

	// Relations
	Payments  []Payment  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Documents []Document `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

package models

// Document is artifact metadata for a generated or uploaded file. The
// download token is both the lookup key and the whole authorization model.
type Document struct {
	BaseModel
	UserID        string       `gorm:"not null;index" json:"user_id"`
	DocumentType  DocumentType `gorm:"type:varchar(20);not null" json:"document_type"`
	FileName      string       `gorm:"type:varchar(255);not null" json:"file_name"`
	FilePath      string       `gorm:"not null" json:"file_path"`
	FileSize      *int64       `json:"file_size"`
	MimeType      *string      `gorm:"type:varchar(100)" json:"mime_type"`
	DownloadToken *string      `gorm:"type:varchar(255);index" json:"download_token"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

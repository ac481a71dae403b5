package repositories

import (
	"errors"
	"time"

	"apptnu_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserFilter is a conjunctive filter for admin listings. Nil/empty fields
// are not applied. A Limit of zero short-circuits to an empty result.
type UserFilter struct {
	MembershipStatus models.MembershipStatus
	Province         models.Province
	MembershipType   models.MembershipType
	Limit            *int
	Offset           *int
}

// UserUpdate is a partial update: nil means "not provided", a pointer value
// means "set to this". Avoids the ambiguity between unset and cleared.
type UserUpdate struct {
	Email            *string
	InstitutionName  *string
	HeadLibrarian    *string
	HeadPhone        *string
	Agency           *string
	PICName          *string
	PICPhone         *string
	FullAddress      *string
	Province         *models.Province
	InstitutionEmail *string
	WebsiteURL       *string
	AutomationURL    *string
	RepositoryStatus *models.RepositoryStatus
	CollectionCount  *int
	Accreditation    *models.AccreditationStatus
	MembershipType   *models.MembershipType
	MembershipStatus *models.MembershipStatus
}

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	UpdatePartial(userID string, upd UserUpdate) (*models.User, error)
	UpdateMembershipStatus(userID string, status models.MembershipStatus) error
	Delete(userID string) error
	FindWithFilter(filter UserFilter) ([]models.User, error)
	CountAll() (int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	// Check if user already exists
	var existing models.User
	if err := r.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	return r.db.Create(user).Error
}

// UpdatePartial writes only the provided fields and bumps updated_at.
func (r *UserRepositoryImpl) UpdatePartial(userID string, upd UserUpdate) (*models.User, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}

	if upd.Email != nil {
		updates["email"] = *upd.Email
	}
	if upd.InstitutionName != nil {
		updates["nama_perguruan_tinggi"] = *upd.InstitutionName
	}
	if upd.HeadLibrarian != nil {
		updates["nama_kepala_perpustakaan"] = *upd.HeadLibrarian
	}
	if upd.HeadPhone != nil {
		updates["no_hp_kepala"] = *upd.HeadPhone
	}
	if upd.Agency != nil {
		updates["instansi"] = *upd.Agency
	}
	if upd.PICName != nil {
		updates["nama_pic"] = *upd.PICName
	}
	if upd.PICPhone != nil {
		updates["no_hp_pic"] = *upd.PICPhone
	}
	if upd.FullAddress != nil {
		updates["alamat_lengkap"] = *upd.FullAddress
	}
	if upd.Province != nil {
		updates["provinsi"] = *upd.Province
	}
	if upd.InstitutionEmail != nil {
		updates["email_institusi"] = *upd.InstitutionEmail
	}
	if upd.WebsiteURL != nil {
		updates["url_website"] = *upd.WebsiteURL
	}
	if upd.AutomationURL != nil {
		updates["url_otomasi"] = *upd.AutomationURL
	}
	if upd.RepositoryStatus != nil {
		updates["repository_status"] = *upd.RepositoryStatus
	}
	if upd.CollectionCount != nil {
		updates["jumlah_koleksi"] = *upd.CollectionCount
	}
	if upd.Accreditation != nil {
		updates["status_akreditasi"] = *upd.Accreditation
	}
	if upd.MembershipType != nil {
		updates["jenis_keanggotaan"] = *upd.MembershipType
	}
	if upd.MembershipStatus != nil {
		updates["membership_status"] = *upd.MembershipStatus
	}

	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	return r.FindByID(userID)
}

func (r *UserRepositoryImpl) UpdateMembershipStatus(userID string, status models.MembershipStatus) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"membership_status": status,
		"updated_at":        time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes the user and cascades to their payments and documents in
// one transaction. Rows of other users are untouched.
func (r *UserRepositoryImpl) Delete(userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Document{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", userID).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

func (r *UserRepositoryImpl) FindWithFilter(filter UserFilter) ([]models.User, error) {
	// Zero limit never hits the database
	if filter.Limit != nil && *filter.Limit == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	query := r.db.Model(&models.User{})

	if filter.MembershipStatus != "" {
		query = query.Where("membership_status = ?", filter.MembershipStatus)
	}
	if filter.Province != "" {
		query = query.Where("provinsi = ?", filter.Province)
	}
	if filter.MembershipType != "" {
		query = query.Where("jenis_keanggotaan = ?", filter.MembershipType)
	}

	if filter.Limit != nil && *filter.Limit > 0 {
		query = query.Limit(*filter.Limit)
	}
	if filter.Offset != nil {
		query = query.Offset(*filter.Offset)
	}

	err := query.Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

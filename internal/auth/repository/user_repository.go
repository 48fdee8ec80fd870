package repository

import (
	"errors"
	"time"

	authdomain "friend-scheduler-backend/internal/auth/domain"

	"gorm.io/gorm"
)

// ErrIdentityConflict is returned when concurrent first-time logins for the
// same email keep colliding on the unique index even after a retry.
var ErrIdentityConflict = errors.New("identity conflict")

// UserRepository defines the interface for user data access
type UserRepository interface {
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id uint) (*authdomain.User, error)
	Update(user *authdomain.User) error

	// UpsertIdentity atomically resolves an OAuth login to a user row:
	// insert on first login for the email, conditional update afterwards.
	UpsertIdentity(login *authdomain.OAuthLogin) (*authdomain.User, error)

	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindRefreshToken(token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(token string) error
	DeleteRefreshTokensByUser(userID uint) error
}

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) FindByEmail(email string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(id uint) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *authdomain.User) error {
	user.UpdatedAt = time.Now()
	return r.db.Save(user).Error
}

func (r *userRepository) UpsertIdentity(login *authdomain.OAuthLogin) (*authdomain.User, error) {
	user, err := r.upsertIdentityOnce(login)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost an insert race: the row exists now, so a second pass takes
		// the update branch.
		user, err = r.upsertIdentityOnce(login)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrIdentityConflict
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) upsertIdentityOnce(login *authdomain.OAuthLogin) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email = ?", login.Email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = authdomain.User{
				Email:             login.Email,
				Name:              login.Name,
				OAuthProvider:     login.Provider,
				OAuthID:           login.OAuthID,
				AccessToken:       login.AccessToken,
				RefreshToken:      login.RefreshToken,
				ProfilePictureURL: login.ProfilePictureURL,
				CreatedAt:         time.Now(),
				UpdatedAt:         time.Now(),
			}
			return tx.Create(&user).Error
		}
		if err != nil {
			return err
		}

		user.OAuthProvider = login.Provider
		user.OAuthID = login.OAuthID
		user.AccessToken = login.AccessToken
		user.RefreshToken = login.RefreshToken
		if login.ProfilePictureURL != "" {
			user.ProfilePictureURL = login.ProfilePictureURL
		}
		if login.Name != "" {
			user.Name = login.Name
		}
		user.UpdatedAt = time.Now()
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) SaveRefreshToken(token *authdomain.RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *userRepository) FindRefreshToken(token string) (*authdomain.RefreshToken, error) {
	var refreshToken authdomain.RefreshToken
	err := r.db.Where("token = ?", token).First(&refreshToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &refreshToken, nil
}

func (r *userRepository) DeleteRefreshToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&authdomain.RefreshToken{}).Error
}

func (r *userRepository) DeleteRefreshTokensByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&authdomain.RefreshToken{}).Error
}

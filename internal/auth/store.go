package auth

import (
	"errors"

	"github.com/TeeCanvas/TC-Backend/internal/db"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the Postgres SQLSTATE for duplicate-key errors.
const uniqueViolation = "23505"

var ErrUserExists = errors.New("user with this email or username already exists")

func FindUserByEmailOrUsername(email, username string) (*User, error) {
	var user User
	err := db.DB.Where("email = ? OR username = ?", email, username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByEmail(email string) (*User, error) {
	var user User
	err := db.DB.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts the user row. The unique indexes on email and username
// back up the handler's pre-check: a concurrent duplicate insert surfaces
// here as ErrUserExists instead of a raw storage error.
func CreateUser(user *User) error {
	err := db.DB.Create(user).Error
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrUserExists
	}
	return err
}

package designs

import (
	"github.com/TeeCanvas/TC-Backend/internal/db"
	"github.com/google/uuid"
)

// Store is the persistence surface the orchestrator needs; tests substitute
// an in-memory fake.
type Store interface {
	CreateDesign(userID, frontURL, backURL, color string) (*Design, error)
	ListDesignsByUser(userID string) ([]Design, error)
}

// GormStore backs Store with the shared gorm connection.
type GormStore struct{}

func (GormStore) CreateDesign(userID, frontURL, backURL, color string) (*Design, error) {
	design := Design{
		ID:          uuid.NewString(),
		UserID:      userID,
		FrontImgURL: frontURL,
		BackImgURL:  backURL,
		Color:       color,
	}
	if err := db.DB.Create(&design).Error; err != nil {
		return nil, err
	}
	return &design, nil
}

func (GormStore) ListDesignsByUser(userID string) ([]Design, error) {
	var list []Design
	err := db.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

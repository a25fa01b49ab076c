package designs

import "time"

// Design rows are written once per successful generation call and never
// mutated. user_id is referential only; no cascade behavior is attached.
type Design struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"column:user_id;not null;index" json:"user_id"`
	FrontImgURL string    `gorm:"column:front_img_url;not null" json:"front_img_url"`
	BackImgURL  string    `gorm:"column:back_img_url;not null" json:"back_img_url"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Design) TableName() string { return "app_designs.designs" }

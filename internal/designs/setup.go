package designs

import (
	"log"

	"github.com/TeeCanvas/TC-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "app_designs"); err != nil {
		log.Fatal("Failed to ensure schema app_designs: ", err)
	}

	if err := db.DB.AutoMigrate(&Design{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}

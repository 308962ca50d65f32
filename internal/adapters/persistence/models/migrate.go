package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the exchange uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Member{},
		&RefreshToken{},
		&Account{},
		&LedgerEntry{},
		&ProfessionStandard{},
		&StandardHistory{},
		&Transaction{},
		&Service{},
	)
}

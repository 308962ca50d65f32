package config

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"isuhub/internal/adapters/persistence/models"
	"isuhub/internal/core/domain"
	"isuhub/internal/pkg/password"
)

// SeedDefaults provisions the data the exchange cannot run without: one
// active standard per profession type (recorded with a created history row)
// and a bootstrap admin with its ISU account. Seeding is idempotent.
func SeedDefaults(db *gorm.DB) error {
	if err := seedProfessionStandards(db); err != nil {
		return err
	}
	return seedAdmin(db)
}

func seedProfessionStandards(db *gorm.DB) error {
	for _, professionType := range domain.AllProfessionTypes() {
		var count int64
		if err := db.Model(&models.ProfessionStandard{}).
			Where("profession_type = ?", string(professionType)).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		standard := domain.NewProfessionStandard(
			professionType,
			professionType.DefaultRate(),
			professionType.DisplayName()+" default standard rate",
			"system",
		)
		if err := db.Create(models.ProfessionStandardFromDomain(standard)).Error; err != nil {
			return err
		}

		rate := standard.Rate
		history := domain.NewStandardHistory(standard.ID, domain.StandardCreated, nil, &rate, "seeded default standard", "system")
		if err := db.Create(models.StandardHistoryFromDomain(history)).Error; err != nil {
			return err
		}

		log.Printf("seeded profession standard: %s (%s)", professionType, standard.Rate)
	}
	return nil
}

func seedAdmin(db *gorm.DB) error {
	adminEmail := getEnv("ADMIN_EMAIL", "admin@isuhub.local")

	var count int64
	if err := db.Model(&models.Member{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminPassword := getEnv("ADMIN_PASSWORD", "")
	if adminPassword == "" {
		adminPassword = uuid.NewString()
		log.Printf("generated admin password: %s (set ADMIN_PASSWORD to override)", adminPassword)
	}

	hash, err := password.Hash(adminPassword)
	if err != nil {
		return err
	}

	admin := domain.NewMember(adminEmail, getEnv("ADMIN_USERNAME", "admin"), hash)
	admin.PromoteToAdmin()
	if err := db.Create(models.MemberFromDomain(admin)).Error; err != nil {
		return err
	}

	account := domain.NewAccount(admin.ID, domain.ZeroISU())
	if err := db.Create(models.AccountFromDomain(account)).Error; err != nil {
		return err
	}

	log.Printf("seeded admin member: %s", admin.Username)
	return nil
}

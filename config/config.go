package config

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rainadr/veripass/internal/models"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

// SigningConfig carries the Ed25519 key material for ticket tokens,
// hex-encoded. The seed stays on the issuing server; the public key
// is distributed to inspector devices for offline verification.
type SigningConfig struct {
	PrivateKeySeed string
	PublicKey      string
}

func LoadSigningConfig() (*SigningConfig, error) {
	cfg := &SigningConfig{
		PrivateKeySeed: os.Getenv("TICKET_SIGNING_SEED"),
		PublicKey:      os.Getenv("TICKET_PUBLIC_KEY"),
	}
	if cfg.PrivateKeySeed == "" || cfg.PublicKey == "" {
		return nil, fmt.Errorf("TICKET_SIGNING_SEED and TICKET_PUBLIC_KEY must be set")
	}
	return cfg, nil
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Organization{},
		&models.OrganizationMember{},
		&models.Event{},
		&models.Ticket{},
		&models.InspectionRecord{},
	)
	if err != nil {
		return nil, err
	}

	seedRoles(db)

	return db, nil
}

func seedRoles(db *gorm.DB) {
	roles := []models.Role{
		{Name: "organizer"},
		{Name: "inspector"},
		{Name: "attendee"},
		{Name: "admin"},
	}

	for _, role := range roles {
		var existingRole models.Role
		result := db.Where("name = ?", role.Name).First(&existingRole)
		if result.Error != nil {
			db.Create(&role)
		}
	}
}

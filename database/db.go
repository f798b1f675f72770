package database

import (
	"fmt"
	"os"

	"room-rescue/logger"
	"room-rescue/models/complaint"
	"room-rescue/models/log"
	"room-rescue/models/otp"
	"room-rescue/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	username := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, username, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models
func autoMigrate() error {
	// Stage 1: core foundation models
	stage1Models := []interface{}{
		&user.User{},
		&otp.OTP{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: models referencing stage 1 by id
	stage2Models := []interface{}{
		&complaint.Complaint{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Remaining models
	remainingModels := []interface{}{
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// User indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_allusers_email ON allusers(email)").Error; err != nil {
		return fmt.Errorf("failed to create user email index: %w", err)
	}

	// OTP indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_otp_store_user_email ON otp_store(user_email)").Error; err != nil {
		return fmt.Errorf("failed to create otp user_email index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_otp_store_created_at ON otp_store(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create otp created_at index: %w", err)
	}

	// Complaint indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_complaints_student_id ON complaints(student_id)").Error; err != nil {
		return fmt.Errorf("failed to create complaint student_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_complaints_staff_id ON complaints(staff_id)").Error; err != nil {
		return fmt.Errorf("failed to create complaint staff_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_complaints_status ON complaints(status)").Error; err != nil {
		return fmt.Errorf("failed to create complaint status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_complaints_created_at ON complaints(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create complaint created_at index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

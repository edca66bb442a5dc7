package db

import (
	"log"
	"os"

	"campuswell/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=campuswell port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedResources(DB)
}

// Migrate creates the canonical schema. Legacy installs carried several
// drifting table sets for the same entities; only this schema is supported.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.AdminGrant{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Journal{},
		&models.MoodEntry{},
		&models.WellnessResource{},
	)
}

func seedResources(gdb *gorm.DB) {
	var count int64
	gdb.Model(&models.WellnessResource{}).Count(&count)
	if count > 0 {
		log.Println("Wellness resources already seeded, skipping")
		return
	}

	resources := []models.WellnessResource{
		{Name: "Campus Counseling Center", Type: models.ResourceService, Description: "Free one-on-one counseling for enrolled students.", Phone: "555-0100"},
		{Name: "Crisis Text Line", Type: models.ResourceHotline, Description: "24/7 support by text.", Phone: "741741"},
		{Name: "Student Wellness Hotline", Type: models.ResourceHotline, Description: "After-hours phone support.", Phone: "555-0199"},
		{Name: "Managing Exam Stress", Type: models.ResourceArticle, Description: "Practical techniques for staying grounded during finals.", URL: "https://example.edu/wellness/exam-stress"},
		{Name: "Five Minute Breathing Exercise", Type: models.ResourceVideo, Description: "Guided breathing session.", URL: "https://example.edu/wellness/breathing"},
	}

	for _, r := range resources {
		if err := gdb.Create(&r).Error; err != nil {
			log.Printf("Failed to seed resource %s: %v", r.Name, err)
		}
	}
	log.Println("Initial wellness resources created")
}

package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"campusmarket/internal/config"
	"campusmarket/internal/db"
	"campusmarket/internal/model"
	"campusmarket/internal/repository"
)

func strPtr(s string) *string {
	return &s
}

func mustHash(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	return string(hashed)
}

func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load()
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Listing{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Clear existing data; listings first because of the seller reference.
	if err := gormDB.Exec("DELETE FROM listings").Error; err != nil {
		log.Fatalf("Failed to clear listings: %v", err)
	}
	if err := gormDB.Exec("DELETE FROM users").Error; err != nil {
		log.Fatalf("Failed to clear users: %v", err)
	}
	log.Println("Cleared existing data")

	users := []model.User{
		{
			Email:     "alice@student.edu",
			Password:  mustHash("password123"),
			FirstName: "Alice",
			LastName:  "Johnson",
			Phone:     strPtr("+1234567890"),
			Role:      model.RoleUser,
			IsActive:  true,
		},
		{
			Email:     "bob@student.edu",
			Password:  mustHash("password123"),
			FirstName: "Bob",
			LastName:  "Smith",
			Phone:     strPtr("+0987654321"),
			Role:      model.RoleUser,
			IsActive:  true,
		},
		{
			Email:     "admin@student.edu",
			Password:  mustHash("admin123"),
			FirstName: "Admin",
			LastName:  "User",
			Role:      model.RoleAdmin,
			IsActive:  true,
		},
	}

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()
	for i := range users {
		if err := userRepo.Create(ctx, &users[i]); err != nil {
			log.Fatalf("Failed to create user %s: %v", users[i].Email, err)
		}
	}
	log.Printf("Created %d users", len(users))

	listings := []model.Listing{
		{
			Title:       "Introduction to Computer Science Textbook",
			Description: "CS101 textbook in excellent condition. Barely used, no highlighting or writing. Perfect for incoming freshmen!",
			Price:       decimal.NewFromFloat(45.00),
			Condition:   model.ConditionLikeNew,
			Category:    model.CategoryTextbooks,
			Images:      datatypes.NewJSONSlice([]string{"https://example.com/cs-book.jpg"}),
			IsAvailable: true,
			SellerID:    users[0].ID,
		},
		{
			Title:       "Scientific Calculator TI-84",
			Description: "Texas Instruments TI-84 Plus graphing calculator. Works perfectly, comes with cover.",
			Price:       decimal.NewFromFloat(75.50),
			Condition:   model.ConditionGood,
			Category:    model.CategoryElectronics,
			Images:      datatypes.NewJSONSlice([]string{"https://example.com/calculator.jpg"}),
			IsAvailable: true,
			SellerID:    users[0].ID,
		},
		{
			Title:       "Desk Lamp - Adjustable LED",
			Description: "Modern LED desk lamp with adjustable brightness and color temperature. Great for late-night studying!",
			Price:       decimal.NewFromFloat(25.00),
			Condition:   model.ConditionNew,
			Category:    model.CategoryFurniture,
			Images:      datatypes.NewJSONSlice([]string{}),
			IsAvailable: true,
			SellerID:    users[1].ID,
		},
		{
			Title:       "Organic Chemistry Lab Manual",
			Description: "CHEM 201 lab manual. Some wear but all pages intact. Required for sophomore chemistry.",
			Price:       decimal.NewFromFloat(30.00),
			Condition:   model.ConditionFair,
			Category:    model.CategoryTextbooks,
			Images:      datatypes.NewJSONSlice([]string{"https://example.com/chem-manual.jpg"}),
			IsAvailable: true,
			SellerID:    users[1].ID,
		},
		{
			Title:       "Laptop Stand - Aluminum",
			Description: "Portable aluminum laptop stand. Helps with ergonomics and posture. Folds flat for easy transport.",
			Price:       decimal.NewFromFloat(20.00),
			Condition:   model.ConditionUsed,
			Category:    model.CategoryElectronics,
			Images:      datatypes.NewJSONSlice([]string{"https://example.com/laptop-stand.jpg"}),
			IsAvailable: true,
			SellerID:    users[0].ID,
		},
		{
			Title:       "College Hoodie - Size M",
			Description: "Official college hoodie, size medium. Worn a few times, still in great shape.",
			Price:       decimal.NewFromFloat(15.00),
			Condition:   model.ConditionGood,
			Category:    model.CategoryClothing,
			Images:      datatypes.NewJSONSlice([]string{}),
			IsAvailable: true,
			SellerID:    users[1].ID,
		},
	}

	listingRepo := repository.NewListingRepository(gormDB)
	for i := range listings {
		if err := listingRepo.Create(ctx, &listings[i]); err != nil {
			log.Fatalf("Failed to create listing %q: %v", listings[i].Title, err)
		}
	}
	log.Printf("Created %d listings", len(listings))

	log.Println("Seed completed successfully!")
}

package main

import (
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"berrystore/internal/database"
	"berrystore/internal/domain"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "berrystore.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("running migrations...")
	if err := database.Migrate(db, &domain.User{}, &domain.Product{}, &domain.Activity{}); err != nil {
		log.Fatal("migration failed:", err)
	}

	log.Println("cleaning old data...")
	db.Exec("DELETE FROM activities")
	db.Exec("DELETE FROM products")
	db.Exec("DELETE FROM users")

	log.Println("creating admin user...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		ID:           uuid.NewString(),
		Email:        "admin@berrystore.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("create admin:", err)
	}

	log.Println("creating sample products...")
	products := []domain.Product{
		{
			ID:             uuid.NewString(),
			ProductID:      "SPW001",
			Name:           "Trail Running Shirt",
			Category:       "Sportswear",
			Price:          39.99,
			Description:    "Lightweight breathable running shirt.",
			Tags:           []string{"running", "summer"},
			InventoryCount: 120,
			Brand:          "Berry Athletics",
			Material:       "polyester",
			AvailableSizes: []string{"S", "M", "L", "XL"},
		},
		{
			ID:             uuid.NewString(),
			ProductID:      "SFW002",
			Name:           "Court Sneakers",
			Category:       "Sport Footwear",
			Price:          84.50,
			Description:    "All-court sneakers with reinforced sole.",
			Tags:           []string{"tennis", "indoor"},
			InventoryCount: 60,
			Brand:          "Berry Athletics",
			Color:          "white",
		},
		{
			ID:             uuid.NewString(),
			ProductID:      "SWE003",
			Name:           "Cast Iron Kettlebell 16kg",
			Category:       "Workout Equipment",
			Price:          49.00,
			Description:    "Solid cast iron kettlebell, powder coated.",
			Tags:           []string{"strength", "home-gym"},
			InventoryCount: 35,
			Brand:          "IronBerry",
			WeightLb:       35.3,
		},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			log.Fatal("create product:", err)
		}
	}

	log.Printf("done: 1 user, %d products", len(products))
}

package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/config"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/repository"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/service"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/db"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/menuimport"
)

// Imports a menu sheet for one restaurant:
//
//	go run ./cmd/seed <restaurant_id> <menu.xlsx>
func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: go run ./cmd/seed <restaurant_id> <xlsx_file_path>")
	}

	restaurantID, err := strconv.ParseUint(os.Args[1], 10, 32)
	if err != nil || restaurantID == 0 {
		log.Fatalf("Invalid restaurant id %q", os.Args[1])
	}
	filePath := os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	database := db.GetDB()

	restaurant, err := repository.NewRestaurantRepository(database).FindByID(uint(restaurantID))
	if err != nil {
		log.Fatalf("Restaurant %d not found: %v", restaurantID, err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX:", err)
	}
	defer file.Close()

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	menu, skipped, err := menuimport.Read(file)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}
	for _, s := range skipped {
		fmt.Printf("  skipped %s\n", s)
	}

	products := 0
	for _, c := range menu {
		products += len(c.Products)
	}
	fmt.Printf("Menu for %q: %d categories, %d products (%d rows skipped)\n", restaurant.Name, len(menu), products, len(skipped))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	categoryRepo := repository.NewCategoryRepository(database)
	productRepo := repository.NewProductRepository(database)
	categoryService := service.NewCategoryService(database, categoryRepo, productRepo)
	productService := service.NewProductService(database, productRepo, categoryRepo,
		repository.NewAddonRepository(database),
		repository.NewComboRepository(database),
		repository.NewOfferRepository(database),
		repository.NewRateRepository(database),
		repository.NewFavoriteRepository(database),
	)

	actor := service.Actor{ID: restaurant.ID, Role: model.RoleRestaurant, Name: restaurant.Name}
	sum, err := menuimport.Import(actor, categoryService, productService, menu)
	if err != nil {
		log.Fatalf("Import stopped after %d categories and %d products: %v", sum.Categories, sum.Products, err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Categories: %d, products: %d\n", sum.Categories, sum.Products)
}

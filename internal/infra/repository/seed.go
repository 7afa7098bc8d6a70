package repository

import (
	"time"

	"app/internal/domain/model"
)

// 初期カタログ。公開側からは読み取り専用。
func SeedCategories() []model.Category {
	return []model.Category{
		{ID: "1", Name: "Women", Slug: "women"},
		{ID: "2", Name: "Men", Slug: "men"},
		{ID: "3", Name: "Accessories", Slug: "accessories"},
		{ID: "4", Name: "Footwear", Slug: "footwear"},
		{ID: "5", Name: "Sale", Slug: "sale"},
	}
}

func SeedProducts() []model.Product {
	return []model.Product{
		{
			ID:          "1",
			Name:        "Classic White T-Shirt",
			Price:       29.99,
			Description: "A timeless white t-shirt made from premium cotton for everyday comfort and style.",
			Category:    "women",
			Image:       "/images/product-1.jpg",
			Images:      []string{"/images/product-1.jpg", "/images/product-1-2.jpg", "/images/product-1-3.jpg"},
			Sizes:       []string{"XS", "S", "M", "L", "XL"},
			Colors:      []string{"White", "Black", "Gray"},
			Featured:    true,
			InStock:     true,
			CreatedAt:   seedTime(2023, time.January, 15),
		},
		{
			ID:          "2",
			Name:        "Slim Fit Jeans",
			Price:       59.99,
			Description: "Modern slim fit jeans with a comfortable stretch fabric. Perfect for any casual outfit.",
			Category:    "men",
			Image:       "/images/product-2.jpg",
			Sizes:       []string{"30", "32", "34", "36", "38"},
			Colors:      []string{"Blue", "Black", "Gray"},
			InStock:     true,
			CreatedAt:   seedTime(2023, time.January, 20),
		},
		{
			ID:          "3",
			Name:        "Leather Crossbody Bag",
			Price:       79.99,
			Description: "A stylish leather crossbody bag with multiple compartments for all your essentials.",
			Category:    "accessories",
			Image:       "/images/product-3.jpg",
			Colors:      []string{"Black", "Brown", "Tan"},
			Featured:    true,
			InStock:     true,
			CreatedAt:   seedTime(2023, time.February, 5),
		},
		{
			ID:            "4",
			Name:          "Running Sneakers",
			Price:         89.99,
			OriginalPrice: price(119.99),
			Description:   "Lightweight and comfortable running shoes with advanced cushioning technology.",
			Category:      "footwear",
			Image:         "/images/product-4.jpg",
			Sizes:         []string{"7", "8", "9", "10", "11"},
			Colors:        []string{"White", "Black", "Blue"},
			InStock:       true,
			CreatedAt:     seedTime(2023, time.February, 15),
		},
		{
			ID:            "5",
			Name:          "Wool Blend Coat",
			Price:         149.99,
			OriginalPrice: price(199.99),
			Description:   "A warm and elegant wool blend coat perfect for colder months.",
			Category:      "women",
			Image:         "/images/product-5.jpg",
			Sizes:         []string{"S", "M", "L"},
			Colors:        []string{"Camel", "Black", "Gray"},
			InStock:       true,
			CreatedAt:     seedTime(2023, time.March, 1),
		},
		{
			ID:          "6",
			Name:        "Cotton Button-Up Shirt",
			Price:       49.99,
			Description: "A versatile button-up shirt made from soft, breathable cotton.",
			Category:    "men",
			Image:       "/images/product-6.jpg",
			Sizes:       []string{"S", "M", "L", "XL", "XXL"},
			Colors:      []string{"White", "Blue", "Pink"},
			Featured:    true,
			InStock:     true,
			CreatedAt:   seedTime(2023, time.March, 10),
		},
		{
			ID:          "7",
			Name:        "Gold Hoop Earrings",
			Price:       34.99,
			Description: "Classic gold hoop earrings that add elegance to any outfit.",
			Category:    "accessories",
			Image:       "/images/product-7.jpg",
			Colors:      []string{"Gold", "Silver"},
			InStock:     true,
			CreatedAt:   seedTime(2023, time.March, 25),
		},
		{
			ID:          "8",
			Name:        "Leather Chelsea Boots",
			Price:       129.99,
			Description: "Stylish and durable leather Chelsea boots with elastic side panels.",
			Category:    "footwear",
			Image:       "/images/product-8.jpg",
			Sizes:       []string{"7", "8", "9", "10", "11"},
			Colors:      []string{"Black", "Brown"},
			InStock:     true,
			CreatedAt:   seedTime(2023, time.April, 5),
		},
	}
}

// モック認証の初期ディレクトリ
func SeedUsers() []model.User {
	return []model.User{
		{ID: "1", Name: "Admin User", Email: "admin@example.com", IsAdmin: true},
		{ID: "2", Name: "John Doe", Email: "user@example.com", IsAdmin: false},
	}
}

func seedTime(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func price(v float64) *float64 {
	return &v
}

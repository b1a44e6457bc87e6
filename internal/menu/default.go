package menu

import "fmt"

// Default returns the kitchen's standing menu.
func Default() *Menu {
	m, err := New(defaultCategories())
	if err != nil {
		panic(fmt.Sprintf("built-in menu invalid: %v", err))
	}
	return m
}

func defaultCategories() []Category {
	return []Category{
		{
			ID:          "cat_1",
			Name:        "ROYAL SIGNATURE PLATTERS",
			Description: "Grand feasts inspired by the Mughal and Ottoman Empires.",
			Items: []Item{
				{
					ID:            "sp_101",
					Name:          "The Emperor's Platter",
					Price:         4850,
					OriginalPrice: 5500,
					Description:   "A majestic spread of Lamb Chops, Saffron Infused Kababs, Malai Boti, and Peshawari Karahi served with aromatic Long-Grain Basmati Rice.",
					Image:         "https://images.unsplash.com/photo-1544124499-58912cbddaad?q=80&w=1000",
					Tags:          []string{"Bestseller", "Sharing", "Chef's Choice"},
					Nutrition:     Nutrition{Calories: "1850 kcal", Protein: "120g", Fats: "85g"},
					Available:     true,
				},
				{
					ID:          "sp_102",
					Name:        "Ottoman Seafood Symphony",
					Price:       6200,
					Description: "Grilled Jumbo Prawns, Atlantic Salmon, and calamari rings tossed in a lemon-garlic butter sauce with grilled Mediterranean vegetables.",
					Image:       "https://images.unsplash.com/photo-1519708227418-c8fd9a32b7a2?q=80&w=1000",
					Tags:        []string{"Premium", "Seafood"},
					Nutrition:   Nutrition{Calories: "950 kcal", Protein: "85g", Fats: "45g"},
					Spicy:       true,
					Available:   true,
				},
				{
					ID:          "sp_1",
					Name:        "The Royal Mughal Platter",
					Price:       2450,
					Description: "A grand assembly of Seekh Kababs, Malai Boti, and Mutton Chops served with Saffron Rice.",
					Image:       "/assets/menu/royal-platter.jpg",
					Tags:        []string{"Bestseller"},
					Nutrition:   Nutrition{Calories: "1200 kcal"},
					Available:   true,
				},
			},
		},
		{
			ID:          "cat_2",
			Name:        "ARTISAN BURGERS & STEAKS",
			Description: "Dry-aged meats and handmade brioche buns.",
			Items: []Item{
				{
					ID:          "bs_201",
					Name:        "24K Gold Truffle Burger",
					Price:       2850,
					Description: "Wagyu beef patty topped with black truffle aioli, edible 24K gold leaf, and aged Swiss Gruyère on a toasted charcoal bun.",
					Image:       "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?q=80&w=1000",
					Tags:        []string{"Luxury", "Signature"},
					Nutrition:   Nutrition{Calories: "1100 kcal", Protein: "65g", Fats: "70g"},
					Available:   true,
				},
				{
					ID:          "bs_202",
					Name:        "The Flaming Ribeye",
					Price:       4200,
					Description: "Prime Ribeye steak flamed tableside with rosemary butter, served with truffle mash and grilled asparagus.",
					Image:       "https://images.unsplash.com/photo-1546241072-48010ad28c2c?q=80&w=1000",
					Tags:        []string{"High Protein", "Steakhouse"},
					Nutrition:   Nutrition{Calories: "850 kcal", Protein: "90g", Fats: "55g"},
					Spicy:       true,
					Available:   true,
				},
				{
					ID:          "gb_2",
					Name:        "Spicy Peri-Peri Crown",
					Price:       950,
					Description: "Grilled chicken breast basted in our secret peri-peri sauce with charcoal bun.",
					Image:       "/assets/menu/peri-burger.jpg",
					Tags:        []string{"Bestseller"},
					Spicy:       true,
					Available:   false,
				},
			},
		},
		{
			ID:          "cat_3",
			Name:        "GOURMET DESSERTS",
			Description: "Sweet endings crafted by our master pastry chefs.",
			Items: []Item{
				{
					ID:          "ds_301",
					Name:        "Saffron Pistachio Milk Cake",
					Price:       950,
					Description: "Spongy cake soaked in three types of saffron-infused milk, topped with crushed Iranian pistachios.",
					Image:       "https://images.unsplash.com/photo-1588195538326-c5b1e9f80a1b?q=80&w=1000",
					Tags:        []string{"Sweet", "Nutty"},
					Nutrition:   Nutrition{Calories: "450 kcal", Protein: "10g", Fats: "25g"},
					Vegetarian:  true,
					Available:   true,
				},
				{
					ID:          "ds_302",
					Name:        "Molten Lava Gold Dust",
					Price:       1100,
					Description: "Belgian dark chocolate fondant with a liquid center, served with vanilla bean gelato and gold dust.",
					Image:       "https://images.unsplash.com/photo-1624353365286-3f8d62daad51?q=80&w=1000",
					Tags:        []string{"Chocolate", "Hot"},
					Nutrition:   Nutrition{Calories: "600 kcal", Protein: "8g", Fats: "35g"},
					Vegetarian:  true,
					Available:   true,
				},
			},
		},
		{
			ID:          "cat_4",
			Name:        "ROYAL BEVERAGES",
			Description: "Refreshing elixirs and artisan mocktails.",
			Items: []Item{
				{
					ID:          "bv_401",
					Name:        "Emerald Mint Mojito",
					Price:       650,
					Description: "Freshly muddled mint leaves, lime juice, and sparkling soda with a hint of green apple.",
					Image:       "https://images.unsplash.com/photo-1513558161293-cdaf765ed2fd?q=80&w=1000",
					Tags:        []string{"Refreshing", "Cold"},
					Nutrition:   Nutrition{Calories: "120 kcal", Protein: "0g", Fats: "0g"},
					Vegetarian:  true,
					Available:   true,
				},
			},
		},
	}
}

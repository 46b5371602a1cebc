package recipe

import "github.com/hammamikhairi/ottobrew/internal/domain"

// Library returns the built-in recipe definitions.
func Library() []domain.RecipeDefinition {
	return []domain.RecipeDefinition{
		staggX(),
		aeropress(),
		v60(),
	}
}

func staggX() domain.RecipeDefinition {
	return domain.RecipeDefinition{
		ID:     "1",
		BrewID: "stagg-x",
		Name:   "Stagg X",
		Author: "Nathan Reyes",
		Notes:  "A quick percolation recipe for the Stagg [X] dripper.",
		Params: domain.BrewParams{
			WaterAmount:  "350g",
			WaterTemp:    "202",
			CoffeeAmount: "20g",
			Grind:        "Fine",
			Ratio:        "16:1",
			Roast:        "Light",
		},
		Steps: []domain.StepDefinition{
			{
				Summary:     "Prepare Brew",
				Kind:        domain.StepSetup,
				Description: "Rinse the filter and load {{coffeeAmount}} of coffee.",
				Duration:    domain.Seconds(3),
			},
			{
				Summary:     "Pour 200 grams of water",
				Kind:        domain.StepPour,
				Description: "Get coffee wet as quickly as you can.",
				Duration:    domain.Seconds(3),
			},
			{
				Summary:  "Enjoy your coffee!",
				Kind:     domain.StepComplete,
				MediaURL: "https://media.giphy.com/media/vJiurtzDcjUGxJqXCs/giphy.gif",
			},
		},
	}
}

func aeropress() domain.RecipeDefinition {
	return domain.RecipeDefinition{
		ID:     "2",
		BrewID: "aeropress",
		Name:   "AeroPress",
		Author: "Nathan Reyes",
		Notes:  "Inspired by James Hoffmann's AeroPress series. Long steep, gentle press.",
		Params: domain.BrewParams{
			WaterAmount:  "350g",
			WaterTemp:    "Boil",
			CoffeeAmount: "16g",
			Grind:        "Fine",
			Ratio:        "16:1",
			Roast:        "Light",
		},
		Steps: []domain.StepDefinition{
			{
				Summary:     "Prepare Brew",
				Kind:        domain.StepSetup,
				Description: "Load coffee into the aeropress. No need to rinse paper filter.",
			},
			{
				Summary:     "Pour 200 grams of water",
				Kind:        domain.StepPour,
				Description: "Get coffee wet as quickly as you can.",
				Duration:    domain.Seconds(15),
			},
			{
				Summary:     "Wait for 2 minutes",
				Kind:        domain.StepWait,
				Description: "Remove cup from scale, insert plunger slightly, and wait...patiently.",
				Duration:    domain.Minutes(2),
			},
			{
				Summary:     "Gentle swirl",
				Kind:        domain.StepSwirl,
				Description: "You are not trying to create a vortex. Just settle the coffee a bit.",
				Duration:    domain.Seconds(10),
			},
			{
				Summary:     "Wait for 30 seconds",
				Kind:        domain.StepWait,
				Description: "Almost time to show off that pressing form.",
				Duration:    domain.Seconds(30),
			},
			{
				Summary:     "Press the plunger",
				Kind:        domain.StepOther,
				Description: "A comfortable motion. Pull back a bit when you are done to help prevent drips.",
				Duration:    domain.Seconds(20),
			},
			{
				Summary:  "Drink it up!",
				Kind:     domain.StepComplete,
				MediaURL: "https://media.giphy.com/media/DrJm6F9poo4aA/giphy.gif",
			},
		},
	}
}

func v60() domain.RecipeDefinition {
	return domain.RecipeDefinition{
		ID:        "3",
		BrewID:    "v60",
		Name:      "V60 Single Cup",
		Author:    "Nathan Reyes",
		Notes:     "Bloom, two pours, a stir and a swirl for an even bed.",
		SourceURL: "https://www.youtube.com/watch?v=AI4ynXzkSQo",
		Params: domain.BrewParams{
			WaterAmount:  "250g",
			WaterTemp:    "205",
			CoffeeAmount: "15g",
			Grind:        "Medium-Fine",
			Ratio:        "50:3",
			Roast:        "Medium",
		},
		Steps: []domain.StepDefinition{
			{
				Summary:     "Rinse filter and preheat",
				Kind:        domain.StepSetup,
				Description: "Rinse the paper with hot water and dump it. Add {{coffeeAmount}} of coffee.",
			},
			{
				Summary:     "Bloom with 50 grams",
				Kind:        domain.StepPour,
				Description: "Wet all the grounds evenly.",
				Duration:    domain.Seconds(10),
			},
			{
				Summary:     "Swirl the bloom",
				Kind:        domain.StepSwirl,
				Description: "Give the brewer a swirl so no dry clumps remain.",
				Duration:    domain.Seconds(5),
			},
			{
				Summary:  "Let it bloom",
				Kind:     domain.StepWait,
				Duration: domain.Seconds(30),
			},
			{
				Summary:     "Pour to 150 grams",
				Kind:        domain.StepPour,
				Description: "Steady spiral pour, avoid the paper.",
				Duration:    domain.Seconds(30),
			},
			{
				Summary:     "Pour to 250 grams",
				Kind:        domain.StepPour,
				Description: "Slower now. Finish by {{waterAmount}}.",
				Duration:    domain.Seconds(30),
			},
			{
				Summary:     "Stir once",
				Kind:        domain.StepStir,
				Description: "One gentle stir clockwise, one counter-clockwise.",
				Duration:    domain.Seconds(5),
			},
			{
				Summary:     "Swirl and draw down",
				Kind:        domain.StepSwirl,
				Description: "Swirl to flatten the bed and let it drain.",
				Duration:    &domain.StepDuration{Minutes: int64p(1), Seconds: int64p(10)},
			},
			{
				Summary: "Enjoy!",
				Kind:    domain.StepComplete,
			},
		},
	}
}

func int64p(n int64) *int64 { return &n }

// Package sample holds the hardcoded content served when every live source
// for a resource has failed. Every call returns fresh slices so callers can
// sort or filter them freely.
package sample

import (
	"time"

	"github.com/footyhub/uganda-footy-hub/internal/model"
)

func Events() []model.Event {
	return []model.Event{
		{
			ID:          "1",
			Year:        2023,
			Title:       "KCCA FC Wins Uganda Premier League",
			Description: "KCCA FC secured their 13th Uganda Premier League title with a commanding performance throughout the season.",
			Source:      "Uganda Football Federation",
			Tags:        []string{"league", "championship"},
			Team:        "KCCA FC",
			Type:        "league",
		},
		{
			ID:          "2",
			Year:        2020,
			Title:       "Vipers SC Dominates Local Football",
			Description: "Vipers SC established themselves as the dominant force in Ugandan football, winning multiple titles.",
			Source:      "FUFA",
			Tags:        []string{"league", "success"},
			Team:        "Vipers SC",
			Type:        "league",
		},
		{
			ID:          "3",
			Year:        2018,
			Title:       "Uganda Cranes Qualifies for AFCON",
			Description: "The Uganda Cranes national team qualified for the Africa Cup of Nations, marking a significant achievement.",
			Source:      "CAF",
			Tags:        []string{"international", "qualification"},
			Team:        "Uganda Cranes",
			Type:        "international",
		},
		{
			ID:          "4",
			Year:        2015,
			Title:       "KCCA FC Continental Success",
			Description: "KCCA FC made history with impressive performances in CAF Champions League.",
			Source:      "CAF",
			Tags:        []string{"international", "achievement"},
			Team:        "KCCA FC",
			Type:        "international",
		},
		{
			ID:          "5",
			Year:        2010,
			Title:       "Express FC Wins Uganda Cup",
			Description: "Express FC lifted the prestigious Uganda Cup trophy in a thrilling final.",
			Source:      "FUFA",
			Tags:        []string{"cup", "victory"},
			Team:        "Express FC",
			Type:        "cup",
		},
		{
			ID:          "6",
			Year:        2005,
			Title:       "SC Villa Revival Season",
			Description: "SC Villa experienced a revival with strong performances and fan engagement.",
			Source:      "Local Media",
			Tags:        []string{"league", "comeback"},
			Team:        "SC Villa",
			Type:        "league",
		},
	}
}

func Teams() []model.Team {
	const league = "Uganda Premier League"
	return []model.Team{
		{ID: "1", Name: "KCCA FC", Stadium: "Phillip Omondi Stadium", Founded: 1963, League: league},
		{ID: "2", Name: "Vipers SC", Stadium: "St. Mary's Stadium", Founded: 2013, League: league},
		{ID: "3", Name: "SC Villa", Stadium: "Mandela National Stadium", Founded: 1975, League: league},
		{ID: "4", Name: "Express FC", Stadium: "Wankulukuku Stadium", Founded: 1957, League: league},
		{ID: "5", Name: "URA FC", Stadium: "Mehta Stadium", Founded: 1992, League: league},
		{ID: "6", Name: "UPDF FC", Stadium: "Bombo Military Barracks", Founded: 2006, League: league},
	}
}

// News dates the sample articles relative to now: today, yesterday, two days ago.
func News(now time.Time) []model.NewsArticle {
	return []model.NewsArticle{
		{
			Title:       "Uganda Premier League Season Preview",
			Description: "An exciting season ahead for Ugandan football with strong competition expected.",
			URL:         "#",
			PublishedAt: now.UTC(),
			Source:      model.NewsSource{Name: "Uganda Sports"},
		},
		{
			Title:       "KCCA FC Signs New Players",
			Description: "KCCA FC announces major signings ahead of the new season.",
			URL:         "#",
			PublishedAt: now.Add(-24 * time.Hour).UTC(),
			Source:      model.NewsSource{Name: "Football Uganda"},
		},
		{
			Title:       "Uganda Cranes Training Camp Begins",
			Description: "National team starts preparations for upcoming international fixtures.",
			URL:         "#",
			PublishedAt: now.Add(-48 * time.Hour).UTC(),
			Source:      model.NewsSource{Name: "FUFA Media"},
		},
	}
}

// Weather is a typical Kampala afternoon.
func Weather() model.WeatherSnapshot {
	return model.WeatherSnapshot{
		Temperature: 25,
		Description: "partly cloudy",
		Icon:        "02d",
		Humidity:    70,
		WindSpeed:   3.5,
		City:        "Kampala",
		Country:     "UG",
	}
}

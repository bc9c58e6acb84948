// One-shot seeding tool: fills the store with a small demo league so the
// public standings page has something to show during development.
//
//	go run ./cmd/seed
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"placar-backend/models"
	"placar-backend/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, continuing with system environment variables")
	}

	store, err := openStore()
	if err != nil {
		log.Fatal("Failed to open storage: ", err)
	}
	svc := storage.NewService(store, storage.DefaultCapacity)

	data := svc.Load()
	if len(data.Teams) > 0 {
		log.Fatal("Refusing to seed: store already has teams")
	}

	teams := []models.Team{
		demoTeam("Leões da Vila", "Carlos", "Rafael", "Tiago"),
		demoTeam("Tubarões FC", "Bruno", "Diego", "Marcos"),
		demoTeam("Águias Douradas", "André", "Felipe", "Lucas"),
	}
	data.Teams = teams

	data.Matches = []models.Match{
		demoMatch(teams[0], teams[1], 2, 1, "2026-03-07"),
		demoMatch(teams[2], teams[0], 0, 0, "2026-03-14"),
		demoMatch(teams[1], teams[2], 1, 3, "2026-03-21"),
	}

	if !svc.Save(data) {
		log.Fatal("Failed to save seed data")
	}
	log.Printf("Seeded %d teams and %d matches", len(data.Teams), len(data.Matches))
}

func openStore() (storage.BlobStore, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return storage.OpenPostgres(dsn)
	}
	dir := os.Getenv("DATA_DIR")
	if dir == "" {
		dir = "data"
	}
	return storage.NewFileStore(dir)
}

func demoTeam(name string, playerNames ...string) models.Team {
	team := models.Team{
		ID:      models.NewID(),
		Name:    name,
		Players: []models.Player{},
	}
	for i, n := range playerNames {
		team.Players = append(team.Players, models.Player{
			ID:     models.NewID(),
			Name:   n,
			Number: 7 + i,
		})
	}
	return team
}

func demoMatch(home, away models.Team, hs, as int, date string) models.Match {
	return models.Match{
		ID:         models.NewID(),
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		HomeScore:  hs,
		AwayScore:  as,
		Date:       date,
		Events:     []models.MatchEvent{},
	}
}

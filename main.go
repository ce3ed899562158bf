package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"uctuuctu/internal/config"
	"uctuuctu/internal/coordinator"
	"uctuuctu/internal/game"
	"uctuuctu/internal/handlers"
	"uctuuctu/internal/models"
	"uctuuctu/internal/store"
	"uctuuctu/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	prompts, err := loadPrompts(cfg.PromptsFile)
	if err != nil {
		log.Fatal("Failed to load prompts:", err)
	}

	// independently seeded: codes/avatars and prompt selection
	storeRng := rand.New(rand.NewSource(time.Now().UnixNano()))
	promptRng := rand.New(rand.NewSource(time.Now().UnixNano() + 1))

	roomStore := store.NewRoomStore(storeRng, models.RoomSettings{
		RoundMs:        cfg.RoundMs,
		IntermissionMs: cfg.IntermissionMs,
	})

	hub := ws.NewHub()
	coord := coordinator.New(roomStore, hub, coordinator.NewScheduler(), promptRng, prompts)
	hub.Bind(coord)

	h := &handlers.Handler{
		Hub:           hub,
		Store:         roomStore,
		ClientBaseURL: cfg.ClientBaseURL,
	}
	router := handlers.Router(h, cfg.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Addr)
	log.Fatal(router.Run(cfg.Addr))
}

// loadPrompts loads the prompt catalog from a JSON file
func loadPrompts(path string) ([]game.Prompt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var prompts []game.Prompt
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(prompts) == 0 {
		return nil, fmt.Errorf("%s: empty prompt catalog", path)
	}
	log.Printf("Loaded %d prompts", len(prompts))
	return prompts, nil
}

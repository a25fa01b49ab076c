package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/TeeCanvas/TC-Backend/internal/auth"
	"github.com/TeeCanvas/TC-Backend/internal/clip"
	"github.com/TeeCanvas/TC-Backend/internal/db"
	"github.com/TeeCanvas/TC-Backend/internal/designs"
	"github.com/TeeCanvas/TC-Backend/internal/genai"
	"github.com/TeeCanvas/TC-Backend/internal/middleware"
	"github.com/TeeCanvas/TC-Backend/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	auth.Init()
	designs.Init()

	tokens, err := auth.NewTokenServiceFromEnv()
	if err != nil {
		log.Fatal("Failed to configure token service: ", err)
	}

	blankURL := os.Getenv("BLANK_URL")
	if blankURL == "" {
		log.Fatal("BLANK_URL is empty")
	}

	tempDir := os.Getenv("TEMP_IMAGE_DIR")
	if tempDir == "" {
		tempDir = "temp_images"
	}

	params, err := genai.LoadSamplingParams("generation.yaml")
	if err != nil {
		log.Fatal("Failed to load sampling params: ", err)
	}

	generator, err := genai.NewGenerator(os.Getenv("SD_BASE_URL"), tempDir, params)
	if err != nil {
		log.Fatal("Failed to set up image generator: ", err)
	}

	uploader, err := storage.NewUploaderFromEnv()
	if err != nil {
		log.Fatal("Failed to set up uploader: ", err)
	}

	handler := &designs.Handler{
		Rewriter:  genai.NewRewriter(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_API_URL")),
		Generator: generator,
		Scorer:    clip.NewEncoder(), // built once; shared read-only across requests
		Uploader:  uploader,
		Store:     designs.GormStore{},
		BlankURL:  blankURL,
	}

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/health", HealthHandler)

	r.Mount("/auth", auth.SetupRoutes(tokens))
	r.Mount("/", designs.SetupRoutes(handler, tokens))

	log.Println("Server listening on port :" + port)

	http.ListenAndServe("0.0.0.0:"+port, r)
}

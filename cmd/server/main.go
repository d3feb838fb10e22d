package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	_ "github.com/jackc/pgx/v5/stdlib"

	"field-route-service/internal/adapters/cache"
	"field-route-service/internal/adapters/repositories"
	"field-route-service/internal/adapters/routing"
	"field-route-service/internal/api"
	"field-route-service/internal/config"
	"field-route-service/internal/platform/db"
	"field-route-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, ORS, Redis) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/jobs.json")
	port := config.Get("PORT", "8080")

	conn, err := openStore(os.Getenv("DATABASE_URL"), dbPath, seedPath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// The ORS provider is optional: without a key the sequencer falls back
	// to haversine legs, which is fine for local runs.
	var provider ports.SegmentProvider
	if orsKey := strings.TrimSpace(os.Getenv("ORS_API_KEY")); orsKey != "" {
		legCache := newLegCache(conn, os.Getenv("DATABASE_URL"))
		p, err := routing.NewORSSegmentProvider(orsKey, legCache)
		if err != nil {
			log.Fatal(err)
		}
		provider = p
	} else {
		log.Println("ORS_API_KEY not set; using haversine leg estimates")
	}

	var planCache ports.PlanCache
	if redisAddr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		planCache = cache.NewRedisPlanCache(client, 5*time.Minute)
	}

	repo := repositories.NewSQLJobRepository(conn)
	router := api.NewRouter(repo, provider, planCache)

	// Timeouts are tuned for cold-cache route planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStore opens Postgres when DATABASE_URL is set, otherwise a local
// SQLite database seeded with demo jobs for local runs.
func openStore(databaseURL, dbPath, seedPath string) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) != "" {
		return db.Open(databaseURL)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		return nil, err
	}

	if err := repositories.InitSchema(conn); err != nil {
		return nil, err
	}
	if err := repositories.SeedFromJSON(conn, seedPath); err != nil {
		return nil, err
	}

	return conn, nil
}

func newLegCache(conn *sql.DB, databaseURL string) ports.LegCache {
	if strings.TrimSpace(databaseURL) != "" {
		return cache.NewPgLegCache(conn)
	}
	return cache.NewSqliteLegCache(conn)
}

package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loading for local runs
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/library-loan-system/internal/config"
	"github.com/iliyamo/library-loan-system/internal/handler"
	"github.com/iliyamo/library-loan-system/internal/library"
	"github.com/iliyamo/library-loan-system/internal/queue"
	"github.com/iliyamo/library-loan-system/internal/router"
	"github.com/iliyamo/library-loan-system/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	// Pick the persistence collaborator for the entity store.
	var kv store.KV
	switch cfg.StoreBackend {
	case "redis":
		client := config.NewRedisClient()
		if client == nil {
			log.Fatal("redis backend selected but no Redis connection could be established")
		}
		kv = store.NewRedisKV(client)
	case "mysql":
		mkv, err := store.OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("open mysql store: %v", err)
		}
		defer mkv.Close()
		kv = mkv
	case "memory":
		// Volatile; useful for demos and local poking only.
		kv = store.NewMemoryKV()
	default:
		log.Fatalf("unknown STORE_BACKEND %q (want redis, mysql or memory)", cfg.StoreBackend)
	}

	svc := library.New(store.New(kv))

	authH := handler.NewAuthHandler(cfg, svc)
	studentH := handler.NewStudentHandler(svc)
	adminH := handler.NewAdminHandler(svc)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH)
	router.RegisterStudent(e, studentH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	handler.EventsEnabled = cfg.EventsEnabled
	if cfg.EventsEnabled {
		// Background feed of admin decisions into logs/loans.log.
		go func() {
			if err := queue.StartLoanConsumer(); err != nil {
				log.Printf("loan consumer stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, store=%s)", addr, cfg.Env, cfg.StoreBackend)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

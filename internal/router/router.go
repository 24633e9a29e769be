package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "pet-adoption-api/internal/adapters/storage/memory"
	pg "pet-adoption-api/internal/adapters/storage/postgres"
	"pet-adoption-api/internal/domain/adoptions"
	"pet-adoption-api/internal/domain/chats"
	"pet-adoption-api/internal/domain/notifications"
	"pet-adoption-api/internal/domain/pets"
	"pet-adoption-api/internal/domain/profiles"
	"pet-adoption-api/internal/middleware"
	"pet-adoption-api/internal/platform/logger"
	"pet-adoption-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: logger compartido. Si es nil, cada service usa su default.
	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		petRepo      pets.Repository
		requestRepo  adoptions.Repository
		ledgerRepo   adoptions.LedgerRepository
		chatRepo     chats.Repository
		notifRepo    notifications.Repository
		profilesRepo profiles.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		requestRepo = pg.NewAdoptionsRepo(db)
		ledgerRepo = pg.NewLedgerRepo(db)
		chatRepo = pg.NewChatsRepo(db)
		notifRepo = pg.NewNotificationsRepo(db)
		profilesRepo = pg.NewProfilesRepo(db)
	} else {
		petRepo = mem.NewPetsRepo()
		requestRepo = mem.NewAdoptionsRepo()
		ledgerRepo = mem.NewLedgerRepo()
		chatRepo = mem.NewChatsRepo()
		notifRepo = mem.NewNotificationsRepo()
		profilesRepo = mem.NewProfilesRepo()
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	chatsSvc := chats.NewService(chatRepo)
	notifSvc := notifications.NewService(notifRepo)
	profilesSvc := profiles.NewService(profilesRepo)

	adoptionsSvc := adoptions.NewService(adoptions.Deps{
		Requests: requestRepo,
		Ledger:   ledgerRepo,
		Pets:     petsSvc,
		Chats:    chatsSvc,
		Notifier: notifSvc,
		Profiles: profilesSvc,
		Log:      opts.Log,
	})

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	adoptions.RegisterRoutes(r, adoptionsSvc)
	chats.RegisterRoutes(r, chatsSvc)
	notifications.RegisterRoutes(r, notifSvc)
	profiles.RegisterRoutes(r, profilesSvc)

	return r
}

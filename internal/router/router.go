package router

import (
	"database/sql"
	"net/http"
	"os"
	"strings"

	webhooknotify "pet-grooming-scheduler/internal/adapters/notify/webhook"
	mem "pet-grooming-scheduler/internal/adapters/storage/memory"
	pg "pet-grooming-scheduler/internal/adapters/storage/postgres"
	"pet-grooming-scheduler/internal/domain/appointments"
	"pet-grooming-scheduler/internal/domain/catalog"
	"pet-grooming-scheduler/internal/domain/clients"
	"pet-grooming-scheduler/internal/domain/finance"
	"pet-grooming-scheduler/internal/domain/pets"
	"pet-grooming-scheduler/internal/domain/subscriptions"
	"pet-grooming-scheduler/internal/middleware"
	"pet-grooming-scheduler/internal/platform/bus"
	"pet-grooming-scheduler/internal/platform/logger"
	"pet-grooming-scheduler/internal/ports/auth"

	_ "pet-grooming-scheduler/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, intenta DB_DSN y cae a memoria.
	DB *sql.DB

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		clientRepo       clients.Repository
		petRepo          pets.Repository
		catalogRepo      catalog.Repository
		appointmentRepo  appointments.Repository
		subscriptionRepo subscriptions.Repository
		ledger           finance.Ledger
	)

	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Error("postgres open failed, falling back to memory", map[string]any{"error": err.Error()})
			}
		}
	}

	if db != nil {
		clientRepo = pg.NewClientsRepo(db)
		petRepo = pg.NewPetsRepo(db)
		catalogRepo = pg.NewCatalogRepo(db)
		appointmentRepo = pg.NewAppointmentsRepo(db)
		subscriptionRepo = pg.NewSubscriptionsRepo(db)
		ledger = pg.NewFinanceRepo(db)
	} else {
		clientRepo = mem.NewClientRepo()
		petRepo = mem.NewPetRepo()
		catalogRepo = mem.NewCatalogRepo()
		appointmentRepo = mem.NewAppointmentRepo()
		subscriptionRepo = mem.NewSubscriptionRepo()
		ledger = mem.NewFinanceRepo()
	}

	// Hooks de agendamiento: fan-out en proceso; el webhook externo se
	// suscribe solo si está configurado.
	hooks := bus.New(log)
	if url := strings.TrimSpace(os.Getenv("NOTIFY_WEBHOOK_URL")); url != "" {
		hooks.Subscribe(webhooknotify.New(url, log))
	}

	// Services por módulo
	clientsSvc := clients.NewService(clientRepo)
	petsSvc := pets.NewService(petRepo)
	catalogSvc := catalog.NewCatalog(catalogRepo)
	appointmentsSvc := appointments.NewService(appointmentRepo, petsSvc, catalogSvc, hooks)
	subscriptionsSvc := subscriptions.NewService(subscriptionRepo, appointmentRepo, catalogSvc, ledger, clientsSvc, hooks)
	resolver := finance.NewResolver(ledger)

	// Rutas por módulo
	clients.RegisterRoutes(r, clientsSvc, resolver)
	pets.RegisterRoutes(r, petsSvc, clientsSvc)
	catalog.RegisterRoutes(r, catalogSvc)
	appointments.RegisterRoutes(r, appointmentsSvc, resolver)
	subscriptions.RegisterRoutes(r, subscriptionsSvc)
	finance.RegisterRoutes(r, resolver, clientsSvc)

	return r
}

package router

import (
	"database/sql"
	"net/http"

	_ "farm-livestock-records/docs"
	mem "farm-livestock-records/internal/adapters/storage/memory"
	pg "farm-livestock-records/internal/adapters/storage/postgres"
	"farm-livestock-records/internal/domain/activity"
	"farm-livestock-records/internal/domain/animals"
	"farm-livestock-records/internal/domain/breeding"
	"farm-livestock-records/internal/domain/lifecycle"
	"farm-livestock-records/internal/domain/reminders"
	"farm-livestock-records/internal/domain/treatments"
	"farm-livestock-records/internal/middleware"
	"farm-livestock-records/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Engine con la política vigente; nil = política de fábrica y reloj real.
	Engine *lifecycle.Engine

	Logger logger.Logger
}

// App agrupa el handler HTTP y los servicios que main necesita fuera del router.
type App struct {
	Handler   http.Handler
	Reminders *reminders.Service
}

func NewRouter(opts Options) http.Handler {
	return Build(opts).Handler
}

func Build(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	engine := opts.Engine
	if engine == nil {
		engine = lifecycle.MustDefaultEngine()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.ActorContext)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		animalRepo    animals.Repository
		treatmentRepo treatments.Repository
		breedingRepo  breeding.Repository
		activityRepo  activity.Repository
	)

	if opts.DB != nil {
		animalRepo = pg.NewAnimalsRepo(opts.DB)
		treatmentRepo = pg.NewTreatmentsRepo(opts.DB)
		breedingRepo = pg.NewBreedingRepo(opts.DB)
		activityRepo = pg.NewActivityRepo(opts.DB)
	} else {
		animalRepo = mem.NewAnimalRepo()
		treatmentRepo = mem.NewTreatmentRepo()
		breedingRepo = mem.NewBreedingRepo()
		activityRepo = mem.NewActivityRepo()
	}

	// Services por módulo
	activitySvc := activity.NewService(activityRepo)
	animalsSvc := animals.NewService(animalRepo, engine, activitySvc, log)
	treatmentsSvc := treatments.NewService(treatmentRepo, engine, animalsSvc, activitySvc, log)
	breedingSvc := breeding.NewService(breedingRepo, engine, animalsSvc, activitySvc, log)
	animalsSvc.TrackRecords(treatmentsSvc, breedingSvc)
	remindersSvc := reminders.NewService(engine, animalsSvc, treatmentsSvc, breedingSvc)

	// Rutas por módulo
	lifecycle.RegisterRoutes(r, engine)
	animals.RegisterRoutes(r, animalsSvc)
	treatments.RegisterRoutes(r, treatmentsSvc)
	breeding.RegisterRoutes(r, breedingSvc)
	activity.RegisterRoutes(r, activitySvc, animalsSvc.Exists)
	reminders.RegisterRoutes(r, remindersSvc)

	return &App{Handler: r, Reminders: remindersSvc}
}

package router

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"medication-tracker/docs"
	filestore "medication-tracker/internal/adapters/storage/file"
	mem "medication-tracker/internal/adapters/storage/memory"
	pg "medication-tracker/internal/adapters/storage/postgres"
	"medication-tracker/internal/domain/appointments"
	"medication-tracker/internal/domain/dashboard"
	"medication-tracker/internal/domain/doses"
	"medication-tracker/internal/domain/medications"
	"medication-tracker/internal/domain/schedule"
	"medication-tracker/internal/domain/settings"
	"medication-tracker/internal/middleware"
	"medication-tracker/internal/platform/logger"
	"medication-tracker/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
	// Opcional: archivo JSON para la configuración de usuario (tiene prioridad sobre DB).
	SettingsFile string

	Location      *time.Location
	UpcomingLimit int
	Logger        logger.Logger
}

// Services agrupa los servicios por módulo; main los usa también fuera de HTTP (sweep).
type Services struct {
	Medications  *medications.Service
	Doses        *doses.Service
	Schedule     *schedule.Service
	Appointments *appointments.Service
	Settings     *settings.Service
	Dashboard    *dashboard.Service
}

// NewServices arma repos y servicios según opts.
func NewServices(opts Options) (*Services, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	var (
		medRepo      medications.Repository
		doseRepo     doses.Repository
		apptRepo     appointments.Repository
		settingsRepo settings.Repository
		uow          medications.UnitOfWork
	)

	if opts.DB != nil {
		medRepo = pg.NewMedicationsRepo(opts.DB, loc)
		doseRepo = pg.NewDosesRepo(opts.DB, loc)
		apptRepo = pg.NewAppointmentsRepo(opts.DB, loc)
		settingsRepo = pg.NewSettingsRepo(opts.DB)
		uow = pg.NewUnitOfWork(opts.DB, loc)
	} else {
		store := mem.NewStore()
		medRepo = store.Medications()
		doseRepo = store.Doses()
		apptRepo = store.Appointments()
		settingsRepo = mem.NewSettingsRepo()
		uow = store
	}

	if opts.SettingsFile != "" {
		fs, err := filestore.OpenSettingsStore(opts.SettingsFile)
		if err != nil {
			return nil, fmt.Errorf("open settings file: %w", err)
		}
		settingsRepo = fs
	}

	medsSvc := medications.NewService(medRepo, uow, loc)
	schedSvc := schedule.NewService(medRepo, doseRepo, uow, loc)
	apptSvc := appointments.NewService(apptRepo, loc)
	settingsSvc := settings.NewService(settingsRepo)

	return &Services{
		Medications:  medsSvc,
		Doses:        doses.NewService(doseRepo),
		Schedule:     schedSvc,
		Appointments: apptSvc,
		Settings:     settingsSvc,
		Dashboard:    dashboard.NewService(medsSvc, schedSvc, apptSvc, settingsSvc, opts.UpcomingLimit),
	}, nil
}

func NewRouter(opts Options, svcs *Services) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
	))

	// Rutas por módulo
	medications.RegisterRoutes(r, svcs.Medications, svcs.Settings)
	doses.RegisterRoutes(r, svcs.Doses, loc)
	schedule.RegisterRoutes(r, svcs.Schedule)
	appointments.RegisterRoutes(r, svcs.Appointments, opts.UpcomingLimit)
	settings.RegisterRoutes(r, svcs.Settings)
	dashboard.RegisterRoutes(r, svcs.Dashboard)

	return r
}

package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "pet-adoption-api/internal/adapters/storage/memory"
	pg "pet-adoption-api/internal/adapters/storage/postgres"
	"pet-adoption-api/internal/domain/addresses"
	"pet-adoption-api/internal/domain/applications"
	"pet-adoption-api/internal/domain/community"
	"pet-adoption-api/internal/domain/pets"
	"pet-adoption-api/internal/domain/shelters"
	"pet-adoption-api/internal/middleware"
	"pet-adoption-api/internal/obs"
	"pet-adoption-api/internal/platform/logger"
	"pet-adoption-api/internal/ports/auth"
	"pet-adoption-api/internal/ports/identity"

	localid "pet-adoption-api/internal/adapters/identity/local"

	_ "pet-adoption-api/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // nil => dev mode, X-Debug-* headers

	// Optional: when set, use Postgres. Otherwise in-memory.
	DB *sql.DB

	// Optional: when set, role grants go to the external identity provider.
	// Otherwise a local in-memory granter is used (dev mode).
	RoleGranter identity.RoleGranter

	Logger logger.Logger

	AllowedOrigins []string
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Debug-User-ID", "X-Debug-Roles"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}
	r.Use(obs.Instrument)
	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", obs.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		shelterRepo     shelters.Repository
		managerRepo     shelters.ManagerRepository
		applicationRepo applications.Repository
		petRepo         pets.Repository
		communityRepo   community.Repository
	)

	// If no explicit DB, try env (dev/handoff convenience).
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
		shelterRepo = pg.NewSheltersRepo(db)
		managerRepo = pg.NewManagersRepo(db)
		applicationRepo = pg.NewApplicationsRepo(db)
		petRepo = pg.NewPetsRepo(db)
		communityRepo = pg.NewCommunityRepo(db)
	} else {
		shelterRepo = mem.NewShelterRepo()
		managerRepo = mem.NewManagersRepo()
		applicationRepo = mem.NewApplicationsRepo()
		petRepo = mem.NewPetRepo()
		communityRepo = mem.NewCommunityRepo()
	}

	granter := opts.RoleGranter
	if granter == nil {
		granter = localid.NewGranter()
	}

	addrMgr := addresses.NewManager()

	// Services per module. Shelter metrics pull from the pet and community
	// services, so the shelter service is built first and its sources wired
	// afterwards through the narrow interfaces it declares.
	petsSvc := pets.NewService(petRepo, nil)
	communitySvc := community.NewService(communityRepo, nil)

	sheltersSvc := shelters.NewService(shelterRepo, managerRepo, addrMgr, granter, shelters.MetricsSources{
		Pets:      petsSvc,
		Followers: communitySvc,
		Reviews:   communitySvc,
	})

	petsSvc.SetShelterRef(sheltersSvc)
	communitySvc.SetShelterRef(sheltersSvc)

	applicationsSvc := applications.NewService(applicationRepo, sheltersSvc, addrMgr)

	// Routes per module. Registration is flat on the parent mux: shelters,
	// applications, pets and community all hang off the /shelters prefix and
	// chi resolves static segments before the {shelterID} wildcard.
	shelters.RegisterRoutes(r, sheltersSvc)
	applications.RegisterRoutes(r, applicationsSvc)
	pets.RegisterRoutes(r, petsSvc, sheltersSvc)
	community.RegisterRoutes(r, communitySvc)

	return r
}

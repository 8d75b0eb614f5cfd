package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	auth "Pergola/internal/auth"
	batch "Pergola/internal/calc/batch"
	"Pergola/internal/calc/frame"
	importer "Pergola/internal/calc/importer"
	report "Pergola/internal/calc/report"
	structure "Pergola/internal/calc/structure"
	"Pergola/internal/config"
	repo "Pergola/internal/repo"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logging writes one line per request: method, path, status and latency.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}

// HandleList registers the API on router.
func HandleList(router *mux.Router, cfg *config.Config, store repo.PriceStore, cache *frame.Cache) {
	authEnv := &auth.Authenv{
		JWTkey:        []byte(cfg.TokenKey),
		AdminLogin:    cfg.AdminLogin,
		AdminPassword: cfg.AdminPasswordHash,
		TTL:           cfg.SessionTTL,
		SecureCookie:  cfg.TLS(),
	}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	structureH := &structure.Handler{Frames: cache, Prices: store}
	reportH := &report.Handler{Frames: cache, Prices: store}
	importH := &importer.Handler{Prices: store}
	batchH := &batch.Handler{Frames: cache, Prices: store}

	router.Use(Logging)
	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/frame/generate", structureH.Generate).Methods("POST")
	api.HandleFunc("/cost/estimate", structureH.Estimate).Methods("POST")
	api.HandleFunc("/cost/batch", batchH.Compare).Methods("POST")
	api.HandleFunc("/report/pdf", reportH.Generate).Methods("POST")
	api.HandleFunc("/tubes", structureH.TubeList).Methods("GET")
	api.HandleFunc("/prices", structureH.PriceTable).Methods("GET")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authEnv.AuthMiddleware)
	admin.HandleFunc("/prices", structureH.UpdatePrices).Methods("PUT")
	admin.HandleFunc("/prices/import", importH.Import).Methods("POST")
}

// openStore picks Postgres when DATABASE_URL is set, else the YAML file, else memory.
func openStore(ctx context.Context, cfg *config.Config) (repo.PriceStore, func(), error) {
	if cfg.DatabaseURL == "" {
		if cfg.PricesFile != "" {
			return repo.NewFilePriceStore(cfg.PricesFile), func() {}, nil
		}
		return repo.NewMemoryPriceStore(), func() {}, nil
	}

	db, err := repo.OpenDB(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	store := repo.NewPostgresPriceStore(db)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	if cfg.PricesFile != "" {
		if err := seed(ctx, store, repo.NewFilePriceStore(cfg.PricesFile)); err != nil {
			log.Printf("seed prices from %s: %v", cfg.PricesFile, err)
		}
	}
	return store, func() { db.Close() }, nil
}

// seed copies the file table into an empty store.
func seed(ctx context.Context, dst, src repo.PriceStore) error {
	if _, err := dst.Load(ctx); !errors.Is(err, repo.ErrNoPrices) {
		return err
	}
	t, err := src.Load(ctx)
	if err != nil {
		return err
	}
	return dst.Save(ctx, t)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("price store: ", err)
	}
	defer closeStore()
	if !cfg.AdminEnabled() {
		log.Println("TOKEN_KEY or ADMIN_PASSWORD_HASH not set, price administration disabled")
	}

	router := mux.NewRouter()
	HandleList(router, cfg, store, frame.NewCache(cfg.CacheSize))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           CORS(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("Starting server on %s (tls=%v)", cfg.Addr, cfg.TLS())
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}

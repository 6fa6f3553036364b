package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/limaJavier/handbook/internal/config"
	"github.com/limaJavier/handbook/pkg/handbook"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 5 * time.Second

// NewRouter exposes the handbook queries as a JSON API
func NewRouter(book *handbook.Handbook, settings config.Config) http.Handler {
	handler := handbookHandler{book: book}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: settings.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}).Handler)
	if settings.RateLimit > 0 {
		r.Use(throttle(rate.NewLimiter(rate.Limit(settings.RateLimit), settings.RateBurst)))
	}

	r.Get("/courses/{code}", handler.getCourse)
	r.Route("/programs/{code}", func(r chi.Router) {
		r.Get("/", handler.getProgram)
		r.Get("/structure", handler.getProgramStructure)
		r.Get("/courses", handler.getProgramCourses)
		r.Post("/eligible", handler.postEligible)
		r.Post("/progress", handler.postProgress)
	})
	r.Get("/requirements", handler.getRequirements)
	return r
}

// Serve listens until ctx is cancelled, then shuts the server down gracefully
func Serve(ctx context.Context, book *handbook.Handbook, settings config.Config) error {
	server := &http.Server{
		Addr:              settings.Address,
		Handler:           NewRouter(book, settings),
		ReadHeaderTimeout: 10 * time.Second,
	}

	failed := make(chan error, 1)
	go func() {
		log.WithField("address", settings.Address).Info("serving handbook")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
		close(failed)
	}()

	select {
	case err := <-failed:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// throttle rejects requests beyond the limiter's rate
func throttle(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		writer := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(writer, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   writer.Status(),
			"duration": time.Since(start),
			"request":  middleware.GetReqID(r.Context()),
		}).Debug("request served")
	})
}

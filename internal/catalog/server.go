package catalog

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/turbolytics/curator/internal/config"
)

// Server exposes a validated catalog over HTTP. The catalog is immutable
// after load, so handlers read it without locking.
type Server struct {
	logger  *zap.Logger
	sources *config.Datasources
}

type DatasourceInfo struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Kind   string   `json:"kind"`
	Assets []string `json:"assets"`
}

func NewServer(logger *zap.Logger, sources *config.Datasources) *Server {
	return &Server{
		logger:  logger,
		sources: sources,
	}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", s.health)

	r.Route("/api/v1/datasources", func(r chi.Router) {
		r.Get("/", s.listDatasources)
		r.Get("/{name}", s.getDatasource)
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) listDatasources(w http.ResponseWriter, r *http.Request) {
	datasources := make([]DatasourceInfo, 0, s.sources.Len())
	for _, name := range s.sources.Names() {
		ds, _ := s.sources.Get(name)
		datasources = append(datasources, datasourceInfo(ds))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"datasources": datasources,
		"count":       len(datasources),
	})
}

func (s *Server) getDatasource(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	ds, exists := s.sources.Get(name)
	if !exists {
		http.Error(w, "datasource not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(datasourceInfo(ds))
}

func datasourceInfo(ds *config.Datasource) DatasourceInfo {
	assets := ds.Assets.Names()
	if assets == nil {
		assets = []string{}
	}
	return DatasourceInfo{
		Name:   ds.Name,
		Type:   ds.Type,
		Kind:   string(ds.Kind()),
		Assets: assets,
	}
}

func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
	}

	s.logger.Info("starting catalog server", zap.String("addr", addr))

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down catalog server")
		srv.Shutdown(context.Background())
	}()

	return srv.ListenAndServe()
}

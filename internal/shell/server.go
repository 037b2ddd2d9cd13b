// Package shell is the installable-app surface: it serves precached
// build assets (falling back to the cached root document for offline
// navigations) and exposes the storefront read API through the query
// cache.
package shell

import (
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/JesusQuilleli/family-frontend-sub001/internal/familyshop"
	"github.com/JesusQuilleli/family-frontend-sub001/internal/precache"
	"github.com/JesusQuilleli/family-frontend-sub001/internal/querycache"
)

// RootDocument is the entry point served for unmatched navigations.
const RootDocument = "/index.html"

type Server struct {
	router *chi.Mux
	store  *precache.Store
	shop   *familyshop.Client
	cache  *querycache.Cache
	log    *zap.Logger
}

func NewServer(store *precache.Store, shop *familyshop.Client, cache *querycache.Cache, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	s := &Server{
		router: router,
		store:  store,
		shop:   shop,
		cache:  cache,
		log:    log,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.health)
		r.Get("/categories", s.getCategories)
		r.Get("/products", s.getProducts)
		r.Get("/products/{id}", s.getProduct)
		r.Get("/orders", s.getOrders)
		r.Get("/notifications/{userID}", s.getNotifications)
		r.Get("/notifications/{userID}/unread", s.getUnread)
	})
	// Everything else resolves against the precache.
	s.router.NotFound(s.serveAsset)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// serveAsset answers from the precache. A navigation request that
// misses gets the cached root document so client-side routing keeps
// working offline; anything else misses with 404.
func (s *Server) serveAsset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	p := path.Clean(r.URL.Path)
	if p == "/" {
		p = RootDocument
	}

	asset, err := s.store.Get(r.Context(), p)
	if err == precache.ErrNotCached && isNavigation(r) {
		asset, err = s.store.Get(r.Context(), RootDocument)
	}
	if err != nil {
		if err == precache.ErrNotCached {
			http.NotFound(w, r)
			return
		}
		s.log.Error("precache lookup failed", zap.String("path", p), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if asset.ContentType != "" {
		w.Header().Set("Content-Type", asset.ContentType)
	}
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	w.Write(asset.Body)
}

// isNavigation mirrors the platform's notion of a navigation request:
// a GET whose Accept header asks for an HTML document.
func isNavigation(r *http.Request) bool {
	return r.Method == http.MethodGet && strings.Contains(r.Header.Get("Accept"), "text/html")
}

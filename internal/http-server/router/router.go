package router

import (
	"net/http"
	"strings"

	"memepop/internal/http-server/handler/session"
	"memepop/internal/http-server/handler/site"
	"memepop/internal/http-server/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	SiteHandler    *site.SiteHandler
	SessionHandler *session.SessionHandler
	// StaticDir holds the editor's front-end bundle; empty disables /static.
	StaticDir string
}

func SetupRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RecoveryMiddleware)

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/static/") {
				middleware.LoggingMiddleware(next).ServeHTTP(w, r)
			} else {
				next.ServeHTTP(w, r)
			}
		})
	})

	if h.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(h.StaticDir))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.JSONContentType)

		r.Get("/site", h.SiteHandler.GetSite)
		r.Get("/texts", h.SiteHandler.GetTexts)
		r.Get("/overlay", h.SiteHandler.GetOverlay)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.SessionHandler.CreateSession)
			r.Get("/{id}", h.SessionHandler.GetSession)
			r.Delete("/{id}", h.SessionHandler.DeleteSession)
			r.Post("/{id}/reset", h.SessionHandler.ResetSession)
			r.Patch("/{id}/texts/{index}", h.SessionHandler.EditText)
			r.Get("/{id}/texts/{index}/element", h.SessionHandler.GetElement)
			r.Put("/{id}/texts/{index}/element", h.SessionHandler.MountElement)
			r.Delete("/{id}/texts/{index}/element", h.SessionHandler.UnmountElement)
			r.Put("/{id}/tint", h.SessionHandler.SelectTint)
			r.Post("/{id}/preview", h.SessionHandler.Preview)
		})

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"ok"}`))
		})
	})

	r.Get("/", h.SiteHandler.Chrome)

	return r
}

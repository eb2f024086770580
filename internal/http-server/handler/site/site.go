package site

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"memepop/internal/http-server/handler/response"

	"github.com/wb-go/wbf/zlog"
)

//go:embed templates/index.html
var templates embed.FS

var page = template.Must(template.ParseFS(templates, "templates/index.html"))

// SiteHandler serves the read-only configuration to the editor front end
// and renders the site chrome.
type SiteHandler struct {
	store     presetStore
	logger    *zlog.Zerolog
	hasBundle bool
}

// NewSiteHandler builds the handler. hasBundle reports whether /static
// serves the editor's front-end bundle, so the page only links it then.
func NewSiteHandler(store presetStore, logger *zlog.Zerolog, hasBundle bool) *SiteHandler {
	return &SiteHandler{
		store:     store,
		logger:    logger,
		hasBundle: hasBundle,
	}
}

type pageData struct {
	SiteResponse
	HasBundle bool
}

func (h *SiteHandler) GetSite(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, h.logger, http.StatusOK, h.siteResponse())
}

func (h *SiteHandler) GetTexts(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, h.logger, http.StatusOK, TextsResponse{Texts: h.store.Texts()})
}

// GetOverlay always succeeds; a profile without a palette reports
// enabled=false and an empty color list.
func (h *SiteHandler) GetOverlay(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, h.logger, http.StatusOK, OverlayResponse{
		Enabled:    h.store.OverlayEnabled(),
		BlankLabel: h.store.BlankLabel(),
		Colors:     h.store.OverlayColors(),
	})
}

func (h *SiteHandler) Chrome(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := page.Execute(&buf, pageData{SiteResponse: h.siteResponse(), HasBundle: h.hasBundle}); err != nil {
		h.logger.Error().Err(err).Msg("Failed to render page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *SiteHandler) siteResponse() SiteResponse {
	site := h.store.Site()
	return SiteResponse{
		Profile:        h.store.Profile(),
		Title:          site.Title,
		HeaderText:     site.HeaderText,
		FooterText:     site.FooterText,
		OverlayEnabled: site.Overlay != nil,
	}
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/enbat/horizon-server-go/internal/content"
)

// PublicHandler serves the anonymous read surface backing the site's pages:
// projects, services, service types, and team members.
type PublicHandler struct {
	projects     *content.ProjectService
	services     *content.ServiceService
	serviceTypes *content.ServiceTypeService
	members      *content.MemberService
}

func NewPublicHandler(
	projects *content.ProjectService,
	services *content.ServiceService,
	serviceTypes *content.ServiceTypeService,
	members *content.MemberService,
) *PublicHandler {
	return &PublicHandler{
		projects:     projects,
		services:     services,
		serviceTypes: serviceTypes,
		members:      members,
	}
}

func (h *PublicHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/projects", h.ListProjects)
	r.Get("/services", h.ListServices)
	r.Get("/service-types", h.ListServiceTypes)
	r.Get("/members", h.ListMembers)

	return r
}

func (h *PublicHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list projects")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": projects,
		"total": len(projects),
	})
}

func (h *PublicHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.services.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list services")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": services,
		"total": len(services),
	})
}

func (h *PublicHandler) ListServiceTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.serviceTypes.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list service types")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": types,
		"total": len(types),
	})
}

func (h *PublicHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list members")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": members,
		"total": len(members),
	})
}

package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/enbat/horizon-server-go/internal/audit"
	"github.com/enbat/horizon-server-go/internal/content"
	apperrors "github.com/enbat/horizon-server-go/internal/errors"
	"github.com/enbat/horizon-server-go/internal/middleware"
	"github.com/enbat/horizon-server-go/internal/model"
	"github.com/enbat/horizon-server-go/internal/storage"
)

// AdminHandler exposes the CRUD surface behind the confirmed-admin gate.
// Every mutation responds with the freshly refetched list so clients render
// exactly what the table now holds.
type AdminHandler struct {
	projects          *content.ProjectService
	services          *content.ServiceService
	serviceTypes      *content.ServiceTypeService
	members           *content.MemberService
	accounts          *content.AccountService
	uploader          *storage.Uploader
	sessionMiddleware func(http.Handler) http.Handler
	maxUploadBytes    int64
}

func NewAdminHandler(
	projects *content.ProjectService,
	services *content.ServiceService,
	serviceTypes *content.ServiceTypeService,
	members *content.MemberService,
	accounts *content.AccountService,
	uploader *storage.Uploader,
	sessionMiddleware func(http.Handler) http.Handler,
	maxUploadBytes int64,
) *AdminHandler {
	return &AdminHandler{
		projects:          projects,
		services:          services,
		serviceTypes:      serviceTypes,
		members:           members,
		accounts:          accounts,
		uploader:          uploader,
		sessionMiddleware: sessionMiddleware,
		maxUploadBytes:    maxUploadBytes,
	}
}

func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(h.sessionMiddleware)
		r.Use(middleware.RequireConfirmed)

		// Projects
		r.Get("/projects", h.ListProjects)
		r.Post("/projects", h.CreateProject)
		r.Put("/projects/{id}", h.UpdateProject)
		r.Delete("/projects/{id}", h.DeleteProject)

		// Services
		r.Get("/services", h.ListServices)
		r.Post("/services", h.CreateService)
		r.Put("/services/{id}", h.UpdateService)
		r.Delete("/services/{id}", h.DeleteService)

		// Service types
		r.Get("/service-types", h.ListServiceTypes)
		r.Post("/service-types", h.CreateServiceType)
		r.Put("/service-types/{id}", h.UpdateServiceType)
		r.Delete("/service-types/{id}", h.DeleteServiceType)

		// Team members
		r.Get("/members", h.ListMembers)
		r.Post("/members", h.CreateMember)
		r.Put("/members/{id}", h.UpdateMember)
		r.Delete("/members/{id}", h.DeleteMember)

		// Admin accounts
		r.Get("/accounts", h.ListAccounts)
		r.Post("/accounts/{id}/confirm", h.ConfirmAccount)
		r.Post("/accounts/{id}/unconfirm", h.UnconfirmAccount)

		// Image uploads
		r.Post("/uploads/{folder}", h.UploadImage)
	})

	return r
}

// Projects

type projectRequest struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl"`
	ServiceType string `json:"serviceType"`
	IsCompleted bool   `json:"isCompleted"`
	Year        string `json:"year"`
}

func (h *AdminHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list projects")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": projects, "total": len(projects)})
}

func (h *AdminHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	projects, err := h.projects.Create(r.Context(), model.CreateProjectParams{
		Title:       req.Title,
		Subtitle:    optionalString(req.Subtitle),
		Description: optionalString(req.Description),
		LogoURL:     optionalString(req.LogoURL),
		ServiceType: parseOptionalInt(req.ServiceType),
		IsCompleted: req.IsCompleted,
		Year:        parseOptionalInt(req.Year),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"items": projects, "total": len(projects)})
}

func (h *AdminHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	projects, err := h.projects.Update(r.Context(), id, model.UpdateProjectParams{
		Title:       req.Title,
		Subtitle:    optionalString(req.Subtitle),
		Description: optionalString(req.Description),
		LogoURL:     optionalString(req.LogoURL),
		ServiceType: parseOptionalInt(req.ServiceType),
		IsCompleted: req.IsCompleted,
		Year:        parseOptionalInt(req.Year),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": projects, "total": len(projects)})
}

func (h *AdminHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	projects, err := h.projects.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": projects, "total": len(projects)})
}

// Services

type serviceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	ServiceType string `json:"serviceType"`
}

func (h *AdminHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.services.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list services")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": services, "total": len(services)})
}

func (h *AdminHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	services, err := h.services.Create(r.Context(), model.CreateServiceParams{
		Title:       req.Title,
		Description: optionalString(req.Description),
		Icon:        optionalString(req.Icon),
		ServiceType: parseOptionalInt(req.ServiceType),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"items": services, "total": len(services)})
}

func (h *AdminHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	services, err := h.services.Update(r.Context(), id, model.UpdateServiceParams{
		Title:       req.Title,
		Description: optionalString(req.Description),
		Icon:        optionalString(req.Icon),
		ServiceType: parseOptionalInt(req.ServiceType),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": services, "total": len(services)})
}

func (h *AdminHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	services, err := h.services.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": services, "total": len(services)})
}

// Service types

type serviceTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *AdminHandler) ListServiceTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.serviceTypes.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list service types")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": types, "total": len(types)})
}

func (h *AdminHandler) CreateServiceType(w http.ResponseWriter, r *http.Request) {
	var req serviceTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	types, err := h.serviceTypes.Create(r.Context(), model.CreateServiceTypeParams{
		Name:        req.Name,
		Description: optionalString(req.Description),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"items": types, "total": len(types)})
}

func (h *AdminHandler) UpdateServiceType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req serviceTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	types, err := h.serviceTypes.Update(r.Context(), id, model.UpdateServiceTypeParams{
		Name:        req.Name,
		Description: optionalString(req.Description),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": types, "total": len(types)})
}

func (h *AdminHandler) DeleteServiceType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	types, err := h.serviceTypes.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": types, "total": len(types)})
}

// Team members

type memberRequest struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

func (h *AdminHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list members")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": members, "total": len(members)})
}

func (h *AdminHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	members, err := h.members.Create(r.Context(), model.CreateMemberParams{
		Name:        req.Name,
		Role:        optionalString(req.Role),
		Description: optionalString(req.Description),
		ImageURL:    optionalString(req.ImageURL),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"items": members, "total": len(members)})
}

func (h *AdminHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	members, err := h.members.Update(r.Context(), id, model.UpdateMemberParams{
		Name:        req.Name,
		Role:        optionalString(req.Role),
		Description: optionalString(req.Description),
		ImageURL:    optionalString(req.ImageURL),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": members, "total": len(members)})
}

func (h *AdminHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	members, err := h.members.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": members, "total": len(members)})
}

// Admin accounts

func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list admin accounts")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": accounts, "total": len(accounts)})
}

func (h *AdminHandler) ConfirmAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	accounts, err := h.accounts.Confirm(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventAccountConfirm,
		Details: map[string]interface{}{"accountId": id},
	})
	writeJSON(w, http.StatusOK, map[string]any{"items": accounts, "total": len(accounts)})
}

func (h *AdminHandler) UnconfirmAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	accounts, err := h.accounts.Unconfirm(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventAccountUnconfirm,
		Details: map[string]interface{}{"accountId": id},
	})
	writeJSON(w, http.StatusOK, map[string]any{"items": accounts, "total": len(accounts)})
}

// Image uploads

// uploadFolderPattern keeps object keys inside a flat, lowercase folder
// namespace. Anything else (dots, slashes, uppercase) is rejected.
var uploadFolderPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,62}$`)

func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	folder := chi.URLParam(r, "folder")
	if !uploadFolderPattern.MatchString(folder) {
		writeError(w, apperrors.InvalidInput("folder", "must be a lowercase slug"))
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, apperrors.Upload("Invalid multipart request"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperrors.Upload("A file field is required"))
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(
		r.Context(),
		folder,
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
	)
	if err != nil {
		audit.LogFromRequest(r, audit.Event{
			Type:    audit.EventUploadRejected,
			Details: map[string]interface{}{"filename": header.Filename, "size": header.Size},
		})
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apperrors.InvalidInput("id", "must be numeric"))
		return 0, false
	}
	return id, true
}

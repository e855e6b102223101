package content

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/enbat/horizon-server-go/internal/cache"
	apperrors "github.com/enbat/horizon-server-go/internal/errors"
	"github.com/enbat/horizon-server-go/internal/model"
	"github.com/enbat/horizon-server-go/internal/repository"
)

type ProjectService struct {
	repo  repository.ProjectRepository
	lists *cache.Lists
}

func NewProjectService(repo repository.ProjectRepository, lists *cache.Lists) *ProjectService {
	return &ProjectService{repo: repo, lists: lists}
}

// List returns every project, newest first, with the joined service-type
// name. Cache failures are non-fatal; the database remains the source of
// truth.
func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	if s.lists != nil {
		var cached []model.Project
		hit, err := s.lists.Get(ctx, ProjectsTable, &cached)
		if err != nil {
			log.Warn().Err(err).Msg("project list cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	projects, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.RemoteQuery("list projects", err)
	}
	if projects == nil {
		projects = []model.Project{}
	}

	if s.lists != nil {
		if err := s.lists.Set(ctx, ProjectsTable, projects); err != nil {
			log.Warn().Err(err).Msg("project list cache write failed")
		}
	}
	return projects, nil
}

func (s *ProjectService) Create(ctx context.Context, params model.CreateProjectParams) ([]model.Project, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}

	project, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, apperrors.RemoteQuery("create project", err)
	}
	log.Info().Int64("id", project.ID).Msg("project created")

	return s.refetch(ctx)
}

func (s *ProjectService) Update(ctx context.Context, id int64, params model.UpdateProjectParams) ([]model.Project, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}

	project, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, apperrors.RemoteQuery("update project", err)
	}
	if project == nil {
		return nil, apperrors.NotFound("Project")
	}
	log.Info().Int64("id", id).Msg("project updated")

	return s.refetch(ctx)
}

func (s *ProjectService) Delete(ctx context.Context, id int64) ([]model.Project, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, apperrors.RemoteQuery("delete project", err)
	}
	log.Info().Int64("id", id).Msg("project deleted")

	return s.refetch(ctx)
}

func (s *ProjectService) refetch(ctx context.Context) ([]model.Project, error) {
	if s.lists != nil {
		if err := s.lists.Invalidate(ctx, ProjectsTable); err != nil {
			log.Warn().Err(err).Msg("project list cache invalidation failed")
		}
	}
	return s.List(ctx)
}

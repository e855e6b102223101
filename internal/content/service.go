package content

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/enbat/horizon-server-go/internal/cache"
	apperrors "github.com/enbat/horizon-server-go/internal/errors"
	"github.com/enbat/horizon-server-go/internal/model"
	"github.com/enbat/horizon-server-go/internal/repository"
)

type ServiceService struct {
	repo  repository.ServiceRepository
	lists *cache.Lists
}

func NewServiceService(repo repository.ServiceRepository, lists *cache.Lists) *ServiceService {
	return &ServiceService{repo: repo, lists: lists}
}

func (s *ServiceService) List(ctx context.Context) ([]model.Service, error) {
	if s.lists != nil {
		var cached []model.Service
		hit, err := s.lists.Get(ctx, ServicesTable, &cached)
		if err != nil {
			log.Warn().Err(err).Msg("service list cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	services, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.RemoteQuery("list services", err)
	}
	if services == nil {
		services = []model.Service{}
	}

	if s.lists != nil {
		if err := s.lists.Set(ctx, ServicesTable, services); err != nil {
			log.Warn().Err(err).Msg("service list cache write failed")
		}
	}
	return services, nil
}

func (s *ServiceService) Create(ctx context.Context, params model.CreateServiceParams) ([]model.Service, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}

	service, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, apperrors.RemoteQuery("create service", err)
	}
	log.Info().Int64("id", service.ID).Msg("service created")

	return s.refetch(ctx)
}

func (s *ServiceService) Update(ctx context.Context, id int64, params model.UpdateServiceParams) ([]model.Service, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}

	service, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, apperrors.RemoteQuery("update service", err)
	}
	if service == nil {
		return nil, apperrors.NotFound("Service")
	}
	log.Info().Int64("id", id).Msg("service updated")

	return s.refetch(ctx)
}

func (s *ServiceService) Delete(ctx context.Context, id int64) ([]model.Service, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, apperrors.RemoteQuery("delete service", err)
	}
	log.Info().Int64("id", id).Msg("service deleted")

	return s.refetch(ctx)
}

func (s *ServiceService) refetch(ctx context.Context) ([]model.Service, error) {
	if s.lists != nil {
		if err := s.lists.Invalidate(ctx, ServicesTable); err != nil {
			log.Warn().Err(err).Msg("service list cache invalidation failed")
		}
	}
	return s.List(ctx)
}

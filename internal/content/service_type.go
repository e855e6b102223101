package content

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/enbat/horizon-server-go/internal/cache"
	apperrors "github.com/enbat/horizon-server-go/internal/errors"
	"github.com/enbat/horizon-server-go/internal/model"
	"github.com/enbat/horizon-server-go/internal/repository"
)

type ServiceTypeService struct {
	repo  repository.ServiceTypeRepository
	lists *cache.Lists
}

func NewServiceTypeService(repo repository.ServiceTypeRepository, lists *cache.Lists) *ServiceTypeService {
	return &ServiceTypeService{repo: repo, lists: lists}
}

func (s *ServiceTypeService) List(ctx context.Context) ([]model.ServiceType, error) {
	if s.lists != nil {
		var cached []model.ServiceType
		hit, err := s.lists.Get(ctx, ServiceTypesTable, &cached)
		if err != nil {
			log.Warn().Err(err).Msg("service type list cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	types, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.RemoteQuery("list service types", err)
	}
	if types == nil {
		types = []model.ServiceType{}
	}

	if s.lists != nil {
		if err := s.lists.Set(ctx, ServiceTypesTable, types); err != nil {
			log.Warn().Err(err).Msg("service type list cache write failed")
		}
	}
	return types, nil
}

func (s *ServiceTypeService) Create(ctx context.Context, params model.CreateServiceTypeParams) ([]model.ServiceType, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}

	serviceType, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, apperrors.RemoteQuery("create service type", err)
	}
	log.Info().Int64("id", serviceType.ID).Msg("service type created")

	return s.refetch(ctx)
}

func (s *ServiceTypeService) Update(ctx context.Context, id int64, params model.UpdateServiceTypeParams) ([]model.ServiceType, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}

	serviceType, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, apperrors.RemoteQuery("update service type", err)
	}
	if serviceType == nil {
		return nil, apperrors.NotFound("Service type")
	}
	log.Info().Int64("id", id).Msg("service type updated")

	return s.refetch(ctx)
}

func (s *ServiceTypeService) Delete(ctx context.Context, id int64) ([]model.ServiceType, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, apperrors.RemoteQuery("delete service type", err)
	}
	log.Info().Int64("id", id).Msg("service type deleted")

	return s.refetch(ctx)
}

func (s *ServiceTypeService) refetch(ctx context.Context) ([]model.ServiceType, error) {
	if s.lists != nil {
		if err := s.lists.Invalidate(ctx, ServiceTypesTable); err != nil {
			log.Warn().Err(err).Msg("service type list cache invalidation failed")
		}
	}
	return s.List(ctx)
}

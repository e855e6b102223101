package content

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/enbat/horizon-server-go/internal/cache"
	apperrors "github.com/enbat/horizon-server-go/internal/errors"
	"github.com/enbat/horizon-server-go/internal/model"
	"github.com/enbat/horizon-server-go/internal/repository"
)

type MemberService struct {
	repo  repository.MemberRepository
	lists *cache.Lists
}

func NewMemberService(repo repository.MemberRepository, lists *cache.Lists) *MemberService {
	return &MemberService{repo: repo, lists: lists}
}

func (s *MemberService) List(ctx context.Context) ([]model.Member, error) {
	if s.lists != nil {
		var cached []model.Member
		hit, err := s.lists.Get(ctx, MembersTable, &cached)
		if err != nil {
			log.Warn().Err(err).Msg("member list cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	members, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.RemoteQuery("list members", err)
	}
	if members == nil {
		members = []model.Member{}
	}

	if s.lists != nil {
		if err := s.lists.Set(ctx, MembersTable, members); err != nil {
			log.Warn().Err(err).Msg("member list cache write failed")
		}
	}
	return members, nil
}

func (s *MemberService) Create(ctx context.Context, params model.CreateMemberParams) ([]model.Member, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}

	member, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, apperrors.RemoteQuery("create member", err)
	}
	log.Info().Int64("id", member.ID).Msg("team member created")

	return s.refetch(ctx)
}

func (s *MemberService) Update(ctx context.Context, id int64, params model.UpdateMemberParams) ([]model.Member, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}

	member, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, apperrors.RemoteQuery("update member", err)
	}
	if member == nil {
		return nil, apperrors.NotFound("Team member")
	}
	log.Info().Int64("id", id).Msg("team member updated")

	return s.refetch(ctx)
}

func (s *MemberService) Delete(ctx context.Context, id int64) ([]model.Member, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, apperrors.RemoteQuery("delete member", err)
	}
	log.Info().Int64("id", id).Msg("team member deleted")

	return s.refetch(ctx)
}

func (s *MemberService) refetch(ctx context.Context) ([]model.Member, error) {
	if s.lists != nil {
		if err := s.lists.Invalidate(ctx, MembersTable); err != nil {
			log.Warn().Err(err).Msg("member list cache invalidation failed")
		}
	}
	return s.List(ctx)
}

package service

import (
	"context"

	"buglog/internal/domain"
	"buglog/internal/dto"
)

type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	FindUser(ctx context.Context, id string) (*domain.User, error)
}

type EventService interface {
	IngestEvent(ctx context.Context, p dto.EventPayload, ip string) (*domain.Event, error)
	ListEvents(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Event], error)
}

type HealthService interface {
	Health(ctx context.Context) error
}

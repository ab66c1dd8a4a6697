package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/agendei/agenda-service/internal/domain"
	establishmentRepo "github.com/agendei/agenda-service/internal/infra/storage/establishment"
)

// Service reads and caches establishment schedule configs. The cache is a
// pure memoization keyed by establishment id with an explicit force
// parameter; nothing refetches behind the caller's back.
type Service struct {
	repo   EstablishmentRepository
	logger Logger

	mu    sync.Mutex
	cache map[uuid.UUID]*domain.ScheduleConfig
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(repo EstablishmentRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		cache:  make(map[uuid.UUID]*domain.ScheduleConfig),
	}
}

// GetSchedule returns the establishment's schedule config. With force=false
// a memoized copy is served when present; force=true always refetches. When
// a refetch fails and a cached copy exists, the stale copy is returned - a
// visible agenda beats a blank one.
func (s *Service) GetSchedule(ctx context.Context, establishmentID uuid.UUID, force bool) (*domain.ScheduleConfig, error) {
	if !force {
		if cfg := s.cached(establishmentID); cfg != nil {
			return cfg, nil
		}
	}

	est, err := s.repo.GetByID(ctx, establishmentID)
	if err != nil {
		if errors.Is(err, establishmentRepo.ErrEstablishmentNotFound) {
			return nil, ErrEstablishmentNotFound
		}
		if cfg := s.cached(establishmentID); cfg != nil {
			s.logger.Warn("GetSchedule: refetch failed for establishment=%s, serving cached config: %v",
				establishmentID, err)
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	cfg := est.Schedule
	s.store(establishmentID, &cfg)
	return &cfg, nil
}

// UpdateSchedule validates and persists a new schedule config, then replaces
// the memoized copy.
func (s *Service) UpdateSchedule(ctx context.Context, cfg *domain.ScheduleConfig) error {
	if err := validateSchedule(cfg); err != nil {
		s.logger.Warn("UpdateSchedule: validation failed for establishment=%s: %v", cfg.EstablishmentID, err)
		return err
	}

	if err := s.repo.UpdateSchedule(ctx, cfg); err != nil {
		if errors.Is(err, establishmentRepo.ErrEstablishmentNotFound) {
			return ErrEstablishmentNotFound
		}
		s.logger.Error("UpdateSchedule: repository error for establishment=%s: %v", cfg.EstablishmentID, err)
		return fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.store(cfg.EstablishmentID, cfg)
	s.logger.Info("UpdateSchedule: saved schedule for establishment=%s (%s-%s)",
		cfg.EstablishmentID, cfg.OpeningTime, cfg.ClosingTime)
	return nil
}

// Invalidate drops the memoized copy for one establishment.
func (s *Service) Invalidate(establishmentID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, establishmentID)
}

func (s *Service) cached(id uuid.UUID) *domain.ScheduleConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg, ok := s.cache[id]; ok {
		copied := *cfg
		return &copied
	}
	return nil
}

func (s *Service) store(id uuid.UUID, cfg *domain.ScheduleConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *cfg
	s.cache[id] = &copied
}

// validateSchedule проверяет конфигурацию перед сохранением
func validateSchedule(cfg *domain.ScheduleConfig) error {
	if err := cfg.OpeningTime.Validate(); err != nil {
		return fmt.Errorf("%w: opening time: %v", ErrInvalidSchedule, err)
	}
	if err := cfg.ClosingTime.Validate(); err != nil {
		return fmt.Errorf("%w: closing time: %v", ErrInvalidSchedule, err)
	}
	if !cfg.OpeningTime.IsBefore(cfg.ClosingTime) {
		return fmt.Errorf("%w: opening must be before closing", ErrInvalidSchedule)
	}

	if g := cfg.SlotGranularityMinutes; g != 0 &&
		(g < domain.MinSlotGranularityMinutes || g > domain.MaxSlotGranularityMinutes) {
		return fmt.Errorf("%w: slot granularity %d out of range", ErrInvalidSchedule, g)
	}

	// Lunch interval: both bounds or neither, and inside the working day.
	if (cfg.LunchStart == nil) != (cfg.LunchEnd == nil) {
		return fmt.Errorf("%w: lunch interval needs both bounds", ErrInvalidSchedule)
	}
	if cfg.LunchStart != nil {
		if err := cfg.LunchStart.Validate(); err != nil {
			return fmt.Errorf("%w: lunch start: %v", ErrInvalidSchedule, err)
		}
		if err := cfg.LunchEnd.Validate(); err != nil {
			return fmt.Errorf("%w: lunch end: %v", ErrInvalidSchedule, err)
		}
		if !cfg.LunchStart.IsBefore(*cfg.LunchEnd) {
			return fmt.Errorf("%w: lunch start must be before lunch end", ErrInvalidSchedule)
		}
		if cfg.LunchStart.IsBefore(cfg.OpeningTime) || cfg.ClosingTime.IsBefore(*cfg.LunchEnd) {
			return fmt.Errorf("%w: lunch interval outside working hours", ErrInvalidSchedule)
		}
	}

	return nil
}

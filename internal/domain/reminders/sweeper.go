package reminders

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"farm-livestock-records/internal/domain/lifecycle"
	"farm-livestock-records/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule corre el barrido todos los días a las 06:00.
const DefaultSchedule = "0 6 * * *"

// Sweeper corre Due con cron y deja el resultado en el log.
type Sweeper struct {
	svc      *Service
	log      logger.Logger
	schedule string
	now      func() time.Time

	mu   sync.Mutex
	c    *cron.Cron
	last []Reminder
}

func NewSweeper(svc *Service, log logger.Logger, schedule string) (*Sweeper, error) {
	if log == nil {
		log = logger.Nop()
	}
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("reminders schedule %q: %w", schedule, err)
	}
	return &Sweeper{
		svc:      svc,
		log:      log.With(map[string]any{"component": "reminders"}),
		schedule: schedule,
		now:      time.Now,
	}, nil
}

func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c != nil {
		return nil
	}

	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(s.schedule, func() { _, _ = s.Sweep(ctx) }); err != nil {
		return err
	}
	c.Start()
	s.c = c

	s.log.Info("reminder sweeper started", map[string]any{"schedule": s.schedule})
	return nil
}

// Stop espera a que termine un barrido en curso.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	c := s.c
	s.c = nil
	s.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	s.log.Info("reminder sweeper stopped", nil)
}

// Sweep calcula los pendientes una vez. Lo usa el cron y también se puede llamar a mano.
func (s *Sweeper) Sweep(ctx context.Context) ([]Reminder, error) {
	items, err := s.svc.Due(ctx, s.now())
	if err != nil {
		s.log.Error("reminder sweep failed", map[string]any{"err": err})
		return nil, err
	}

	overdue := 0
	for _, r := range items {
		if r.Status == lifecycle.StatusOverdue {
			overdue++
		}
		s.log.Debug("reminder", map[string]any{
			"animal_id": r.AnimalID,
			"tag":       r.AnimalTag,
			"kind":      string(r.Kind),
			"due":       r.DueDate.Format(time.DateOnly),
			"status":    string(r.Status),
		})
	}
	s.log.Info("reminder sweep done", map[string]any{"total": len(items), "overdue": overdue})

	s.mu.Lock()
	s.last = items
	s.mu.Unlock()
	return items, nil
}

// Last devuelve el resultado del último barrido.
func (s *Sweeper) Last() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Reminder(nil), s.last...)
}

package scheduler

import (
	"context"
	"errors"
	"fmt"

	"leadcrm_backend/internal/email"
	"leadcrm_backend/internal/leads/repository"
	"leadcrm_backend/internal/settings"
	"leadcrm_backend/platform/config"
	"leadcrm_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WorkerConfig combines the queue settings with the fallback inbox that
// receives reminders when no digest recipient is configured.
type WorkerConfig interface {
	config.SchedulerConfig
	GetEmailFromAddress() string
}

type Worker struct {
	server      *asynq.Server
	mux         *asynq.ServeMux
	repo        *repository.Repository
	preferences *settings.Repository
	sender      email.Sender
	inbox       string
	log         *logger.Logger
}

func NewWorker(cfg WorkerConfig, pool *pgxpool.Pool, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:      server,
		mux:         mux,
		repo:        repository.New(pool),
		preferences: settings.NewRepository(pool),
		sender:      sender,
		inbox:       cfg.GetEmailFromAddress(),
		log:         log,
	}

	mux.HandleFunc(TaskFollowUpReminder, w.handleFollowUpReminder)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleFollowUpReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseFollowUpReminderPayload(task)
	if err != nil {
		return err
	}

	noteID, err := uuid.Parse(payload.NoteID)
	if err != nil {
		return err
	}

	note, err := w.repo.GetNote(ctx, noteID)
	if err != nil {
		// Notes deleted after scheduling are not an error.
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	if note.Completed || note.FollowUpDate == nil {
		return nil
	}

	lead, err := w.repo.GetByID(ctx, note.LeadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	recipient := w.reminderRecipient(ctx)
	if recipient == "" {
		w.log.Warn("no reminder recipient configured, skipping follow-up reminder", "noteId", payload.NoteID)
		return nil
	}

	dueDate := note.FollowUpDate.Format("2 January 2006")
	if err := w.sender.SendFollowUpReminderEmail(ctx, recipient, lead.Name, note.Content, dueDate); err != nil {
		w.log.NotificationFailure("followup_reminder", recipient, err)
		return err
	}

	return nil
}

// reminderRecipient prefers the digest recipient from notification
// preferences and falls back to the sending inbox.
func (w *Worker) reminderRecipient(ctx context.Context) string {
	prefs, err := w.preferences.GetNotificationPreferences(ctx)
	if err != nil {
		w.log.Warn("failed to load notification preferences", "error", err)
		return w.inbox
	}
	if prefs.DigestRecipient != "" {
		return prefs.DigestRecipient
	}
	return w.inbox
}

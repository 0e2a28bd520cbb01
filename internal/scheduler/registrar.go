package scheduler

import (
	"context"
	"time"

	"leadcrm_backend/internal/events"
	"leadcrm_backend/platform/logger"
)

// reminderHour is the local hour on the due date at which reminders fire.
const reminderHour = 8

// RegisterScheduling subscribes the reminder scheduler to follow-up events so
// a reminder task is enqueued whenever a note gains a due date. Enqueue
// failures are logged, never propagated to the publisher.
func RegisterScheduling(bus events.Bus, client ReminderScheduler, log *logger.Logger) {
	bus.Subscribe(events.FollowUpScheduled{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.FollowUpScheduled)
		if !ok {
			return nil
		}

		payload := FollowUpReminderPayload{
			NoteID: e.NoteID.String(),
			LeadID: e.LeadID.String(),
		}

		if err := client.ScheduleFollowUpReminder(ctx, payload, reminderTime(e.DueDate)); err != nil {
			log.Error("failed to schedule follow-up reminder", "noteId", payload.NoteID, "error", err)
		}
		return nil
	}))
}

// reminderTime pins the reminder to the morning of the due date. Dates in the
// past enqueue a task that asynq processes immediately.
func reminderTime(dueDate time.Time) time.Time {
	year, month, day := dueDate.Date()
	return time.Date(year, month, day, reminderHour, 0, 0, 0, dueDate.Location())
}

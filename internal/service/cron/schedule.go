package cron

import (
	"fmt"
	"time"

	cronlib "github.com/robfig/cron/v3"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// scheduleParser стандартные 5 полей и дескрипторы вида "@every 60s"
var scheduleParser = cronlib.NewParser(
	cronlib.Minute | cronlib.Hour | cronlib.Dom | cronlib.Month | cronlib.Dow | cronlib.Descriptor,
)

// parseSchedule разбирает расписание задачи
func parseSchedule(t *domain.CronTask) (cronlib.Schedule, error) {
	sched, err := scheduleParser.Parse(t.ScheduleSpec())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidSchedule, t.ScheduleSpec(), err)
	}
	return sched, nil
}

// nextRun время следующего запуска задачи
// Отсчёт идёт от последнего запуска, а для ещё не запускавшейся задачи от её создания.
// Одноразовая задача впервые запускается в NotBefore, после неудачи повторяется по расписанию
func nextRun(t *domain.CronTask, sched cronlib.Schedule) time.Time {
	if t.RunOnce && t.LastExecution == nil {
		if t.NotBefore != nil {
			return *t.NotBefore
		}
		return t.CreatedAt
	}

	base := t.CreatedAt
	if t.LastExecution != nil {
		base = *t.LastExecution
	}
	next := sched.Next(base)
	if t.NotBefore != nil && next.Before(*t.NotBefore) {
		return *t.NotBefore
	}
	return next
}

// isDue true, если задачу пора запускать в момент now
func isDue(t *domain.CronTask, sched cronlib.Schedule, now time.Time) bool {
	if !t.Active {
		return false
	}
	return !nextRun(t, sched).After(now)
}

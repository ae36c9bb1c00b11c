package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"core_site_echo/internal/models"
)

// Runner executes due scheduled tasks and records their history
type Runner struct {
	db       *gorm.DB
	registry *Registry
	now      func() time.Time
}

// NewRunner runs tasks from registry against db
func NewRunner(db *gorm.DB, registry *Registry) *Runner {
	return &Runner{db: db, registry: registry, now: time.Now}
}

// ProcessDue runs every active task whose due time has passed. The error reports
// tasks whose outcome could not be recorded; those may run again.
func (r *Runner) ProcessDue(ctx context.Context) error {
	log.Println("Checking for pending tasks...")

	var pendingTasks []models.ScheduledTask
	if err := r.db.WithContext(ctx).Where("status = ? AND due <= ?", models.ScheduledTaskStatusActive, r.now()).Order("due asc").Find(&pendingTasks).Error; err != nil {
		return fmt.Errorf("failed to fetch pending tasks: %w", err)
	}

	if len(pendingTasks) == 0 {
		log.Println("No pending tasks found.")
		return nil
	}

	log.Printf("Found %d pending tasks.", len(pendingTasks))

	var errs []error
	for _, task := range pendingTasks {
		if ctx.Err() != nil {
			break
		}
		if err := r.execute(ctx, task, 1); err != nil {
			log.Printf("Task %s (ID: %d) ran but was not recorded: %v", task.TaskName, task.ID, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// execute runs task and records the outcome. Only failures to record are returned.
func (r *Runner) execute(ctx context.Context, task models.ScheduledTask, attempt int) error {
	log.Printf("Processing task: %s (ID: %d, attempt %d)", task.TaskName, task.ID, attempt)

	if task.Arguments == nil {
		task.Arguments = make(map[string]interface{})
	}

	handler, found := r.registry.Get(task.TaskName)
	if !found {
		log.Printf("Task handler not found for: %s. Marking as failure.", task.TaskName)
		now := r.now()
		return errors.Join(
			r.updateTask(task, map[string]interface{}{
				"status":   models.ScheduledTaskStatusFailure,
				"last_run": &now,
			}),
			r.recordHistory(&models.ScheduledTaskHistory{
				ScheduledTaskID: task.ID,
				TaskName:        task.TaskName,
				RunAt:           now,
				Status:          "handler_not_found",
				AttemptNumber:   attempt,
				Arguments:       task.Arguments,
				Result:          map[string]interface{}{"error": "Handler not found"},
			}),
		)
	}

	startTime := r.now()
	result, err := handler(ctx, r.db, task)
	runtimeMs := int(r.now().Sub(startTime).Milliseconds())

	status := "success"
	if err != nil {
		status = "failure"
		result = map[string]interface{}{"error": err.Error()}
		log.Printf("Task %s failed: %v", task.TaskName, err)
	} else {
		log.Printf("Task %s completed successfully.", task.TaskName)
	}

	historyErr := r.recordHistory(&models.ScheduledTaskHistory{
		ScheduledTaskID: task.ID,
		TaskName:        task.TaskName,
		RunAt:           startTime,
		RuntimeMs:       runtimeMs,
		Status:          status,
		AttemptNumber:   attempt,
		Arguments:       task.Arguments,
		Result:          result,
	})

	if err != nil && attempt < task.MaxAttempt && ctx.Err() == nil {
		return errors.Join(historyErr, r.execute(ctx, task, attempt+1))
	}

	return errors.Join(historyErr, r.updateTask(task, nextState(task, err == nil, startTime)))
}

func (r *Runner) updateTask(task models.ScheduledTask, updates map[string]interface{}) error {
	if err := r.db.Model(&task).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	return nil
}

func (r *Runner) recordHistory(history *models.ScheduledTaskHistory) error {
	if err := r.db.Create(history).Error; err != nil {
		return fmt.Errorf("failed to record task history: %w", err)
	}
	return nil
}

// nextState computes the task columns to update after a run
func nextState(task models.ScheduledTask, succeeded bool, ranAt time.Time) map[string]interface{} {
	updates := map[string]interface{}{
		"last_run": &ranAt,
	}

	if task.TaskType == models.ScheduledTaskTypeRecurring {
		// recurring tasks keep their schedule even when one run fails
		nextDue := task.NextDue(ranAt)
		if nextDue.After(task.Due) {
			updates["status"] = models.ScheduledTaskStatusActive
			updates["due"] = nextDue
		} else {
			updates["status"] = models.ScheduledTaskStatusDone
		}
		return updates
	}

	if succeeded {
		updates["status"] = models.ScheduledTaskStatusDone
	} else {
		updates["status"] = models.ScheduledTaskStatusFailure
	}
	return updates
}

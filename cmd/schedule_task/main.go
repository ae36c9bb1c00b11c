package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"core_site_echo/internal/config"
	"core_site_echo/internal/models"
	"core_site_echo/internal/services"
	"core_site_echo/internal/tasks"
)

const defaultDigestRule = "FREQ=WEEKLY;BYDAY=MO;BYHOUR=8;BYMINUTE=0;BYSECOND=0"

func main() {
	// defined flags
	taskName := flag.String("task_name", "", "Name of the task (mandatory unless -digest)")
	argsStr := flag.String("arguments", "{}", "JSON arguments for the task")
	dueStr := flag.String("due", "", "Due date (mandatory, format: 2006-01-02 15:04 or RFC3339)")
	taskType := flag.String("tasktype", string(models.ScheduledTaskTypeOneTime), "Task type: onetime or recurring")
	recurring := flag.String("recurring", "", "Recurrence rule (RRULE), required for recurring tasks")
	maxAttempt := flag.Int("max_attempt", 3, "Max attempts")
	digest := flag.Bool("digest", false, "Schedule the recurring lead digest (uses -recurring or a weekly Monday 08:00 rule)")

	flag.Parse()

	// Validation
	if *dueStr == "" || (*taskName == "" && !*digest) {
		fmt.Println("Usage: schedule_task -task_name <name> -arguments <json_args> -due <YYYY-MM-DD HH:MM> [options]")
		fmt.Println("       schedule_task -digest -due <YYYY-MM-DD HH:MM> [-recurring <rrule>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	due, err := parseDue(*dueStr)
	if err != nil {
		log.Fatalf("Invalid due date format. Use '2006-01-02 15:04' (Local) or RFC3339: %v", err)
	}

	var task *models.ScheduledTask
	if *digest {
		rule := *recurring
		if rule == "" {
			rule = defaultDigestRule
		}
		task, err = (&tasks.LeadDigestTaskDef{}).CreateTask(due, rule)
	} else {
		var args map[string]interface{}
		if err := json.Unmarshal([]byte(*argsStr), &args); err != nil {
			log.Fatalf("Invalid JSON arguments: %v", err)
		}

		var recurringPtr *string
		if *recurring != "" {
			recurringPtr = recurring
		}
		task, err = tasks.BuildScheduledTask(*taskName, args, due, recurringPtr, models.ScheduledTaskType(*taskType), *maxAttempt)
	}
	if err != nil {
		log.Fatalf("Invalid task: %v", err)
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	// Init DB
	db, err := services.InitDB(cfg.DatabaseURL, false)
	if err != nil {
		log.Fatalf("Failed to connect DB: %v", err)
	}

	if err := db.Create(task).Error; err != nil {
		log.Fatalf("Failed to create task: %v", err)
	}

	fmt.Printf("Successfully created task ID: %d\n", task.ID)
	fmt.Printf("Task: %s\nDue: %s\nType: %s\n", task.TaskName, task.Due, task.TaskType)
	if task.RecurringInterval != nil {
		fmt.Printf("Next run after that: %s\n", task.NextDue(task.Due))
	}
}

// parseDue accepts RFC3339 or a local "2006-01-02 15:04"
func parseDue(value string) (time.Time, error) {
	if due, err := time.Parse(time.RFC3339, value); err == nil {
		return due, nil
	}
	return time.ParseInLocation("2006-01-02 15:04", value, time.Local)
}

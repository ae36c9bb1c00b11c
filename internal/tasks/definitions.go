package tasks

import (
	"core_site_echo/internal/services"
)

// Deps are the collaborators the lead tasks need
type Deps struct {
	Notifier         services.LeadNotifier
	Email            services.EmailSender
	DigestRecipients []string
}

// DefineTasks registers all available tasks
func DefineTasks(deps Deps) {
	RegisterHandler(LogInfoTask.TaskID(), LogInfoTask.HandleExecution)

	notify := &NotifySalesTaskDef{Notifier: deps.Notifier}
	RegisterHandler(notify.TaskID(), notify.HandleExecution)

	digest := &LeadDigestTaskDef{Email: deps.Email, Recipients: deps.DigestRecipients}
	RegisterHandler(digest.TaskID(), digest.HandleExecution)
}

package realtime

// Named realtime streams and events delivered to the operator console.
const (
	StreamAlerts = "alerts"

	// EventAlertTriggered carries the alert feed snapshot when the unread count
	// rises; the console plays its audible cue and updates the badge on receipt.
	EventAlertTriggered = "alert.triggered"

	// EventReminderDue announces a booking with a pickup inside the next hour.
	EventReminderDue = "reminder.due"

	// Notification log lifecycle events.
	EventNotificationCreated = "notification.created"
	EventNotificationRead    = "notification.read"
	EventNotificationDeleted = "notification.deleted"
)

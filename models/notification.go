package models

import "time"

// NotificationKind classifies a transient user-facing message.
type NotificationKind string

const (
	KindInfo    NotificationKind = "info"
	KindSuccess NotificationKind = "success"
	KindWarning NotificationKind = "warning"
	KindError   NotificationKind = "error"
)

// Notification is a transient user-facing message. IDs are time-based and
// strictly increasing; a notification is auto-removed after a fixed display
// duration unless dismissed earlier.
type Notification struct {
	ID        int64            `json:"id"`
	Message   string           `json:"message"`
	Kind      NotificationKind `json:"kind"`
	CreatedAt time.Time        `json:"createdAt"`
}

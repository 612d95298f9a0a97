package models

import "time"

// SettingsDocument is one persisted settings blob in Firestore.
type SettingsDocument struct {
	Key       string    `firestore:"key" json:"key"`
	Payload   string    `firestore:"payload" json:"payload"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

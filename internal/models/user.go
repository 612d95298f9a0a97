package models

// User is the dashboard owner's profile as supplied by the external profile
// collaborator. The rewards card renders progress from Points.
type User struct {
	UID          string `firestore:"uid" json:"uid"`
	Name         string `firestore:"name" json:"name"`
	Points       int    `firestore:"points" json:"points"`
	Ranking      int    `firestore:"ranking" json:"ranking"`
	Subscription string `firestore:"subscription,omitempty" json:"subscription,omitempty"` // "free","elite","master"
}

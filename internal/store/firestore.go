package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/widget-dashboard/internal/errs"
	"github.com/GregMSThompson/widget-dashboard/internal/models"
)

const settingsCollection = "dashboard_settings"

type firestoreBackend struct {
	client *firestore.Client
}

func NewFirestoreBackend(client *firestore.Client) *firestoreBackend {
	return &firestoreBackend{client: client}
}

func (b *firestoreBackend) Name() string { return "firestore" }

func (b *firestoreBackend) collection() *firestore.CollectionRef {
	return b.client.Collection(settingsCollection)
}

func (b *firestoreBackend) Get(ctx context.Context, key string) ([]byte, error) {
	doc, err := b.collection().Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("settings not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get settings", err)
	}
	var sd models.SettingsDocument
	if err := doc.DataTo(&sd); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse settings document", err)
	}
	return []byte(sd.Payload), nil
}

func (b *firestoreBackend) Put(ctx context.Context, key string, value []byte) error {
	sd := models.SettingsDocument{
		Key:       key,
		Payload:   string(value),
		UpdatedAt: time.Now(),
	}
	if _, err := b.collection().Doc(key).Set(ctx, sd); err != nil {
		return errs.NewDatabaseError("write", "failed to save settings", err)
	}
	return nil
}

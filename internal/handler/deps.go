package handler

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mo7amedAlaa/QuikChat/internal/app/chat"
	"github.com/mo7amedAlaa/QuikChat/internal/app/storage"
	"github.com/mo7amedAlaa/QuikChat/internal/app/store"
	"github.com/mo7amedAlaa/QuikChat/internal/configs"
)

// Datastore is the persistence surface the handlers depend on. *store.Store
// is the production implementation.
type Datastore interface {
	CreateUser(ctx context.Context, arg store.CreateUserParams) (store.User, error)
	GetUserByEmail(ctx context.Context, email string) (store.User, error)
	GetUserByID(ctx context.Context, id pgtype.UUID) (store.User, error)
	ListUsersExcept(ctx context.Context, id pgtype.UUID) ([]store.User, error)
	UpdateUserProfile(ctx context.Context, arg store.UpdateUserProfileParams) (store.User, error)

	CreateMessage(ctx context.Context, arg store.CreateMessageParams) (store.Message, error)
	ListConversation(ctx context.Context, a, b pgtype.UUID) ([]store.Message, error)
	MarkConversationSeen(ctx context.Context, senderID, receiverID pgtype.UUID) (int64, error)
	MarkMessageSeen(ctx context.Context, id pgtype.UUID) (store.Message, error)
	CountUnseenBySender(ctx context.Context, receiverID pgtype.UUID) (map[string]int64, error)
}

// AppDeps bundles the collaborators every handler needs.
type AppDeps struct {
	Hub     *chat.Hub
	Config  *configs.AppConfig
	Storage storage.StorageService
	Store   Datastore
}

// FullAssetURL resolves a stored object key to its public URL. Empty keys
// resolve to an empty string so absent images stay absent in responses.
func (d *AppDeps) FullAssetURL(key string) string {
	if key == "" {
		return ""
	}
	return d.Config.PublicAssetBaseURL + "/" + key
}

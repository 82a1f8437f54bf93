/*
Package handler: messaging endpoints (roster, conversation fetch, send,
seen-marking).
*/
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mo7amedAlaa/QuikChat/internal/app/chat"
	"github.com/mo7amedAlaa/QuikChat/internal/app/storage"
	"github.com/mo7amedAlaa/QuikChat/internal/app/store"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/auth/jwt"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/errs"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/logx"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/req"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/resp"
)

// MaxTextBytes is the maximum allowed size of message text.
const MaxTextBytes = 5000

// HandleRoster returns every other user together with the viewer's unseen
// message count per counterpart. Counts are recomputed from the seen flags
// on each call; this endpoint is the only authoritative source of unseen
// counts, they are never pushed over the live channel.
func HandleRoster(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var viewerUUID pgtype.UUID
		if err := viewerUUID.Scan(identity.ID); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		users, err := deps.Store.ListUsersExcept(r.Context(), viewerUUID)
		if err != nil {
			logx.Error(err, "roster: user listing failed", "viewer_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		counts, err := deps.Store.CountUnseenBySender(r.Context(), viewerUUID)
		if err != nil {
			logx.Error(err, "roster: unseen count aggregation failed", "viewer_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		userViews := make([]UserView, 0, len(users))
		for _, u := range users {
			userViews = append(userViews, deps.userView(u))
		}

		resp.RespondSuccess(w, r, map[string]any{
			"users":          userViews,
			"unseenMessages": counts,
		})
	}
}

// HandleGetConversation returns the full two-way message history with the
// counterpart in creation-time order, then bulk-marks every unseen message
// from that counterpart as seen — opening a thread is what consumes its
// unseen count.
func HandleGetConversation(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var viewerUUID pgtype.UUID
		if err := viewerUUID.Scan(identity.ID); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var counterpartUUID pgtype.UUID
		if err := counterpartUUID.Scan(chi.URLParam(r, "id")); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if _, err := deps.Store.GetUserByID(r.Context(), counterpartUUID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}
			logx.Error(err, "conversation: counterpart lookup failed", "counterpart_id", chi.URLParam(r, "id"))
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		messages, err := deps.Store.ListConversation(r.Context(), viewerUUID, counterpartUUID)
		if err != nil {
			logx.Error(err, "conversation: fetch failed", "viewer_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if _, err := deps.Store.MarkConversationSeen(r.Context(), counterpartUUID, viewerUUID); err != nil {
			// The fetch already succeeded; losing the seen update only
			// delays the count reset until the next open.
			logx.Error(err, "conversation: bulk seen-marking failed", "viewer_id", identity.ID)
		}

		events := make([]chat.MessageEvent, 0, len(messages))
		for _, m := range messages {
			events = append(events, deps.messageEvent(m))
		}

		resp.RespondSuccess(w, r, map[string]any{
			"messages": events,
		})
	}
}

type SendMessageInput struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

// HandleSendMessage validates, persists, and then routes a new message.
// Persistence is the durability guarantee and always completes first; the
// live push is attempted afterwards and its outcome never affects the
// response.
func HandleSendMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var senderUUID pgtype.UUID
		if err := senderUUID.Scan(identity.ID); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var receiverUUID pgtype.UUID
		if err := receiverUUID.Scan(chi.URLParam(r, "id")); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if _, err := deps.Store.GetUserByID(r.Context(), receiverUUID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrRecipientNotFound))
				return
			}
			logx.Error(err, "send: receiver lookup failed", "receiver_id", chi.URLParam(r, "id"))
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		var input SendMessageInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.Text == "" && input.Image == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrMessageEmpty))
			return
		}

		if len(input.Text) > MaxTextBytes {
			resp.RespondError(w, r, errs.NewError(errs.ErrMessageTooLong))
			return
		}

		var imageKey string
		if input.Image != "" {
			img, imgErr := storage.ParseImageDataURI(input.Image)
			if imgErr != nil {
				resp.RespondError(w, r, imgErr)
				return
			}

			imageKey = fmt.Sprintf("messages/%s%s", uuid.New().String(), img.Ext)

			uploadCtx, cancel := context.WithTimeout(r.Context(), storage.UploadTimeout)
			defer cancel()

			if err := deps.Storage.Upload(uploadCtx, imageKey, img.MimeType, img.Data); err != nil {
				resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
				return
			}
		}

		message, err := deps.Store.CreateMessage(r.Context(), store.CreateMessageParams{
			SenderID:   senderUUID,
			ReceiverID: receiverUUID,
			Body:       input.Text,
			ImageKey:   imageKey,
		})
		if err != nil {
			// Nothing was recorded; the client may safely retry.
			logx.Error(err, "send: message persistence failed", "sender_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		event := deps.messageEvent(message)
		deps.Hub.Deliver(event)

		resp.RespondSuccess(w, r, map[string]any{
			"message": event,
		})
	}
}

// HandleMarkSeen flips a single message to seen. Clients call this when a
// pushed message lands in the thread they are actively viewing. Marking an
// already-seen message succeeds without change.
func HandleMarkSeen(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var messageUUID pgtype.UUID
		if err := messageUUID.Scan(chi.URLParam(r, "id")); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		message, err := deps.Store.MarkMessageSeen(r.Context(), messageUUID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrMessageNotFound))
				return
			}
			logx.Error(err, "mark_seen: update failed", "message_id", chi.URLParam(r, "id"))
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"message": deps.messageEvent(message),
		})
	}
}

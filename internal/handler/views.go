package handler

import (
	"time"

	"github.com/mo7amedAlaa/QuikChat/internal/app/chat"
	"github.com/mo7amedAlaa/QuikChat/internal/app/store"
)

// UserView is the sanitized account shape returned to clients. The password
// hash never leaves the store layer's own consumers.
type UserView struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Bio        string    `json:"bio,omitempty"`
	ProfilePic string    `json:"profilePic,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (d *AppDeps) userView(u store.User) UserView {
	return UserView{
		ID:         u.ID.String(),
		Email:      u.Email,
		FullName:   u.FullName,
		Bio:        u.Bio,
		ProfilePic: d.FullAssetURL(u.AvatarKey),
		CreatedAt:  u.CreatedAt,
	}
}

// messageEvent converts a persisted message row into the wire shape shared
// by REST responses and newMessage pushes.
func (d *AppDeps) messageEvent(m store.Message) chat.MessageEvent {
	return chat.MessageEvent{
		ID:         m.ID.String(),
		SenderID:   m.SenderID.String(),
		ReceiverID: m.ReceiverID.String(),
		Text:       m.Body,
		Image:      d.FullAssetURL(m.ImageKey),
		Seen:       m.Seen,
		CreatedAt:  m.CreatedAt,
	}
}

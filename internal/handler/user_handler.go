package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mo7amedAlaa/QuikChat/internal/app/storage"
	"github.com/mo7amedAlaa/QuikChat/internal/app/store"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/auth/jwt"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/errs"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/logx"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/req"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/resp"
)

type UpdateProfileInput struct {
	FullName   string  `json:"fullName"`
	Bio        *string `json:"bio"`
	ProfilePic string  `json:"profilePic"`
}

// HandleUpdateProfile applies a partial profile update. A profile picture
// arrives as a base64 data URI and is uploaded before the row is written;
// the previous avatar object is deleted asynchronously once replaced.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input UpdateProfileInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var userUUID pgtype.UUID
		if err := userUUID.Scan(identity.ID); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		oldUser, err := deps.Store.GetUserByID(r.Context(), userUUID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			return
		}

		var avatarKey string
		if input.ProfilePic != "" {
			img, imgErr := storage.ParseImageDataURI(input.ProfilePic)
			if imgErr != nil {
				resp.RespondError(w, r, imgErr)
				return
			}

			avatarKey = fmt.Sprintf("avatars/%s%s", uuid.New().String(), img.Ext)

			uploadCtx, cancel := context.WithTimeout(r.Context(), storage.UploadTimeout)
			defer cancel()

			if err := deps.Storage.Upload(uploadCtx, avatarKey, img.MimeType, img.Data); err != nil {
				resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
				return
			}
		}

		updatedUser, err := deps.Store.UpdateUserProfile(r.Context(), store.UpdateUserProfileParams{
			ID:        userUUID,
			FullName:  input.FullName,
			SetBio:    input.Bio != nil,
			Bio:       derefOrEmpty(input.Bio),
			AvatarKey: avatarKey,
		})
		if err != nil {
			logx.Error(err, "update_profile: database update failed", "user_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		oldKey := oldUser.AvatarKey
		if avatarKey != "" && oldKey != "" && oldKey != avatarKey {
			go func(k string) {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = deps.Storage.Delete(ctx, k)
			}(oldKey)
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user": deps.userView(updatedUser),
		})
	}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

/*
Package handler: authentication endpoints (signup, login, session check).
*/
package handler

import (
	"errors"
	"net/http"
	"regexp"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/crypto/bcrypt"

	"github.com/mo7amedAlaa/QuikChat/internal/app/db"
	"github.com/mo7amedAlaa/QuikChat/internal/app/store"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/auth/jwt"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/errs"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/logx"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/req"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/resp"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type SignUpInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Bio      string `json:"bio"`
}

// HandleSignUp creates a new account and issues an identity token.
func HandleSignUp(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input SignUpInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.Email == "" || input.Password == "" || input.FullName == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrMissingFields))
			return
		}

		if !emailRegex.MatchString(input.Email) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidEmail))
			return
		}

		passwordLen := utf8.RuneCountInString(input.Password)
		if passwordLen < 6 || passwordLen > 50 {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidPassword))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		user, err := deps.Store.CreateUser(r.Context(), store.CreateUserParams{
			Email:        input.Email,
			FullName:     input.FullName,
			Bio:          input.Bio,
			PasswordHash: string(hashedPassword),
		})

		if err != nil {
			if db.IsUniqueViolation(err) {
				logx.Warn("signup conflict: email already registered", "email", input.Email)
				resp.RespondError(w, r, errs.NewError(errs.ErrUserAlreadyExists))
				return
			}

			logx.Error(err, "failed to create user in database")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		payload := &jwt.Payload{
			ID:    user.ID.String(),
			Email: user.Email,
		}

		tokenString, err := jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.UserIdentityExpiration)
		if err != nil {
			logx.Error(err, "failed to generate token after signup")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": tokenString,
			"user":  deps.userView(user),
		})
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and issues an identity token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.Email == "" || input.Password == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrMissingFields))
			return
		}

		user, err := deps.Store.GetUserByEmail(r.Context(), input.Email)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				logx.Error(err, "login: user fetch failed", "email", input.Email)
			}
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
			logx.Warn("login: password mismatch", "email", input.Email)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		payload := &jwt.Payload{
			ID:    user.ID.String(),
			Email: user.Email,
		}

		tokenString, err := jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.UserIdentityExpiration)
		if err != nil {
			logx.Error(err, "login: jwt generation failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": tokenString,
			"user":  deps.userView(user),
		})
	}
}

// HandleCheckAuth returns the current authenticated user, letting clients
// restore a session from a stored token.
func HandleCheckAuth(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var userUUID pgtype.UUID
		if err := userUUID.Scan(identity.ID); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		user, err := deps.Store.GetUserByID(r.Context(), userUUID)
		if err != nil {
			logx.Warn("check_auth: user not found", "id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user": deps.userView(user),
		})
	}
}

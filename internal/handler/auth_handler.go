package handler

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"geopolitik/internal/app/db"
	"geopolitik/internal/app/user"
	"geopolitik/internal/pkg/auth/jwt"
	"geopolitik/internal/pkg/errs"
	"geopolitik/internal/pkg/logx"
	"geopolitik/internal/pkg/randx"
	"geopolitik/internal/pkg/req"
	"geopolitik/internal/pkg/resp"
)

const (
	minPasswordLen = 6

	// bcrypt ignores input beyond 72 bytes.
	maxPasswordBytes = 72
)

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HandleRegister creates an account. It does not log the user in.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input RegisterInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		email := normalizeEmail(input.Email)
		name := strings.TrimSpace(input.Name)

		var missing []string
		if email == "" {
			missing = append(missing, "email")
		}
		if input.Password == "" {
			missing = append(missing, "password")
		}
		if name == "" {
			missing = append(missing, "name")
		}
		if len(missing) > 0 {
			resp.RespondError(w, r, errs.NewError(errs.ErrMissingFields, strings.Join(missing, ", ")))
			return
		}

		if _, err := mail.ParseAddress(email); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}
		if utf8.RuneCountInString(input.Password) < minPasswordLen || len(input.Password) > maxPasswordBytes {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		u := &user.User{
			ID:           randx.ID(),
			Email:        email,
			PasswordHash: string(hashedPassword),
			Name:         name,
			CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
		}
		if err := deps.Users.CreateUser(r.Context(), u); err != nil {
			if errors.Is(err, db.ErrDuplicate) {
				logx.Ctx(r.Context()).Warn().Msg("Registration conflict: email already in use.")
				resp.RespondError(w, r, errs.NewError(errs.ErrEmailInUse))
				return
			}
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		resp.RespondCreated(w, r, map[string]any{
			"user": u.Profile(deps.FullAssetURL),
		})
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and issues a 7-day identity token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		email := normalizeEmail(input.Email)
		if email == "" || input.Password == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrMissingFields, "email, password"))
			return
		}

		u, err := deps.Users.GetUserByEmail(r.Context(), email)
		if err != nil {
			if !errors.Is(err, db.ErrNotFound) {
				resp.RespondError(w, r, errs.Internal(err))
				return
			}
			logx.Ctx(r.Context()).Warn().Msg("Login: unknown email.")
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
			logx.Ctx(r.Context()).Warn().Str("user_id", u.ID).Msg("Login: password mismatch.")
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		token, err := issueIdentity(deps, u)
		if err != nil {
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": token,
			"user":  u.Profile(deps.FullAssetURL),
		})
	}
}

func issueIdentity(deps *AppDeps, u *user.User) (string, error) {
	payload := &jwt.Payload{ID: u.ID, Email: u.Email, Name: u.Name}
	return jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.UserIdentityExpiration)
}

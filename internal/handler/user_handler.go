package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"geopolitik/internal/app/db"
	"geopolitik/internal/app/storage"
	"geopolitik/internal/app/user"
	"geopolitik/internal/pkg/auth/jwt"
	"geopolitik/internal/pkg/errs"
	"geopolitik/internal/pkg/logx"
	"geopolitik/internal/pkg/req"
	"geopolitik/internal/pkg/resp"
)

// loadUser fetches the account behind the request's identity.
func loadUser(deps *AppDeps, r *http.Request) (*user.User, *errs.CustomError) {
	identity := jwt.GetPayloadFromContext(r)
	if identity == nil {
		return nil, errs.NewError(errs.ErrUnauthorized)
	}

	u, err := deps.Users.GetUserByID(r.Context(), identity.ID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, errs.NewError(errs.ErrUserNotFound)
	}
	if err != nil {
		return nil, errs.Internal(err)
	}
	return u, nil
}

// HandleGetProfile returns the authenticated user's profile.
func HandleGetProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, customErr := loadUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		resp.RespondSuccess(w, r, map[string]any{"user": u.Profile(deps.FullAssetURL)})
	}
}

type UpdateProfileInput struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// HandleUpdateProfile changes the display name and avatar, then re-issues the
// identity token so the new name reaches nation and chat records.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input UpdateProfileInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		name := strings.TrimSpace(input.Name)
		if name == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrMissingFields, "name"))
			return
		}

		oldUser, customErr := loadUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		avatarKey := deps.NormalizeAssetKey(input.Avatar)
		if avatarKey != "" && avatarKey != oldUser.Avatar {
			if customErr := checkAvatarObject(r.Context(), deps, oldUser.ID, avatarKey); customErr != nil {
				resp.RespondError(w, r, customErr)
				return
			}
		}

		updated, err := deps.Users.UpdateUserProfile(r.Context(), oldUser.ID, name, avatarKey)
		if err != nil {
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		if oldKey := oldUser.Avatar; oldKey != "" && oldKey != avatarKey && deps.Storage != nil {
			go func(k string) {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := deps.Storage.Delete(ctx, k); err != nil {
					logx.Warn("update_profile: failed to delete old avatar", "key", k, "error", err.Error())
				}
			}(oldKey)
		}

		data := map[string]any{"user": updated.Profile(deps.FullAssetURL)}

		token, err := issueIdentity(deps, updated)
		if err != nil {
			logx.Error(err, "update_profile: token generation failed, client keeps the old token")
		} else {
			data["token"] = token
		}

		resp.RespondSuccess(w, r, data)
	}
}

// checkAvatarObject verifies a new avatar key belongs to the user and was actually uploaded.
func checkAvatarObject(ctx context.Context, deps *AppDeps, userID, key string) *errs.CustomError {
	if !storage.IsUserAvatarKey(userID, key) {
		return errs.NewError(errs.ErrFileInvalid)
	}
	if deps.Storage == nil {
		return errs.NewError(errs.ErrFileStorageFailed)
	}

	info, err := deps.Storage.Stat(ctx, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return errs.NewError(errs.ErrFileInvalid)
	}
	if err != nil {
		return errs.NewError(errs.ErrFileStorageFailed, err)
	}
	if info.Size > storage.MaxAvatarSize {
		return errs.NewError(errs.ErrFileSizeTooLarge)
	}
	return nil
}

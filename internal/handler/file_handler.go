package handler

import (
	"net/http"

	"geopolitik/internal/app/storage"
	"geopolitik/internal/pkg/auth/jwt"
	"geopolitik/internal/pkg/errs"
	"geopolitik/internal/pkg/req"
	"geopolitik/internal/pkg/resp"
)

// PresignAvatarInput describes the file the client is about to upload.
type PresignAvatarInput struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	FileSize int64  `json:"fileSize"`
}

// HandlePresignAvatar returns a short-lived PUT URL for a new avatar under the user's prefix.
func HandlePresignAvatar(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)

		var input PresignAvatarInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := storage.ValidateAvatar(input.FileName, input.MimeType, input.FileSize); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if deps.Storage == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		fileKey := storage.AvatarKey(identity.ID, input.FileName)
		url, err := deps.Storage.PresignUpload(r.Context(), fileKey, input.MimeType, input.FileSize, storage.PresignedURLDuration)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed, err))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"presignedUrl": url,
			"fileKey":      fileKey,
		})
	}
}

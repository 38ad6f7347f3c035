package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"geopolitik/internal/pkg/errs"
	"geopolitik/internal/pkg/randx"
)

const (
	// MaxAvatarSizeMB is the largest avatar accepted, in megabytes.
	MaxAvatarSizeMB = 5

	// MaxAvatarSize is MaxAvatarSizeMB in bytes.
	MaxAvatarSize = MaxAvatarSizeMB * 1024 * 1024

	// PresignedURLDuration is how long an upload URL stays valid.
	PresignedURLDuration = 5 * time.Minute

	avatarPrefix = "avatars/"
)

// extToMIME lists the accepted image extensions and the MIME type each must be uploaded as.
var extToMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// ValidateAvatar checks the declared name, type and size of an avatar upload.
func ValidateAvatar(fileName, mimeType string, fileSize int64) *errs.CustomError {
	if fileSize <= 0 {
		return errs.NewError(errs.ErrInvalidParams)
	}
	if fileSize > MaxAvatarSize {
		return errs.NewError(errs.ErrFileSizeTooLarge)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	expected, ok := extToMIME[ext]
	if !ok || expected != strings.ToLower(mimeType) {
		return errs.NewError(errs.ErrFileInvalid)
	}
	return nil
}

// AvatarKey returns a fresh object key under the user's avatar prefix.
func AvatarKey(userID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s%s/%s%s", avatarPrefix, userID, randx.ID(), ext)
}

// IsUserAvatarKey reports whether key lies under userID's avatar prefix.
func IsUserAvatarKey(userID, key string) bool {
	prefix := avatarPrefix + userID + "/"
	return userID != "" && strings.HasPrefix(key, prefix) && len(key) > len(prefix) && !strings.Contains(key, "..")
}

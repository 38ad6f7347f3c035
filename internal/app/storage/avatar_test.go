package storage

import (
	"strings"
	"testing"

	"geopolitik/internal/pkg/errs"
)

func TestValidateAvatar(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mimeType string
		size     int64
		wantCode int
	}{
		{"png ok", "me.png", "image/png", 1024, 0},
		{"uppercase ext", "ME.JPG", "image/jpeg", 1024, 0},
		{"zero size", "me.png", "image/png", 0, errs.ErrInvalidParams},
		{"too large", "me.png", "image/png", MaxAvatarSize + 1, errs.ErrFileSizeTooLarge},
		{"exact limit", "me.webp", "image/webp", MaxAvatarSize, 0},
		{"mismatched mime", "me.png", "image/jpeg", 1024, errs.ErrFileInvalid},
		{"not an image", "notes.txt", "text/plain", 1024, errs.ErrFileInvalid},
		{"no extension", "avatar", "image/png", 1024, errs.ErrFileInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateAvatar(tt.fileName, tt.mimeType, tt.size)
			if tt.wantCode == 0 {
				if got != nil {
					t.Fatalf("ValidateAvatar() = %v, want nil", got)
				}
				return
			}
			if got == nil || got.Code != tt.wantCode {
				t.Fatalf("ValidateAvatar() = %v, want code %d", got, tt.wantCode)
			}
		})
	}
}

func TestAvatarKey(t *testing.T) {
	key := AvatarKey("u1", "Face.PNG")
	if !strings.HasPrefix(key, "avatars/u1/") || !strings.HasSuffix(key, ".png") {
		t.Fatalf("AvatarKey() = %q", key)
	}
	if !IsUserAvatarKey("u1", key) {
		t.Errorf("IsUserAvatarKey(u1, %q) = false", key)
	}
	if IsUserAvatarKey("u2", key) {
		t.Errorf("IsUserAvatarKey(u2, %q) = true", key)
	}
	if IsUserAvatarKey("u1", "avatars/u1/../u2/x.png") {
		t.Error("path traversal accepted")
	}
	if IsUserAvatarKey("u1", "avatars/u1/") {
		t.Error("bare prefix accepted")
	}
}

func TestPublicURL(t *testing.T) {
	withBase := Config{PublicBaseURL: "https://cdn.example.com", Endpoint: "https://s3.example.com", BucketName: "b"}
	if got := publicURL(withBase, "avatars/u1/a.png"); got != "https://cdn.example.com/avatars/u1/a.png" {
		t.Errorf("publicURL() = %q", got)
	}

	pathStyle := Config{Endpoint: "https://s3.example.com/", BucketName: "b"}
	if got := publicURL(pathStyle, "avatars/u1/a.png"); got != "https://s3.example.com/b/avatars/u1/a.png" {
		t.Errorf("publicURL() = %q", got)
	}

	if got := publicURL(withBase, ""); got != "" {
		t.Errorf("publicURL(empty) = %q", got)
	}
}

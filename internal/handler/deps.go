package handler

import (
	"strings"

	"geopolitik/internal/app/chat"
	"geopolitik/internal/app/lobby"
	"geopolitik/internal/app/storage"
	"geopolitik/internal/app/user"
	"geopolitik/internal/configs"
)

// AppDeps bundles everything the handlers need.
type AppDeps struct {
	Config *configs.AppConfig
	Users  user.Repository
	Lobby  *lobby.Service
	Chat   *chat.Service

	// Storage is nil when object storage is not configured.
	Storage storage.Service
}

// FullAssetURL turns a stored object key into a browser URL. Absolute URLs pass through.
func (d *AppDeps) FullAssetURL(key string) string {
	if key == "" || strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") || d.Storage == nil {
		return key
	}
	return d.Storage.PublicURL(key)
}

// NormalizeAssetKey strips the public URL prefix from an asset reference, leaving the object key.
func (d *AppDeps) NormalizeAssetKey(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || d.Storage == nil {
		return ref
	}
	if base := d.Storage.PublicURL("x"); strings.HasSuffix(base, "/x") {
		ref = strings.TrimPrefix(ref, strings.TrimSuffix(base, "x"))
	}
	return strings.TrimLeft(ref, "/")
}

package providers

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// StreamProvider defines the interface for live-stream sources
type StreamProvider interface {
	// ResolveUserID maps a login to the provider's stable user id
	ResolveUserID(ctx context.Context, login string) (string, error)

	// GetUserByLogin returns nil, nil when no such user exists
	GetUserByLogin(ctx context.Context, login string) (*StreamUser, error)

	GetUserByID(ctx context.Context, userID string) (*StreamUser, error)

	// GetStream returns nil, nil when the user is offline
	GetStream(ctx context.Context, userID string) (*Stream, error)

	// GetProviderType returns the provider type identifier
	GetProviderType() string
}

// StreamUser is a channel profile
type StreamUser struct {
	ID              string `json:"id"`
	Login           string `json:"login"`
	DisplayName     string `json:"display_name"`
	ProfileImageURL string `json:"profile_image_url"`
}

// ChannelURL is the public page of the channel
func (u StreamUser) ChannelURL() string {
	return "https://twitch.tv/" + u.Login
}

// Stream is a live broadcast
type Stream struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	UserLogin    string    `json:"user_login"`
	UserName     string    `json:"user_name"`
	GameName     string    `json:"game_name"`
	Title        string    `json:"title"`
	ViewerCount  int       `json:"viewer_count"`
	StartedAt    time.Time `json:"started_at"`
	ThumbnailURL string    `json:"thumbnail_url"`
}

// Thumbnail fills the {width}x{height} template of the thumbnail url.
func (s Stream) Thumbnail(width, height int) string {
	if s.ThumbnailURL == "" {
		return ""
	}
	return strings.NewReplacer(
		"{width}", strconv.Itoa(width),
		"{height}", strconv.Itoa(height),
	).Replace(s.ThumbnailURL)
}

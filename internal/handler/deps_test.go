package handler

import (
	"testing"

	"github.com/mo7amedAlaa/QuikChat/internal/configs"
)

func TestFullAssetURL(t *testing.T) {
	deps := &AppDeps{
		Config: &configs.AppConfig{
			PublicAssetBaseURL: "https://cdn.example.com/quikchat-media",
		},
	}

	if got := deps.FullAssetURL("avatars/abc.png"); got != "https://cdn.example.com/quikchat-media/avatars/abc.png" {
		t.Errorf("FullAssetURL = %q", got)
	}

	if got := deps.FullAssetURL(""); got != "" {
		t.Errorf("FullAssetURL(\"\") = %q, want empty string", got)
	}
}

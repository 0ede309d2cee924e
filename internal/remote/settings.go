package remote

import (
	"context"
	"net/http"
)

// UserSettings is the subset of the user settings document used here.
type UserSettings struct {
	SyncViewPreferences bool `json:"sync_view_preferences"`
}

// GetUserSettings fetches the settings of the authenticated user.
func (c *Client) GetUserSettings(ctx context.Context) (*UserSettings, error) {
	settings, err := do[UserSettings](ctx, c, c.reads, http.MethodGet, "/user/setting", nil)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

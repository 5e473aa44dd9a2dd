package transfer

// TokenGrant is the raw payload a platform's token endpoint returns on
// exchange or refresh. RefreshToken and ExpiresIn are absent on platforms
// that do not issue them.
type TokenGrant struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
}

// Profile identifies the connected account on the platform's side.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// PostResult is the normalized outcome of a publish attempt. It is returned
// to the caller as-is and never persisted.
type PostResult struct {
	Success  bool   `json:"success"`
	Platform string `json:"platform"`
	PostID   string `json:"post_id,omitempty"`
	Error    string `json:"error,omitempty"`
	Message  string `json:"message"`
}

type AuthorizationRequest struct {
	AuthorizationURL string `json:"authorization_url"`
	Platform         string `json:"platform"`
}

type ConnectedAccount struct {
	Username    string  `json:"username"`
	ConnectedAt string  `json:"connected_at"`
	ExpiresAt   *string `json:"expires_at"`
}

type PlatformStatus struct {
	Platforms         map[string]bool             `json:"platforms"`
	ConnectedAccounts map[string]ConnectedAccount `json:"connected_accounts"`
	ConnectedCount    int                         `json:"connected_count"`
	TotalPlatforms    int                         `json:"total_platforms"`
}

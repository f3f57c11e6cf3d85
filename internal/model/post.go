package model

// Post is a server-side trade post. Computed fields are produced by the
// backend and read-only here; exact amounts may be withheld until the viewer
// has tipped.
type Post struct {
	ID              int64   `json:"id"`
	Username        string  `json:"username"`
	TxHash          string  `json:"tx_hash"`
	Content         string  `json:"content"`
	TokenIn         string  `json:"token_in"`
	TokenOut        string  `json:"token_out"`
	AmountIn        string  `json:"amount_in"`
	AmountOut       string  `json:"amount_out"`
	EntryPrice      float64 `json:"entry_price"`
	CurrentPrice    float64 `json:"current_price"`
	ExitPrice       float64 `json:"exit_price"`
	PnL             float64 `json:"pnl"`
	TotalTips       string  `json:"total_tips"`
	TipCount        int     `json:"tip_count"`
	ViewerHasTipped bool    `json:"viewer_has_tipped"`
	CreatedAt       string  `json:"created_at"`
}

// User is the backend account bound to a wallet address.
type User struct {
	Username      string `json:"username"`
	WalletAddress string `json:"wallet_address"`
	IsNew         bool   `json:"is_new"`
}

// Tip is a recorded tip on a post.
type Tip struct {
	ID            int64  `json:"id"`
	PostID        int64  `json:"post_id"`
	TipperAddress string `json:"tipper_address"`
	Amount        string `json:"amount"`
	TxHash        string `json:"tx_hash"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

// TipSummary aggregates tips received by a user.
type TipSummary struct {
	Username      string `json:"username"`
	TotalReceived string `json:"total_received"`
	TipCount      int    `json:"tip_count"`
	RecentTips    []Tip  `json:"recent_tips"`
}

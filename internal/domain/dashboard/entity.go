package dashboard

// Summary is the landing-page block for a caller's scope. BCFBalance and
// ActiveTerminals are live figures; the revenue numbers are placeholder
// aggregates until the reporting pipeline lands.
type Summary struct {
	Scope           string `json:"scope"`
	BCFBalance      int64  `json:"bcf_balance"`
	ActiveTerminals int    `json:"active_terminals"`
	Turnover        int64  `json:"turnover"`
	GGR             int64  `json:"ggr"`
	NetCash         int64  `json:"net_cash"`
}

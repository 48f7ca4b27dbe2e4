package dto

// ChartResponse represents the JSON response from the
// inquire-daily-itemchartprice endpoint. All numeric fields arrive as strings.
type ChartResponse struct {
	RtCd    string     `json:"rt_cd"` // "0" on success
	MsgCd   string     `json:"msg_cd"`
	Msg1    string     `json:"msg1"`
	Output2 []ChartBar `json:"output2"`
}

// ChartBar is one OHLCV row in upstream order (most recent first).
type ChartBar struct {
	Date   string `json:"stck_bsop_date"` // business date, YYYYMMDD
	Open   string `json:"stck_oprc"`
	High   string `json:"stck_hgpr"`
	Low    string `json:"stck_lwpr"`
	Close  string `json:"stck_clpr"`
	Volume string `json:"acml_vol"` // accumulated volume
}

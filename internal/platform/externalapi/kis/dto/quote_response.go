package dto

// QuoteResponse represents the JSON response from the inquire-price endpoint.
type QuoteResponse struct {
	RtCd   string      `json:"rt_cd"`
	Msg1   string      `json:"msg1"`
	Output QuoteOutput `json:"output"`
}

// QuoteOutput carries the current-price snapshot for one symbol.
type QuoteOutput struct {
	Name         string `json:"hts_kor_isnm"` // Korean listing name
	CurrentPrice string `json:"stck_prpr"`
	PriceChange  string `json:"prdy_vrss"`
	ChangeRate   string `json:"prdy_ctrt"`
	OpenPrice    string `json:"stck_oprc"`
	HighPrice    string `json:"stck_hgpr"`
	LowPrice     string `json:"stck_lwpr"`
	Volume       string `json:"acml_vol"`
}

package model

// Coin identifies a tradable asset tracked by the application.
// Symbol is the stable identity key across the system; CoingeckoID is the
// lookup key for the external price oracle.
type Coin struct {
	ID          string `json:"id"`
	Symbol      string `json:"symbol"`
	CoingeckoID string `json:"coingeckoId"`
	Name        string `json:"name"`
}

package request

type StoreOracleKeyRequest struct {
	APIKey string `json:"apiKey"`
}

package dto

type FieldRequest struct {
	Name               string   `json:"name"`
	Address            string   `json:"address"`
	Lat                float64  `json:"lat"`
	Lng                float64  `json:"lng"`
	HourlyRate         float64  `json:"hourly_rate"`
	CancellationFeePct int      `json:"cancellation_fee_pct"`
	PixKey             string   `json:"pix_key"`
	PixName            string   `json:"pix_name"`
	PixBank            string   `json:"pix_bank"`
	Courts             []string `json:"courts"`
	Phone              string   `json:"phone"`
}

type UploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

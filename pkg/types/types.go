package types

type TextReq struct {
	Text string `json:"text"`
}

type EmotionResp struct {
	Emotion string `json:"emotion"`
}

type AudioReq struct {
	DataBase64 string `json:"data_base64"`
}

type TranscribeResp struct {
	Text string `json:"text"`
}

type HazardResp struct {
	Event   string `json:"event"`
	Urgency string `json:"urgency"`
}

type DescribeReq struct {
	DataBase64 string `json:"data_base64"`
}

type DescribeResp struct {
	Description string `json:"description"`
}

type SignReq struct {
	Landmarks []float64 `json:"landmarks"`
}

type SignResp struct {
	Gesture string `json:"gesture"`
}

type HealthResp struct {
	Status        string `json:"status"`
	Accelerator   bool   `json:"accelerator"`
	SignActive    bool   `json:"sign_active"`
	StreamClients int    `json:"stream_clients"`
}

type PredictionResp struct {
	ID         string  `json:"id"`
	Modality   string  `json:"modality"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	CreatedAt  string  `json:"created_at"`
}

type PredictionListResp struct {
	Predictions []PredictionResp `json:"predictions"`
}

package config

import "os"

type Config struct {
	Port            string
	SignModelPath   string
	SignMetaPath    string
	EmotionModelDir string
	SpeechBaseURL   string
	HazardBaseURL   string
	GeminiAPIKey    string
	CaptionModel    string
	DBPath          string
	LogPath         string
	Accelerator     bool
}

func Load() Config {
	return Config{
		Port:            getenv("PORT", "8080"),
		SignModelPath:   getenv("SIGN_MODEL_PATH", "models/sign_lstm.json"),
		SignMetaPath:    getenv("SIGN_META_PATH", "models/sign_meta.json"),
		EmotionModelDir: getenv("EMOTION_MODEL_DIR", ""),
		SpeechBaseURL:   getenv("SPEECH_BASE_URL", ""),
		HazardBaseURL:   getenv("HAZARD_BASE_URL", ""),
		GeminiAPIKey:    getenv("GEMINI_API_KEY", ""),
		CaptionModel:    getenv("CAPTION_MODEL", "gemini-2.0-flash"),
		DBPath:          getenv("DB_PATH", "sensemesh.db"),
		LogPath:         getenv("LOG_PATH", ""),
		Accelerator:     os.Getenv("ACCELERATOR") == "1",
	}
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

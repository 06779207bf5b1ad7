package models

// ParseResponse is the envelope for POST /api/parse.
type ParseResponse struct {
	Success  bool        `json:"success"`
	Data     JSONPayload `json:"data"`
	Cached   bool        `json:"cached"`
	FileHash string      `json:"file_hash"`
}

// ScreenResponse is the envelope for POST /api/screen.
type ScreenResponse struct {
	Success     bool        `json:"success"`
	Data        ScreenData  `json:"data"`
	CacheStatus CacheStatus `json:"cache_status"`
}

type ScreenData struct {
	Parsed   JSONPayload `json:"parsed"`
	Screened JSONPayload `json:"screened"`
}

// CacheStatus reports which halves of a screen response were served from
// cache, plus the document fingerprint callers can use to correlate repeated
// uploads of the same content.
type CacheStatus struct {
	ParsedCached    bool   `json:"parsed_cached"`
	ScreeningCached bool   `json:"screening_cached"`
	FileHash        string `json:"file_hash"`
}

// SimilarResponse is the envelope for GET /api/similar/:file_hash.
type SimilarResponse struct {
	Success  bool            `json:"success"`
	FileHash string          `json:"file_hash"`
	Matches  []SimilarResume `json:"matches"`
}

type SimilarResume struct {
	FileHash string  `json:"file_hash"`
	Score    float32 `json:"score"`
}

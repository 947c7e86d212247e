package core

import "time"

// Checkpoint records the last time a corpus was embedded.
// The Fingerprint is the content ID of every record text in order, so a
// changed source table produces a different fingerprint.
type Checkpoint struct {
	Corpus      string    `json:"corpus"`
	Source      string    `json:"source"`
	Model       string    `json:"model"`
	Records     int       `json:"records"`
	Fingerprint ID        `json:"fingerprint"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Fingerprint folds the content IDs of texts into a single ID. Order matters.
func Fingerprint(texts []string) ID {
	var b []byte
	for _, text := range texts {
		id := IDFromContent(text)
		for i := 0; i < 8; i++ {
			b = append(b, byte(id>>(8*i)))
		}
	}
	return IDFromContent(string(b))
}

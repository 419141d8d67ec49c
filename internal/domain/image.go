package domain

import "time"

// ImageSearch is a shaped image proxy payload cached for a word
type ImageSearch struct {
	Word      string
	Payload   []byte
	FetchedAt time.Time
}

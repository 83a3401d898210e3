package service

import (
	"time"

	"github.com/nats-io/nats.go"
)

// NATS subjects for draw engine events. Consumers (e.g. projection screens,
// audit sinks) subscribe to these to follow the raffle in near real time.
const (
	SubjectDraws  = "raffle.draws"
	SubjectResets = "raffle.resets"
)

// EventPublisher abstracts the messaging connection used for draw events.
// *nats.Conn satisfies it; a nil publisher disables event fanout.
type EventPublisher interface {
	Publish(subject string, data []byte) error
}

var _ EventPublisher = (*nats.Conn)(nil)

// DrawEvent is emitted on SubjectDraws after a draw commits.
type DrawEvent struct {
	ActivityID uint      `json:"activity_id"`
	PrizeID    uint      `json:"prize_id"`
	Round      int       `json:"round"`
	Count      int       `json:"count"`
	WinnerIDs  []uint    `json:"winner_ids"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ResetEvent is emitted on SubjectResets after an activity reset commits.
type ResetEvent struct {
	ActivityID     uint      `json:"activity_id"`
	RecordsCleared int64     `json:"records_cleared"`
	OccurredAt     time.Time `json:"occurred_at"`
}

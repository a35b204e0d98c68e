package game

type SoundID int

const (
	SoundEngine SoundID = iota
	SoundCooking
)

func (id SoundID) String() string {
	switch id {
	case SoundEngine:
		return "engine"
	case SoundCooking:
		return "cooking"
	}
	return "unknown"
}

// Audio is the playback collaborator. Both calls must be cheap and non-blocking.
type Audio interface {
	PlayLoop(id SoundID)
	Stop(id SoundID)
}

// NopAudio discards every trigger.
type NopAudio struct{}

func (NopAudio) PlayLoop(SoundID) {}
func (NopAudio) Stop(SoundID)     {}

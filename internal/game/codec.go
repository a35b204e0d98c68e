package game

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Mode and Phase travel as their names in both the JSON and the msgpack
// snapshot encodings.

func ParseMode(name string) (Mode, error) {
	switch name {
	case "walking":
		return ModeWalking, nil
	case "driving":
		return ModeDriving, nil
	}
	return ModeWalking, fmt.Errorf("unknown mode %q", name)
}

func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m Mode) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(m.String())
}

func (m *Mode) DecodeMsgpack(dec *msgpack.Decoder) error {
	name, err := dec.DecodeString()
	if err != nil {
		return err
	}
	return m.UnmarshalText([]byte(name))
}

func ParsePhase(name string) (Phase, error) {
	for p := PhaseIdle; p <= PhaseCookingDone; p++ {
		if p.String() == name {
			return p, nil
		}
	}
	return PhaseIdle, fmt.Errorf("unknown phase %q", name)
}

func (p *Phase) UnmarshalText(text []byte) error {
	v, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p Phase) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(p.String())
}

func (p *Phase) DecodeMsgpack(dec *msgpack.Decoder) error {
	name, err := dec.DecodeString()
	if err != nil {
		return err
	}
	return p.UnmarshalText([]byte(name))
}

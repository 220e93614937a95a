package decoder

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-restruct/restruct"

	"github.com/shiroemons/go-rpgarc/internal/gamedata/models"
	"github.com/shiroemons/go-rpgarc/pkg/reld"
)

// legacyAudio は旧形式のオーディオヘッダ（56バイト固定）です
type legacyAudio struct {
	Name          [32]byte
	Format        int32
	SampleRate    int32
	Channels      int16
	BitsPerSample int16
	LoopStart     int32
	LoopEnd       int32
	Reserved      [4]byte
}

// DecodeAudio はaudioチャンクをAudioレコードの配列にデコードします
func DecodeAudio(data []byte) ([]models.Audio, error) {
	if reld.IsRELD(data) {
		return decodeModernAudio(data)
	}
	return decodeLegacyAudio(data)
}

func decodeModernAudio(data []byte) ([]models.Audio, error) {
	r, err := reld.NewReader(data)
	if err != nil {
		return nil, err
	}

	audio := []models.Audio{}
	for {
		block, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if block.Tag != "AUDI" {
			continue
		}
		a, err := decodeAudioBlock(block.Payload)
		if err != nil {
			return nil, fmt.Errorf("audio %d: %w", len(audio), err)
		}
		audio = append(audio, a)
	}
	return audio, nil
}

func decodeAudioBlock(payload []byte) (models.Audio, error) {
	p := reld.NewPayloadReader(payload)
	var a models.Audio
	var err error

	if a.Name, err = p.String(); err != nil {
		return a, err
	}
	if a.Format, err = p.Int32(); err != nil {
		return a, err
	}
	if a.SampleRate, err = p.Int32(); err != nil {
		return a, err
	}
	if a.Channels, err = p.Int16(); err != nil {
		return a, err
	}
	if a.BitsPerSample, err = p.Int16(); err != nil {
		return a, err
	}
	if a.LoopStart, err = p.Int32(); err != nil {
		return a, err
	}
	if a.LoopEnd, err = p.Int32(); err != nil {
		return a, err
	}
	if a.Samples, err = p.ByteArray(); err != nil {
		return a, err
	}

	return a, nil
}

func decodeLegacyAudio(data []byte) ([]models.Audio, error) {
	audio := []models.Audio{}
	for i, raw := range legacyRecords(data, AudioStride) {
		var rec legacyAudio
		if err := restruct.Unpack(raw, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("audio record %d: %w", i, err)
		}
		name, err := fixedName(rec.Name[:])
		if err != nil {
			return nil, fmt.Errorf("audio record %d: %w", i, err)
		}
		if name == "" {
			continue
		}
		audio = append(audio, models.Audio{
			Name:          name,
			Format:        rec.Format,
			SampleRate:    rec.SampleRate,
			Channels:      rec.Channels,
			BitsPerSample: rec.BitsPerSample,
			LoopStart:     rec.LoopStart,
			LoopEnd:       rec.LoopEnd,
			Samples:       []byte{},
		})
	}
	return audio, nil
}

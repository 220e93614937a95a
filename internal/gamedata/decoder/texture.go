package decoder

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-restruct/restruct"

	"github.com/shiroemons/go-rpgarc/internal/gamedata/models"
	"github.com/shiroemons/go-rpgarc/pkg/reld"
)

// legacyTexture は旧形式のテクスチャヘッダ（48バイト固定）です。
// ピクセルデータはヘッダには含まれません。
type legacyTexture struct {
	Name         [32]byte
	Width        int16
	Height       int16
	BitsPerPixel int16
	PaletteID    int16
	Reserved     [8]byte
}

// DecodeTextures はtexturesチャンクをTextureレコードの配列にデコードします
func DecodeTextures(data []byte) ([]models.Texture, error) {
	if reld.IsRELD(data) {
		return decodeModernTextures(data)
	}
	return decodeLegacyTextures(data)
}

func decodeModernTextures(data []byte) ([]models.Texture, error) {
	r, err := reld.NewReader(data)
	if err != nil {
		return nil, err
	}

	textures := []models.Texture{}
	for {
		block, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if block.Tag != "TEXT" {
			continue
		}
		tex, err := decodeTextureBlock(block.Payload)
		if err != nil {
			return nil, fmt.Errorf("texture %d: %w", len(textures), err)
		}
		textures = append(textures, tex)
	}
	return textures, nil
}

func decodeTextureBlock(payload []byte) (models.Texture, error) {
	p := reld.NewPayloadReader(payload)
	var tex models.Texture
	var err error

	if tex.Name, err = p.String(); err != nil {
		return tex, err
	}
	shorts := []*int16{&tex.Width, &tex.Height, &tex.BitsPerPixel, &tex.PaletteID}
	for _, dst := range shorts {
		if *dst, err = p.Int16(); err != nil {
			return tex, err
		}
	}
	if tex.Pixels, err = p.ByteArray(); err != nil {
		return tex, err
	}

	return tex, nil
}

func decodeLegacyTextures(data []byte) ([]models.Texture, error) {
	textures := []models.Texture{}
	for i, raw := range legacyRecords(data, TextureStride) {
		var rec legacyTexture
		if err := restruct.Unpack(raw, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("texture record %d: %w", i, err)
		}
		name, err := fixedName(rec.Name[:])
		if err != nil {
			return nil, fmt.Errorf("texture record %d: %w", i, err)
		}
		if name == "" {
			continue
		}
		textures = append(textures, models.Texture{
			Name:         name,
			Width:        rec.Width,
			Height:       rec.Height,
			BitsPerPixel: rec.BitsPerPixel,
			PaletteID:    rec.PaletteID,
			Pixels:       []byte{},
		})
	}
	return textures, nil
}

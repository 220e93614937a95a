package decoder

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-restruct/restruct"

	"github.com/shiroemons/go-rpgarc/internal/gamedata/models"
	"github.com/shiroemons/go-rpgarc/pkg/reld"
)

// legacyScript は旧形式のスクリプトヘッダ（64バイト固定）です。
// 旧形式チャンクはヘッダの配列のみで、コード本体は含みません。
type legacyScript struct {
	Name     [32]byte
	ID       int32
	Format   int32
	Length   int32
	ArgCount int32
	Reserved [16]byte
}

// DecodeScripts はscriptsチャンクをScriptレコードの配列にデコードします。
// バイトコードは不透明なコンテナとして保持され、解釈しません。
func DecodeScripts(data []byte) ([]models.Script, error) {
	if reld.IsRELD(data) {
		return decodeModernScripts(data)
	}
	return decodeLegacyScripts(data)
}

func decodeModernScripts(data []byte) ([]models.Script, error) {
	r, err := reld.NewReader(data)
	if err != nil {
		return nil, err
	}

	scripts := []models.Script{}
	for {
		block, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if block.Tag != "SCRP" {
			continue
		}
		script, err := decodeScriptBlock(block.Payload)
		if err != nil {
			return nil, fmt.Errorf("script %d: %w", len(scripts), err)
		}
		scripts = append(scripts, script)
	}
	return scripts, nil
}

func decodeScriptBlock(payload []byte) (models.Script, error) {
	p := reld.NewPayloadReader(payload)
	var script models.Script
	var err error

	if script.Name, err = p.String(); err != nil {
		return script, err
	}
	ints := []*int32{&script.ID, &script.Format, &script.ArgCount}
	for _, dst := range ints {
		if *dst, err = p.Int32(); err != nil {
			return script, err
		}
	}
	if script.Code, err = p.ByteArray(); err != nil {
		return script, err
	}
	script.Length = int32(len(script.Code))

	return script, nil
}

func decodeLegacyScripts(data []byte) ([]models.Script, error) {
	scripts := []models.Script{}
	for i, raw := range legacyRecords(data, ScriptStride) {
		var rec legacyScript
		if err := restruct.Unpack(raw, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("script record %d: %w", i, err)
		}
		name, err := fixedName(rec.Name[:])
		if err != nil {
			return nil, fmt.Errorf("script record %d: %w", i, err)
		}
		if name == "" {
			continue
		}
		scripts = append(scripts, models.Script{
			Name:     name,
			ID:       rec.ID,
			Format:   rec.Format,
			ArgCount: rec.ArgCount,
			Length:   rec.Length,
			Code:     []byte{},
		})
	}
	return scripts, nil
}

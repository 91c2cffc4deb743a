package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRecord(r Record) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRecord(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, err
	}
	if r.SchemaVersion != CurrentSchemaVersion || r.CodecVersion != CurrentCodecVersion {
		return Record{}, fmt.Errorf("%w: schema=%d codec=%d", ErrVersionMismatch, r.SchemaVersion, r.CodecVersion)
	}
	return r, nil
}

package msgpack

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Converter - переиспользует буфер и энкодер между вызовами, не потокобезопасен
type Converter struct {
	buf     *bytes.Buffer
	encoder *msgpack.Encoder
}

func New() Converter {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseCompactFloats(true)
	enc.UseCompactInts(true)
	enc.SetSortMapKeys(true)
	return Converter{
		buf:     &buf,
		encoder: enc,
	}
}

func (c Converter) Marshal(v interface{}) ([]byte, error) {
	c.buf.Reset()
	if err := c.encoder.Encode(v); err != nil {
		return nil, errors.Wrapf(err, "failed to encode %T", v)
	}
	return io.ReadAll(c.buf)
}

func Unmarshal(data []byte, v interface{}) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "failed to decode %T", v)
	}
	return nil
}

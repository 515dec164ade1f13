package stormcodec

import (
	"bytes"

	"github.com/ugorji/go/codec"
)

// Binc is a codec that encodes to and decodes from Binc.
// See https://github.com/ugorji/binc
var Binc = &ugorji{name: "binc", handle: &codec.BincHandle{}}

// CBOR is a codec that encodes to and decodes from CBOR (Concise Binary Object Representation).
// http://cbor.io/
// https://tools.ietf.org/html/rfc7049
var CBOR = &ugorji{name: "cbor", handle: &codec.CborHandle{}}

type ugorji struct {
	name   string
	handle codec.Handle
}

func (c *ugorji) Marshal(v any) ([]byte, error) {
	var b bytes.Buffer
	err := codec.NewEncoder(&b, c.handle).Encode(v)
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (c *ugorji) Unmarshal(b []byte, v any) error {
	return codec.NewDecoderBytes(b, c.handle).Decode(v)
}

func (c *ugorji) Name() string {
	return c.name
}

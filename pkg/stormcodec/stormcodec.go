// Package stormcodec gathers the codecs that can be used to store records in a Storm database.
package stormcodec

import (
	"sort"
	"strings"

	"github.com/asdine/storm/v3/codec"
	"github.com/asdine/storm/v3/codec/gob"
	"github.com/asdine/storm/v3/codec/json"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/pkg/errors"
)

// Default is the codec name used when none is provided.
const Default = "msgpack"

var codecs = map[string]codec.MarshalUnmarshaler{
	"msgpack":   msgpack.Codec,
	"json":      json.Codec,
	"gob":       gob.Codec,
	Binc.Name(): Binc,
	CBOR.Name(): CBOR,
}

// Lookup returns the codec registered under the given name.
// An empty name returns the Default codec.
func Lookup(name string) (codec.MarshalUnmarshaler, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = Default
	}

	c, ok := codecs[name]
	if !ok {
		return nil, errors.Errorf("unknown storm codec %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return c, nil
}

// Names returns the sorted list of the available codecs.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

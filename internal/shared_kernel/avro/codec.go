package avro

import (
	"fmt"
	"reflect"

	hamba "github.com/hamba/avro/v2"
)

// SchemaProvider is implemented by messages that carry their own Avro schema.
type SchemaProvider interface {
	AvroSchema() string
}

// Codec encodes and decodes a single message type with a static Avro schema.
type Codec struct {
	schema    hamba.Schema
	prototype reflect.Type
}

func NewCodec(prototype any) (*Codec, error) {
	provider, ok := prototype.(SchemaProvider)
	if !ok {
		return nil, fmt.Errorf("prototype %T does not provide an avro schema", prototype)
	}

	schema, err := hamba.Parse(provider.AvroSchema())
	if err != nil {
		return nil, fmt.Errorf("parsing avro schema: %w", err)
	}

	pt := reflect.TypeOf(prototype)
	if pt.Kind() == reflect.Pointer {
		pt = pt.Elem()
	}

	return &Codec{schema: schema, prototype: pt}, nil
}

func (c *Codec) Encode(value any) ([]byte, error) {
	data, err := hamba.Marshal(c.schema, value)
	if err != nil {
		return nil, fmt.Errorf("marshaling avro data: %w", err)
	}

	return data, nil
}

func (c *Codec) Decode(data []byte) (any, error) {
	instance := reflect.New(c.prototype).Interface()
	if err := hamba.Unmarshal(c.schema, data, instance); err != nil {
		return nil, fmt.Errorf("unmarshaling avro data: %w", err)
	}

	return instance, nil
}

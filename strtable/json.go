package strtable

import (
	"bytes"
	"io"

	json "github.com/json-iterator/go"
)

// WriteJSON writes the table as a JSON object, keys being in insertion order. The default
// value isn't included.
func (t *Table[V]) WriteJSON(w io.Writer) error {
	stream := json.ConfigDefault.BorrowStream(w)
	stream.WriteObjectStart()

	for i := range t.slots {
		if i > 0 {
			stream.WriteMore()
		}

		stream.WriteObjectField(t.KeyAt(i))
		stream.WriteVal(t.values[i])
	}

	stream.WriteObjectEnd()
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)

	return err
}

func (t *Table[V]) MarshalJSON() ([]byte, error) {
	var buff bytes.Buffer
	if err := t.WriteJSON(&buff); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

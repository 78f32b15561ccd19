package hook

import (
	"encoding/json"
	"fmt"
	"io"
)

// maxInputSize caps the stdin payload. Host envelopes are small; anything
// larger is a protocol violation, not an event.
const maxInputSize = 1 << 20

// jsonProtocol implements Protocol over JSON stdin/stdout, the transport
// the host uses for every plugin invocation.
type jsonProtocol struct{}

var _ Protocol = (*jsonProtocol)(nil)

// NewProtocol returns the JSON stdin/stdout protocol.
func NewProtocol() Protocol {
	return &jsonProtocol{}
}

// ReadInput parses one event envelope from r. An empty payload is valid
// and yields an event with no type, which dispatches to nothing.
func (p *jsonProtocol) ReadInput(r io.Reader) (*Event, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", ErrInvalidInput, err)
	}
	if len(data) == 0 {
		return &Event{}, nil
	}

	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &event, nil
}

// WriteOutput serializes output to w. A nil output writes an empty object
// so the host always receives valid JSON.
func (p *jsonProtocol) WriteOutput(w io.Writer, output *Output) error {
	if output == nil {
		output = &Output{}
	}
	data, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("hook: encode output: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("hook: write output: %w", err)
	}
	return nil
}

// Package codec is the single JSON boundary for engine inputs and outputs.
// Every monetary field crosses the wire in the tagged decimal form
// {"value": "<string>"}; nothing is ever serialized as a binary float.
package codec

import (
	"fmt"

	json "github.com/goccy/go-json"

	"lease_proforma/pkg/core/config"
	"lease_proforma/pkg/core/engine"
)

// DecodeInput parses a complete engine input snapshot.
func DecodeInput(data []byte) (*config.CalculationEngineInput, error) {
	var in config.CalculationEngineInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decode engine input: %w", err)
	}
	return &in, nil
}

// EncodeInput serializes an input snapshot, tagged decimals throughout.
func EncodeInput(in *config.CalculationEngineInput) ([]byte, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode engine input: %w", err)
	}
	return data, nil
}

// EncodeOutput serializes a run result, tagged decimals throughout.
func EncodeOutput(out *engine.CalculationEngineOutput) ([]byte, error) {
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode engine output: %w", err)
	}
	return data, nil
}

// DecodeOutput parses a previously stored run result.
func DecodeOutput(data []byte) (*engine.CalculationEngineOutput, error) {
	var out engine.CalculationEngineOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode engine output: %w", err)
	}
	return &out, nil
}

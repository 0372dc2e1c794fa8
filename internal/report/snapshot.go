package report

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// #region snapshot-encoding
// EncodeSnapshot stores revealed information as a serialized
// google.protobuf.Struct. Values go through JSON first so typed slices
// ([]string and friends) become the generic shapes structpb accepts.
func EncodeSnapshot(info map[string]any) ([]byte, error) {
	if info == nil {
		info = map[string]any{}
	}
	raw, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("normalize snapshot: %w", err)
	}
	st, err := structpb.NewStruct(generic)
	if err != nil {
		return nil, fmt.Errorf("build snapshot struct: %w", err)
	}
	b, err := proto.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

// DecodeSnapshot reverses EncodeSnapshot. Numbers come back as float64.
func DecodeSnapshot(b []byte) (map[string]any, error) {
	var st structpb.Struct
	if err := proto.Unmarshal(b, &st); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return st.AsMap(), nil
}

// #endregion snapshot-encoding

package content

import "encoding/json"

// imageSourceWire is the wire shape of ImageSource: exactly one of base64
// or url is populated, discriminated by the explicit "type" tag
// ("base64" or "url").
type imageSourceWire struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Base64    string `json:"base64,omitempty"`
	URL       string `json:"url,omitempty"`
}

func marshalBlock(b Block) (json.RawMessage, error) {
	switch v := b.(type) {
	case TextBlock:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			TextBlock
		}{Kind: KindText, TextBlock: v})
	case ImageBlock:
		wire := imageSourceWire{MediaType: v.Source.MediaType}
		if v.Source.Base64 != "" {
			wire.Type = "base64"
			wire.Base64 = v.Source.Base64
		} else {
			wire.Type = "url"
			wire.URL = v.Source.URL
		}
		return json.Marshal(struct {
			Kind   string          `json:"kind"`
			Source imageSourceWire `json:"source"`
		}{Kind: KindImage, Source: wire})
	case ToolUseBlock:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			ToolUseBlock
		}{Kind: KindToolUse, ToolUseBlock: v})
	case ToolResultBlock:
		return json.Marshal(struct {
			Kind      string  `json:"kind"`
			ToolUseID string  `json:"ToolUseID"`
			Result    Content `json:"Result"`
			IsError   bool    `json:"IsError"`
			Bounds    *Bounds `json:"Bounds,omitempty"`
		}{Kind: KindToolResult, ToolUseID: v.ToolUseID, Result: v.Result, IsError: v.IsError, Bounds: v.Bounds})
	case CustomBlock:
		return json.Marshal(struct {
			Kind    string          `json:"kind"`
			Tag     string          `json:"Tag"`
			Payload json.RawMessage `json:"Payload"`
		}{Kind: KindCustom, Tag: v.Tag, Payload: v.Payload})
	case UnknownBlock:
		return v.Raw, nil
	default:
		return nil, errUnknownBlockType(b)
	}
}

func unmarshalBlock(raw json.RawMessage) (Block, error) {
	var discr struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &discr); err != nil {
		return nil, err
	}
	switch discr.Kind {
	case KindText:
		var v TextBlock
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	case KindImage:
		var wire struct {
			Source imageSourceWire `json:"source"`
		}
		if err := json.Unmarshal(raw, &wire); err != nil {
			return nil, err
		}
		src := ImageSource{MediaType: wire.Source.MediaType}
		if wire.Source.Type == "base64" {
			src.Base64 = wire.Source.Base64
		} else {
			src.URL = wire.Source.URL
		}
		return ImageBlock{Source: src}, nil
	case KindToolUse:
		var v ToolUseBlock
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	case KindToolResult:
		var wire struct {
			ToolUseID string  `json:"ToolUseID"`
			Result    Content `json:"Result"`
			IsError   bool    `json:"IsError"`
			Bounds    *Bounds `json:"Bounds,omitempty"`
		}
		if err := json.Unmarshal(raw, &wire); err != nil {
			return nil, err
		}
		return ToolResultBlock{ToolUseID: wire.ToolUseID, Result: wire.Result, IsError: wire.IsError, Bounds: wire.Bounds}, nil
	case KindCustom:
		var wire struct {
			Tag     string          `json:"Tag"`
			Payload json.RawMessage `json:"Payload"`
		}
		if err := json.Unmarshal(raw, &wire); err != nil {
			return nil, err
		}
		return CustomBlock{Tag: wire.Tag, Payload: wire.Payload}, nil
	default:
		// Unknown discriminator: decode successfully rather than fail,
		// preserving the raw payload.
		return UnknownBlock{RawKind: discr.Kind, Raw: raw}, nil
	}
}

type unknownBlockTypeError struct{ b Block }

func errUnknownBlockType(b Block) error { return &unknownBlockTypeError{b: b} }

func (e *unknownBlockTypeError) Error() string {
	return "content: cannot marshal block of unregistered type"
}

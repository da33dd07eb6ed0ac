// Package content defines the universal message payload exchanged across
// every boundary in this module: TurnInput, TurnOutput, tool-use and
// tool-result payloads, and Effect values that carry a body.
//
// A Content value is either a plain text payload or an ordered sequence of
// typed Blocks. Content::Text serializes as a bare JSON string and
// Content::Blocks as a bare JSON array, structurally discriminated; each
// Block is internally discriminated by a "kind" tag so new block kinds
// can be added without breaking older decoders.
package content

import (
	"encoding/json"
	"fmt"
)

type (
	// Content is either a plain text payload or an ordered sequence of
	// Blocks. Exactly one of the two representations is populated; use
	// Text or NewBlocks to construct a value, never a struct literal.
	Content struct {
		text    string
		blocks  []Block
		isBlock bool
	}

	// Block is the marker interface implemented by every content block
	// kind. Concrete block types are TextBlock, ImageBlock, ToolUseBlock,
	// ToolResultBlock, and CustomBlock.
	Block interface {
		// Kind returns the wire discriminator for this block.
		Kind() string
		isBlock()
	}

	// TextBlock is a plain text content block.
	TextBlock struct {
		Text string
	}

	// ImageSource identifies where image bytes for an ImageBlock come
	// from: either inlined as base64 or referenced by URL. Exactly one of
	// Base64 or URL is populated, matching which constructor built it.
	ImageSource struct {
		// MediaType is the explicit MIME type of the image (e.g.
		// "image/png"). Required in both representations.
		MediaType string
		// Base64 carries inline image bytes, base64-encoded. Empty when
		// the source is URL-referenced.
		Base64 string
		// URL references the image externally. Empty when the source is
		// inlined.
		URL string
	}

	// ImageBlock is an image content block, either inlined or
	// URL-referenced.
	ImageBlock struct {
		Source ImageSource
	}

	// ToolUseBlock is a model-issued request to invoke a tool. CallID
	// uniquely identifies this invocation so a later ToolResultBlock can
	// be correlated back to it.
	ToolUseBlock struct {
		// CallID uniquely identifies this tool invocation.
		CallID string
		// Name is the tool to invoke.
		Name string
		// Input is the opaque JSON payload passed to the tool.
		Input json.RawMessage
	}

	// ToolResultBlock carries the outcome of a tool invocation back into
	// the conversation. ToolUseID correlates this result to the
	// ToolUseBlock that requested it.
	ToolResultBlock struct {
		// ToolUseID is the CallID of the ToolUseBlock this result answers.
		ToolUseID string
		// Result is the tool's output payload.
		Result Content
		// IsError reports whether the tool invocation failed; Result then
		// carries an error description rather than a successful output.
		IsError bool
		// Bounds, when non-nil, reports how Result was capped relative to
		// the tool's full underlying data set. A tool that paginates,
		// windows, or truncates its own output sets this so a hook or
		// sink can surface the truncation without re-inspecting
		// tool-specific fields inside Result.
		Bounds *Bounds
	}

	// CustomBlock is an open-ended block reserved for forward
	// compatibility: new block kinds introduced by a later minor version,
	// or application-specific payloads this core has no opinion about.
	CustomBlock struct {
		// Tag names the custom block kind.
		Tag string
		// Payload is the opaque JSON body.
		Payload json.RawMessage
	}

	// UnknownBlock is what an unrecognized "kind" discriminator decodes
	// to: the raw JSON is preserved so the value still round-trips even
	// though this module cannot interpret it.
	UnknownBlock struct {
		// RawKind is the discriminator value this module did not
		// recognize.
		RawKind string
		// Raw is the complete, unparsed JSON object for this block.
		Raw json.RawMessage
	}
)

// Kind constants, the wire discriminator values for each Block
// implementation.
const (
	KindText       = "text"
	KindImage      = "image"
	KindToolUse    = "tool_use"
	KindToolResult = "tool_result"
	KindCustom     = "custom"
)

func (TextBlock) Kind() string       { return KindText }
func (ImageBlock) Kind() string      { return KindImage }
func (ToolUseBlock) Kind() string    { return KindToolUse }
func (ToolResultBlock) Kind() string { return KindToolResult }
func (CustomBlock) Kind() string     { return KindCustom }
func (b UnknownBlock) Kind() string  { return b.RawKind }

func (TextBlock) isBlock()       {}
func (ImageBlock) isBlock()      {}
func (ToolUseBlock) isBlock()    {}
func (ToolResultBlock) isBlock() {}
func (CustomBlock) isBlock()     {}
func (UnknownBlock) isBlock()    {}

// Text constructs a plain-text Content value.
func Text(s string) Content {
	return Content{text: s}
}

// NewBlocks constructs a block-sequence Content value. A nil or empty slice
// is valid.
func NewBlocks(blocks ...Block) Content {
	if blocks == nil {
		blocks = []Block{}
	}
	return Content{blocks: blocks, isBlock: true}
}

// IsText reports whether this Content holds a plain-text payload.
func (c Content) IsText() bool { return !c.isBlock }

// TextValue returns the text payload and true when IsText reports true;
// otherwise returns "" and false.
func (c Content) TextValue() (string, bool) {
	if c.isBlock {
		return "", false
	}
	return c.text, true
}

// Blocks returns the block sequence and true when this Content holds
// blocks; otherwise returns nil and false.
func (c Content) Blocks() ([]Block, bool) {
	if !c.isBlock {
		return nil, false
	}
	return c.blocks, true
}

// String renders a best-effort human-readable form: the text payload
// verbatim, or the concatenation of the text of every TextBlock found
// among blocks. Other block kinds contribute nothing.
func (c Content) String() string {
	if !c.isBlock {
		return c.text
	}
	out := ""
	for _, b := range c.blocks {
		if t, ok := b.(TextBlock); ok {
			out += t.Text
		}
	}
	return out
}

// MarshalJSON renders Content::Text as a bare JSON string and
// Content::Blocks as a bare JSON array of discriminated block objects,
// matching the structural, not tagged, discrimination Content requires.
func (c Content) MarshalJSON() ([]byte, error) {
	if !c.isBlock {
		return json.Marshal(c.text)
	}
	raw := make([]json.RawMessage, 0, len(c.blocks))
	for i, b := range c.blocks {
		enc, err := marshalBlock(b)
		if err != nil {
			return nil, fmt.Errorf("marshal block %d: %w", i, err)
		}
		raw = append(raw, enc)
	}
	if raw == nil {
		raw = []json.RawMessage{}
	}
	return json.Marshal(raw)
}

// UnmarshalJSON recovers either representation by structural inspection:
// a JSON string decodes to Content::Text, a JSON array decodes to
// Content::Blocks.
func (c *Content) UnmarshalJSON(data []byte) error {
	trimmed := trimLeadingSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Content{text: s}
		return nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("decode content: %w", err)
	}
	blocks := make([]Block, 0, len(raws))
	for i, raw := range raws {
		b, err := unmarshalBlock(raw)
		if err != nil {
			return fmt.Errorf("decode block %d: %w", i, err)
		}
		blocks = append(blocks, b)
	}
	*c = Content{blocks: blocks, isBlock: true}
	return nil
}

func trimLeadingSpace(data []byte) []byte {
	i := 0
	for i < len(data) {
		switch data[i] {
		case ' ', '\t', '\n', '\r':
			i++
			continue
		}
		break
	}
	return data[i:]
}

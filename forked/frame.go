// Package forked implements spec.md §4.3: the parent↔child wire protocol,
// the process-backed Transport, and the ForkedActorParent/ForkedActorChild
// actor variants that sit on either end of it.
package forked

import "encoding/json"

// FrameType names the wire topics spec.md §3/§6 enumerates.
type FrameType string

const (
	FrameCreateActor   FrameType = "create-actor"
	FrameActorCreated  FrameType = "actor-created"
	FrameActorMessage  FrameType = "actor-message"
	FrameActorResponse FrameType = "actor-response"
	FrameDestroy       FrameType = "destroy"
	FrameDestroyed     FrameType = "destroyed"
)

// Frame is the self-delimited record carried over Transport, per
// spec.md §3's wire frame and §6's JSON encoding.
type Frame struct {
	Type  FrameType       `json:"type"`
	ID    string          `json:"id,omitempty"`
	Body  json.RawMessage `json:"body,omitempty"`
	Error string          `json:"error,omitempty"`
}

// ParentRef identifies the actor a newly-forked worker's root is attached
// beneath.
type ParentRef struct {
	ID string `json:"id"`
}

// CreateActorBody is the body of a create-actor frame.
type CreateActorBody struct {
	Behavior    string         `json:"behavior"`
	Context     string         `json:"context,omitempty"`
	Config      json.RawMessage `json:"config,omitempty"`
	Test        bool           `json:"test,omitempty"`
	Debug       bool           `json:"debug,omitempty"`
	Parent      ParentRef      `json:"parent"`
	ClusterSize int            `json:"clusterSize,omitempty"`
}

// ActorCreatedBody is the body of an actor-created frame.
type ActorCreatedBody struct {
	ID string `json:"id"`
}

// ActorMessageBody is the body of an actor-message frame.
type ActorMessageBody struct {
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ActorResponseBody is the body of an actor-response frame.
type ActorResponseBody struct {
	Payload json.RawMessage `json:"payload,omitempty"`
}

func encodeBody(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func decodeBody[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, nil
	}
	err := json.Unmarshal(raw, &v)
	return v, err
}

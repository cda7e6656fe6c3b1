package forked

import "testing"

func TestEncodeDecodeBodyRoundTrip(t *testing.T) {
	raw, err := encodeBody(CreateActorBody{Behavior: "echo", ClusterSize: 3})
	if err != nil {
		t.Fatalf("encodeBody: %v", err)
	}

	got, err := decodeBody[CreateActorBody](raw)
	if err != nil {
		t.Fatalf("decodeBody: %v", err)
	}
	if got.Behavior != "echo" || got.ClusterSize != 3 {
		t.Errorf("got %+v, want Behavior=echo ClusterSize=3", got)
	}
}

func TestDecodeBodyEmptyIsZeroValue(t *testing.T) {
	got, err := decodeBody[ActorCreatedBody](nil)
	if err != nil {
		t.Fatalf("decodeBody(nil): %v", err)
	}
	if got.ID != "" {
		t.Errorf("got %+v, want zero value", got)
	}
}

func TestEncodeBodyNil(t *testing.T) {
	raw, err := encodeBody(nil)
	if err != nil {
		t.Fatalf("encodeBody(nil): %v", err)
	}
	if raw != nil {
		t.Errorf("encodeBody(nil) = %v, want nil", raw)
	}
}

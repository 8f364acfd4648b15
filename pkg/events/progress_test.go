package events

import (
	"reflect"
	"testing"
)

func TestTerminal(t *testing.T) {
	terminal := map[string]bool{
		TypeGenerationComplete: true,
		TypeGenerationError:    true,
		TypeBriefCreated:       false,
		TypeSlideComplete:      false,
		TypeSlideError:         false,
		TypeBuildStarted:       false,
	}

	for event, want := range terminal {
		if got := (ProgressEvent{Event: event}).Terminal(); got != want {
			t.Errorf("Terminal(%s) = %v, want %v", event, got, want)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	in := ProgressEvent{
		Event:   TypeSlideComplete,
		Index:   2,
		Total:   5,
		SlideId: "s2",
		Success: true,
	}

	var out ProgressEvent
	if err := out.Unmarshal(in.Marshal()); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip mismatch: %+v != %+v", out, in)
	}
}

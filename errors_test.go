package mixer

import (
	"testing"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   func(error) bool
	}{
		{"duration", kindErr(msgInvalidDuration), IsInvalidDuration},
		{"color", kindErr(msgMalformedColor), IsMalformedColor},
		{"index", kindErr(msgIndexRange), IsIndexRange},
		{"not running", kindErr(msgNotRunning), IsNotRunning},
		{"dropped", kindErr(msgFrameDropped), IsFrameDropped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.is(tt.err) {
				t.Errorf("kind not recognized for %v", tt.err)
			}
			if annotated := kindErr(tt.err.(*kindError).kind).With("index", 3).With("field", "color_a"); !tt.is(annotated) {
				t.Errorf("kind lost after annotation %v", annotated)
			}
			for _, other := range tests {
				if other.name != tt.name && other.is(tt.err) {
					t.Errorf("%s error classified as %s", tt.name, other.name)
				}
			}
		})
	}

	if IsInvalidDuration(nil) {
		t.Error("nil classified as an error kind")
	}
}

func TestErrorKindIgnoresAnnotations(t *testing.T) {
	// Color text is user input and ends up in the error text, it must not be
	// able to change how the error is classified
	_, err := ParseHex(msgInvalidDuration)
	if !IsMalformedColor(err) {
		t.Fatalf("expected malformed color error, got %v", err)
	}
	if IsInvalidDuration(err) || IsIndexRange(err) {
		t.Errorf("error classified by its annotations %v", err)
	}
}

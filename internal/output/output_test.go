package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/innobee/feedback/internal/feedback"
)

// captureStdout captures stdout during function execution
func captureStdout(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// captureStderr captures stderr during function execution
func captureStderr(f func()) string {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	f()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestSuccess(t *testing.T) {
	output := captureStdout(func() {
		Successf("formatted %s %d", "test", 42)
	})

	if !strings.Contains(output, "formatted test 42") {
		t.Errorf("Successf() output should contain formatted message, got: %s", output)
	}
}

func TestErrorGoesToStderr(t *testing.T) {
	var stdout string
	stderr := captureStderr(func() {
		stdout = captureStdout(func() {
			Errorf("error: %s", "something went wrong")
		})
	})

	if !strings.Contains(stderr, "error: something went wrong") {
		t.Errorf("Errorf() stderr should contain formatted message, got: %s", stderr)
	}
	if stdout != "" {
		t.Errorf("Errorf() should not write to stdout, got: %q", stdout)
	}
}

func TestMessageLines(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string)
	}{
		{"Warning", Warning},
		{"Progress", Progress},
		{"Hint", Hint},
		{"Info", Info},
		{"Header", Header},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureStdout(func() {
				tt.fn("some message")
			})
			if !strings.Contains(output, "some message") {
				t.Errorf("%s() output should contain message, got: %s", tt.name, output)
			}
		})
	}
}

func TestPath(t *testing.T) {
	result := Path("/tmp/test/path")
	if !strings.Contains(result, "/tmp/test/path") {
		t.Errorf("Path() should contain the path, got: %s", result)
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		result := Path(home + "/.config/feedback/config.toml")
		if !strings.Contains(result, "~") {
			t.Errorf("Path() should shorten home dir to ~, got: %s", result)
		}
	}
}

func TestKeyValue(t *testing.T) {
	output := captureStdout(func() {
		KeyValue("Name", "test-value")
	})

	if !strings.Contains(output, "Name:") {
		t.Errorf("KeyValue() should contain key, got: %s", output)
	}
	if !strings.Contains(output, "test-value") {
		t.Errorf("KeyValue() should contain value, got: %s", output)
	}
}

func TestBlank(t *testing.T) {
	output := captureStdout(func() {
		Blank()
	})
	if output != "\n" {
		t.Errorf("Blank() should output newline, got: %q", output)
	}
}

func TestStars(t *testing.T) {
	tests := []struct {
		rating int
		filled int
	}{
		{1, 1},
		{3, 3},
		{5, 5},
		{0, 0},
		{6, 0},
		{-2, 0},
	}

	for _, tt := range tests {
		result := Stars(tt.rating)
		if got := strings.Count(result, SymbolStar); got != tt.filled {
			t.Errorf("Stars(%d) has %d filled stars, want %d", tt.rating, got, tt.filled)
		}
		if got := strings.Count(result, SymbolNoStar); got != feedback.MaxRating-tt.filled {
			t.Errorf("Stars(%d) has %d empty stars, want %d", tt.rating, got, feedback.MaxRating-tt.filled)
		}
	}
}

func TestFeedbackHeader(t *testing.T) {
	output := captureStdout(func() {
		FeedbackHeader("http://localhost:5050/api")
	})

	if !strings.Contains(output, "InnoBee feedback") {
		t.Errorf("FeedbackHeader() should contain title, got: %s", output)
	}
	if !strings.Contains(output, "http://localhost:5050/api") {
		t.Errorf("FeedbackHeader() should contain endpoint, got: %s", output)
	}
}

func TestPrintPayload(t *testing.T) {
	t.Run("interested", func(t *testing.T) {
		output := captureStdout(func() {
			PrintPayload(feedback.Payload{
				Rating:               4,
				ImprovementText:      "Faster search",
				InterestedInResearch: true,
				Email:                "user@example.com",
			})
		})
		for _, want := range []string{"Faster search", "interested", "user@example.com"} {
			if !strings.Contains(output, want) {
				t.Errorf("PrintPayload() should contain %q, got: %s", want, output)
			}
		}
	})

	t.Run("not interested", func(t *testing.T) {
		output := captureStdout(func() {
			PrintPayload(feedback.Payload{Rating: 2})
		})
		if !strings.Contains(output, "(none)") {
			t.Errorf("PrintPayload() should mark empty opinion, got: %s", output)
		}
		if !strings.Contains(output, "not interested") {
			t.Errorf("PrintPayload() should say not interested, got: %s", output)
		}
		if strings.Contains(output, "@") {
			t.Errorf("PrintPayload() should not print an email, got: %s", output)
		}
	})
}

func TestSubmitted(t *testing.T) {
	output := captureStdout(func() {
		Submitted(&feedback.Receipt{Status: 201, ID: "66a1"})
	})

	if !strings.Contains(output, "Thanks for your feedback!") {
		t.Errorf("Submitted() should thank the user, got: %s", output)
	}
	if !strings.Contains(output, "66a1") {
		t.Errorf("Submitted() should contain the reference, got: %s", output)
	}

	output = captureStdout(func() {
		Submitted(nil)
	})
	if !strings.Contains(output, "Thanks for your feedback!") {
		t.Errorf("Submitted(nil) should still thank the user, got: %s", output)
	}
}

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestRedactingHandler(t *testing.T) {
	tests := []struct {
		name     string
		attrs    []slog.Attr
		expected map[string]string
	}{
		{
			name: "credential keys are redacted",
			attrs: []slog.Attr{
				slog.String("password", "hunter2"),
				slog.String("consumer_secret", "abcdef"),
				slog.String("token_id", "d5a7c3"),
				slog.String("signature", "sOmEbAsE64=="),
				slog.String("account", "123456"), // safe
			},
			expected: map[string]string{
				"password":        "[REDACTED]",
				"consumer_secret": "[REDACTED]",
				"token_id":        "[REDACTED]",
				"signature":       "[REDACTED]",
				"account":         "123456",
			},
		},
		{
			name: "case insensitive matching",
			attrs: []slog.Attr{
				slog.String("ConsumerKey", "ckey"),
				slog.String("TOKEN_SECRET", "xyz"),
			},
			expected: map[string]string{
				"ConsumerKey":  "[REDACTED]",
				"TOKEN_SECRET": "[REDACTED]",
			},
		},
		{
			name: "nested groups are redacted",
			attrs: []slog.Attr{
				slog.Group("auth",
					slog.String("token", "hidden"),
					slog.String("account", "visible"),
				),
			},
			expected: map[string]string{
				"auth.token":   "[REDACTED]",
				"auth.account": "visible",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewRedactingHandler(slog.NewJSONHandler(&buf, nil))
			logger := slog.New(h)

			args := make([]any, len(tt.attrs))
			for i, a := range tt.attrs {
				args[i] = a
			}
			logger.Info("test message", args...)

			var result map[string]any
			if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
				t.Fatalf("failed to parse log output: %v", err)
			}

			for k, v := range tt.expected {
				parts := strings.Split(k, ".")
				var val any = result
				var found bool

				for i, part := range parts {
					m, ok := val.(map[string]any)
					if !ok {
						break
					}
					val, ok = m[part]
					if !ok {
						break
					}
					if i == len(parts)-1 {
						found = true
					}
				}

				if !found {
					t.Errorf("key %s not found in output", k)
					continue
				}

				if val != v {
					t.Errorf("key %s: got %v, want %v", k, val, v)
				}
			}
		})
	}
}

func TestRedactingHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewRedactingHandler(slog.NewJSONHandler(&buf, nil))).
		With("token", "d5a7c3", "hostname", "webservices.netsuite.com")

	logger.Info("configured")

	out := buf.String()
	if strings.Contains(out, "d5a7c3") {
		t.Errorf("token value leaked through With: %s", out)
	}
	if !strings.Contains(out, "webservices.netsuite.com") {
		t.Errorf("safe attribute dropped: %s", out)
	}
}

package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	adapter "github.com/pension-board/retiree-intake/internal/logger/adapter/fiber"

	"github.com/pension-board/retiree-intake/internal/logger"
)

// accessLogLine implements the access loggers default json format.
type accessLogLine struct {
	IP           string  `json:"IP"`
	Status       int     `json:"status"`
	XPerformance float32 `json:"X-Performance"`
	URI          string  `json:"URI"`
	Method       string  `json:"method"`
	Host         string  `json:"host"`
}

func TestNew(t *testing.T) {
	consoleLog := logger.Log{
		EnableAccessLogToConsole: true,
		Console:                  logger.Console{Enabled: true},
	}

	type arguments struct {
		config     adapter.Config
		targetPath string
	}

	type want struct {
		output *accessLogLine
	}

	tests := []struct {
		name string
		args arguments
		want want
	}{
		{
			name: "empty config no output at all",
			args: arguments{
				targetPath: "/api/health",
			},
			want: want{
				output: nil,
			},
		},
		{
			name: "get logs to console json",
			args: arguments{
				targetPath: "/api/health",
				config: adapter.Config{
					Config: consoleLog,
				},
			},
			want: want{
				output: &accessLogLine{
					IP:     "0.0.0.0",
					Status: 200,
					URI:    "/api/health",
					Method: fiber.MethodGet,
					Host:   "example.com",
				},
			},
		},
		{
			name: "get unknown path logs 404",
			args: arguments{
				targetPath: "/no_such_path?test=123",
				config: adapter.Config{
					Config: consoleLog,
				},
			},
			want: want{
				output: &accessLogLine{
					IP:     "0.0.0.0",
					Status: 404,
					URI:    "/no_such_path?test=123",
					Method: fiber.MethodGet,
					Host:   "example.com",
				},
			},
		},
		{
			name: "health checks muted when configured",
			args: arguments{
				targetPath: "/api/health",
				config: adapter.Config{
					Config: logger.Log{
						EnableAccessLogToConsole: true,
						DisableCheckAlive:        true,
						Console:                  logger.Console{Enabled: true},
					},
					CheckAliveURI: "/api/health",
				},
			},
			want: want{
				output: nil,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := testMiddlewareHelper(t, tt.args.targetPath, tt.args.config)
			assert.NoError(t, err)

			if tt.want.output == nil && output != "" {
				t.Errorf("expected no output, but got output %s", output)
			}

			if tt.want.output != nil && output == "" {
				t.Error("expected output but got no output")
			}

			if tt.want.output != nil && output != "" {
				var decodedOutput accessLogLine

				err = json.Unmarshal([]byte(output), &decodedOutput)
				if err != nil {
					t.Error(err)
					return
				}

				assert.Equal(t, tt.want.output.Host, decodedOutput.Host)
				assert.Equal(t, tt.want.output.Method, decodedOutput.Method)
				assert.Equal(t, tt.want.output.Status, decodedOutput.Status)
				assert.Equal(t, tt.want.output.IP, decodedOutput.IP)
				assert.Equal(t, tt.want.output.URI, decodedOutput.URI)
			}
		})
	}
}

func testMiddlewareHelper(t *testing.T, targetPath string, adapterConfig adapter.Config) (string, error) {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	// capture stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	os.Stderr = w

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		Immutable:     true,
	})

	app.Use(adapter.New(adapterConfig))

	app.Get("/api/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString(`{"status":"ok"}`)
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, targetPath, nil), 100000)
	if err != nil {
		_ = w.Close()
		return "", err
	}

	outC := make(chan string)
	// copy the output in a separate goroutine so printing can't block indefinitely
	go func() {
		var buf bytes.Buffer
		_, err = io.Copy(&buf, r)
		if err != nil {
			return
		}

		outC <- buf.String()
	}()

	// back to normal state
	_ = w.Close()
	os.Stdout = stdout // restoring the real stdout
	os.Stderr = stderr // restoring the real stderr
	out := <-outC

	return out, err
}

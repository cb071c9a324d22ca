// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger_test

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/kidmin/ccadb-certificates-tabular/src/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLILogger(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Printf",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Printf("START: reading %s", "AllCertificateRecordsReport.csv")

				output := buf.String()
				assert.Contains(t, output, "START: reading AllCertificateRecordsReport.csv",
					"expected output to contain the phase line")
			},
		},
		{
			name: "Println",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Println("END: writing workbook")

				output := buf.String()
				assert.Contains(t, output, "END: writing workbook", "expected output to contain phase line")
			},
		},
		{
			name: "Quiet",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)
				log.Println("visible")

				log.SetOutput(io.Discard)
				log.Println("silenced")

				assert.Contains(t, buf.String(), "visible", "expected 'visible' before redirect")
				assert.NotContains(t, buf.String(), "silenced", "output after redirect must not land in buf")
			},
		},
		{
			name: "NewDefault",
			testFunc: func(t *testing.T) {
				log := logger.NewCLILogger()
				assert.NotNil(t, log, "NewCLILogger() returned nil")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}

func TestMCPLogger(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "SilentByDefaultContract",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewMCPLogger(&buf, true)

				log.Printf("record %d canonicalized", 42)
				log.Println("another message")

				assert.Equal(t, 0, buf.Len(), "expected no output in silent mode")
			},
		},
		{
			name: "Printf_JSON",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewMCPLogger(&buf, false)

				log.Printf("loaded %d records", 7)

				var logEntry map[string]any
				require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &logEntry),
					"failed to parse JSON output")

				assert.Equal(t, "info", logEntry["level"], "expected level 'info'")
				assert.Equal(t, "loaded 7 records", logEntry["message"], "unexpected message payload")
			},
		},
		{
			name: "Println_JSON",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewMCPLogger(&buf, false)

				log.Println("inventory ready")

				var logEntry map[string]any
				require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &logEntry),
					"failed to parse JSON output")

				assert.Equal(t, "inventory ready", logEntry["message"], "unexpected message payload")
			},
		},
		{
			name: "SetOutput_Nil",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewMCPLogger(&buf, false)

				log.Println("before")

				log.SetOutput(nil)
				log.Println("after")

				assert.Contains(t, buf.String(), "before", "expected 'before' in output")
				assert.NotContains(t, buf.String(), "after", "nil output must discard subsequent lines")
			},
		},
		{
			name: "NilWriter",
			testFunc: func(t *testing.T) {
				log := logger.NewMCPLogger(nil, false)

				log.Printf("must not panic")
				log.Println("must not panic either")
			},
		},
		{
			name: "JSONEscaping",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewMCPLogger(&buf, false)

				// Certificate names routinely carry quotes, commas and non-ASCII.
				inputs := []string{
					`CN="Quoted CA", O=Example`,
					"line\nbreak",
					"tab\tseparated",
					"Autoridad de Certificación Raíz",
				}

				for _, in := range inputs {
					buf.Reset()
					log.Printf("%s", in)

					var logEntry map[string]any
					require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &logEntry),
						"input %q: failed to parse JSON", in)

					assert.Equal(t, in, logEntry["message"], "input %q survived the round trip", in)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}

func TestMCPLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewMCPLogger(&buf, false)

	const numGoroutines = 50
	const messagesPerGoroutine = 10

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := range numGoroutines {
		go func(id int) {
			defer wg.Done()
			for j := range messagesPerGoroutine {
				log.Printf("worker %d message %d", id, j)
			}
		}(i)
	}

	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, numGoroutines*messagesPerGoroutine, len(lines), "expected one JSON line per message")

	for i, line := range lines {
		var logEntry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &logEntry),
			"line %d: failed to parse JSON\nLine content: %s", i+1, line)
	}
}

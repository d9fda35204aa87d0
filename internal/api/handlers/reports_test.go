package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustguard/pkg/logger"
)

func TestGenerateReport(t *testing.T) {
	h := NewReportsHandler(nil, logger.NewDefault())

	w := postJSON(h.Generate, "/api/v1/reports",
		`{"reporter":"Mary Jones","channel":"email: mary@example.com","summary":"Received a text demanding gift cards."}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	report := resp["report"]
	assert.True(t, strings.HasPrefix(report, "Suspected Scam Report"))
	assert.Contains(t, report, "Date: "+time.Now().Format("2006-01-02"))
	assert.Contains(t, report, "Reporter: Mary Jones")
	assert.Contains(t, report, "Contact: email: mary@example.com")
	assert.Contains(t, report, "Summary of Incident:\nReceived a text demanding gift cards.")
	assert.Contains(t, report, "Requested Action:")
	assert.False(t, strings.HasSuffix(report, "\n"))
}

func TestGenerateReportValidation(t *testing.T) {
	h := NewReportsHandler(nil, logger.NewDefault())

	testCases := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `[`},
		{name: "missing reporter", body: `{"summary":"something happened"}`},
		{name: "missing summary", body: `{"reporter":"Mary"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(h.Generate, "/api/v1/reports", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

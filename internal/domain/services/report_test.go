package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReportAt(t *testing.T) {
	date := time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)

	got := GenerateReportAt(date, "Jane Doe", "555-0100", "Caller demanded gift cards for a fake utility bill.")

	want := "Suspected Scam Report\n" +
		"Date: 2026-03-14\n" +
		"Reporter: Jane Doe\n" +
		"Contact: 555-0100\n" +
		"\n" +
		"Summary of Incident:\n" +
		"Caller demanded gift cards for a fake utility bill.\n" +
		"\n" +
		"Requested Action:\n" +
		"Please acknowledge receipt and advise on next steps. I consent to share this report with relevant authorities."

	assert.Equal(t, want, got)
}

func TestGenerateReportUsesTodaysDate(t *testing.T) {
	got := GenerateReport("A", "B", "C")

	assert.True(t, strings.HasPrefix(got, "Suspected Scam Report\nDate: "+time.Now().Format("2006-01-02")))
	assert.False(t, strings.HasSuffix(got, "\n"))
}

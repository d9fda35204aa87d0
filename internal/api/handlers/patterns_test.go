package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustguard/internal/domain/models"
	"trustguard/pkg/logger"
)

func TestGetPatterns(t *testing.T) {
	h := NewPatternsHandler("2.0.0")

	w := getRequest(h.Get, "/api/v1/patterns")

	require.Equal(t, http.StatusOK, w.Code)

	var resp PatternsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "2.0.0", resp.Version)

	require.Len(t, resp.Categories, 4)
	ids := make([]string, 0, len(resp.Categories))
	for _, c := range resp.Categories {
		ids = append(ids, c.ID)
		assert.NotEmpty(t, c.Title)
		assert.NotEmpty(t, c.Keywords)
		assert.Positive(t, c.Weight)
	}
	assert.Equal(t, []string{"urgency", "threat", "payment", "credentials"}, ids)

	assert.ElementsMatch(t,
		[]string{"biz", "cam", "cn", "info", "ru", "top", "zip"},
		resp.SuspiciousTLDs)

	assert.Len(t, resp.KnownBrands, 10)
	assert.Contains(t, resp.KnownBrands, "paypal.com")
}

func TestStatsWithoutRedisReadsZero(t *testing.T) {
	h := NewStatsHandler(nil, logger.NewDefault())

	w := getRequest(h.Get, "/api/v1/stats")

	require.Equal(t, http.StatusOK, w.Code)

	var stats models.UsageStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Zero(t, stats.Analyzed)
	assert.Zero(t, stats.Advisories)
	assert.Zero(t, stats.Reports)
}

package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTMLSingleCar(t *testing.T) {
	record := CarRecord{
		Name:   "Civic",
		Colour: "#10b981",
		Status: "available",
	}
	r := BuildSingleCarReport(record, Options{
		GeneratedAt: time.Date(2026, 3, 14, 9, 30, 5, 0, time.UTC),
	})

	html, err := RenderHTML(r)
	require.NoError(t, err)

	assert.Contains(t, html, "Car Details Report")
	assert.Contains(t, html, "Generated on 3/14/2026, 9:30:05 AM")
	assert.Contains(t, html, "background: #10B981")
	assert.Contains(t, html, ">available<")
	assert.Contains(t, html, "Page 1 of 1")
	assert.NotContains(t, html, `class="images"`, "image grid omitted for a car without images")
}

func TestRenderHTMLFleetPlaceholder(t *testing.T) {
	r, err := BuildFleetReport([]CarRecord{}, Options{GeneratedAt: time.Now()})
	require.NoError(t, err)

	html, err := RenderHTML(r)
	require.NoError(t, err)
	assert.Contains(t, html, "No cars are available for this report.")
	assert.NotContains(t, html, "<h3>")
}

func TestRenderHTMLImageGridAndPageCount(t *testing.T) {
	records := []CarRecord{
		{Name: "A", ImageURLs: []ImageRef{"http://x/1.jpg", "http://x/2.jpg"}},
		{Name: "B"},
	}
	r, err := BuildFleetReport(records, Options{GeneratedAt: time.Now()})
	require.NoError(t, err)

	html, err := RenderHTML(r)
	require.NoError(t, err)
	assert.Contains(t, html, `<img src="http://x/1.jpg"`)
	assert.Contains(t, html, `<img src="http://x/2.jpg"`)
	assert.Equal(t, len(r.Pages), strings.Count(html, `<div class="page">`))
}

func TestRenderHTMLEscapesRecordValues(t *testing.T) {
	r := BuildSingleCarReport(CarRecord{Name: "<script>alert(1)</script>"}, Options{GeneratedAt: time.Now()})

	html, err := RenderHTML(r)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)}
}

func TestBuildSingleCarReportSwatchAndOmittedImages(t *testing.T) {
	record := CarRecord{
		Name:   "Civic",
		Colour: "rgb(16, 185, 129)",
		Status: "available",
	}

	r := BuildSingleCarReport(record, testOptions())
	require.Len(t, r.Pages, 1)
	require.Len(t, r.Pages[0].Blocks, 1)

	block := r.Pages[0].Blocks[0]
	assert.Equal(t, "#10B981", block.SwatchHex)
	assert.Empty(t, block.ImageURLs, "no images means the image section is omitted")
	assert.Equal(t, "available", block.Status.Label)
	assert.Equal(t, badgeAvailable, block.Status.ColorHex)
}

func TestBuildSingleCarReportMissingColourFallsBackToWhite(t *testing.T) {
	r := BuildSingleCarReport(CarRecord{Name: "Yaris"}, testOptions())
	assert.Equal(t, SwatchDefault, r.Pages[0].Blocks[0].SwatchHex)
}

func TestBuildSingleCarReportRows(t *testing.T) {
	record := CarRecord{
		Name:         "Camry",
		Source:       "Toyota",
		Model:        "2024",
		ChasisNumber: "CH-991",
		RentPeriod:   "per_day",
		RentPrice:    decimal.NewFromInt(250),
	}

	block := BuildSingleCarReport(record, testOptions()).Pages[0].Blocks[0]
	assert.Equal(t, []Row{
		{Label: "Name", Value: "Camry"},
		{Label: "Source", Value: "Toyota"},
		{Label: "Model", Value: "2024"},
		{Label: "Chassis No", Value: "CH-991"},
		{Label: "Rent Type", Value: "per day"},
		{Label: "Rent Price", Value: "AED 250"},
	}, block.Rows)
}

func TestBuildSingleCarReportMissingFieldsRenderAsDash(t *testing.T) {
	block := BuildSingleCarReport(CarRecord{}, testOptions()).Pages[0].Blocks[0]
	for _, row := range block.Rows {
		assert.Equal(t, "-", row.Value, "row %q", row.Label)
	}
	assert.Equal(t, "-", block.Title)
	assert.Equal(t, "-", block.Status.Label)
	assert.Equal(t, badgeDefault, block.Status.ColorHex)
}

func TestBuildFleetReportNilRecords(t *testing.T) {
	r, err := BuildFleetReport(nil, testOptions())
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrNilRecords)
}

func TestBuildFleetReportEmptyRecordsYieldsPlaceholder(t *testing.T) {
	r, err := BuildFleetReport([]CarRecord{}, testOptions())
	require.NoError(t, err)
	require.Len(t, r.Pages, 1)
	require.Len(t, r.Pages[0].Blocks, 1)

	block := r.Pages[0].Blocks[0]
	assert.Equal(t, "No cars are available for this report.", block.Placeholder)
	assert.Empty(t, block.Rows)
}

func TestBuildFleetReportOrderAndIndexes(t *testing.T) {
	records := []CarRecord{
		{Name: "A", Status: "rented"},
		{Name: "B", Status: "maintenance"},
		{Name: "C", Status: "retired"},
	}

	r, err := BuildFleetReport(records, testOptions())
	require.NoError(t, err)

	var blocks []Block
	for _, page := range r.Pages {
		blocks = append(blocks, page.Blocks...)
	}
	require.Len(t, blocks, 3)
	for i, block := range blocks {
		assert.Equal(t, i+1, block.Index)
		assert.Equal(t, records[i].Name, block.Title)
	}

	assert.Equal(t, badgeRented, blocks[0].Status.ColorHex)
	assert.Equal(t, badgeMaintenance, blocks[1].Status.ColorHex)
	assert.Equal(t, badgeDefault, blocks[2].Status.ColorHex, "unknown status falls back to gray")
}

func TestBuildFleetReportPaginatesWithoutSplittingBlocks(t *testing.T) {
	var records []CarRecord
	for i := 0; i < 20; i++ {
		records = append(records, CarRecord{Name: fmt.Sprintf("Car %d", i+1)})
	}

	r, err := BuildFleetReport(records, testOptions())
	require.NoError(t, err)
	assert.Greater(t, len(r.Pages), 1)

	total := 0
	for i, page := range r.Pages {
		assert.Equal(t, i+1, page.Number)
		assert.NotEmpty(t, page.Blocks)

		used := 0
		for _, block := range page.Blocks {
			used += blockHeight(block)
			total++
		}
		assert.LessOrEqual(t, used, pageCapacity)
	}
	assert.Equal(t, len(records), total, "every record renders exactly once")
}

func TestBuildFleetReportImagesRaiseBlockHeight(t *testing.T) {
	plain := buildBlock(CarRecord{Name: "X"}, 1, ImageResolver{}, "")
	withImages := buildBlock(CarRecord{
		Name:      "X",
		ImageURLs: []ImageRef{"http://x/1.jpg", "http://x/2.jpg", "http://x/3.jpg", "http://x/4.jpg", "http://x/5.jpg"},
	}, 1, ImageResolver{}, "")

	assert.Equal(t, blockBaseHeight, blockHeight(plain))
	// Five images wrap onto two grid rows.
	assert.Equal(t, blockBaseHeight+2*imageRowHeight, blockHeight(withImages))
}

func TestBuildFleetReportListSwatchKeepsEmptyDefault(t *testing.T) {
	r, err := BuildFleetReport([]CarRecord{{Name: "A"}}, testOptions())
	require.NoError(t, err)
	assert.Empty(t, r.Pages[0].Blocks[0].SwatchHex)
}

func TestReportGeneratedAtDeterministic(t *testing.T) {
	opts := testOptions()
	a := BuildSingleCarReport(CarRecord{Name: "A"}, opts)
	b := BuildSingleCarReport(CarRecord{Name: "A"}, opts)
	assert.Equal(t, a, b)
}

// Package report converts car records into laid-out, paginated documents
// ready for export, resolving images and normalizing colours
// deterministically. Reports are immutable snapshots and are regenerated in
// full on every export.
package report

import (
	"errors"
	"strings"
	"time"
)

// Status badge palette. Unknown statuses fall back to gray.
const (
	badgeAvailable   = "#10B981"
	badgeRented      = "#F59E0B"
	badgeMaintenance = "#3B82F6"
	badgeDefault     = "#6B7280"
)

// SwatchDefault is the detail-view fallback for a missing colour.
const SwatchDefault = "#FFFFFF"

// Row is one labeled line inside a card block.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// StatusBadge is the rendered status pill.
type StatusBadge struct {
	Label    string `json:"label"`
	ColorHex string `json:"color_hex"`
}

// Block is one car card. Placeholder blocks carry a message instead of rows.
type Block struct {
	Index       int         `json:"index"`
	Title       string      `json:"title"`
	Rows        []Row       `json:"rows,omitempty"`
	Status      StatusBadge `json:"status"`
	SwatchHex   string      `json:"swatch_hex"`
	ImageURLs   []string    `json:"image_urls,omitempty"`
	Placeholder string      `json:"placeholder,omitempty"`
}

// Page holds the blocks laid out between the fixed header and footer regions.
type Page struct {
	Number int     `json:"number"`
	Blocks []Block `json:"blocks"`
}

// Report is an ordered sequence of pages derived from a snapshot of one or
// more car records. Never mutated after creation.
type Report struct {
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`
	Pages       []Page    `json:"pages"`
}

// Options configure a build. A zero Resolver leaves relative URLs untouched.
type Options struct {
	GeneratedAt time.Time
	Resolver    ImageResolver
}

// ErrNilRecords is the one caller contract violation: a missing record list.
var ErrNilRecords = errors.New("report: records must not be nil")

// StatusBadgeColor maps a car status to its badge colour.
func StatusBadgeColor(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "available":
		return badgeAvailable
	case "rented":
		return badgeRented
	case "maintenance":
		return badgeMaintenance
	default:
		return badgeDefault
	}
}

// BuildSingleCarReport produces a one-page detail report for a car: header,
// labeled info rows with colour swatch and status badge, and an image grid
// only when the record resolves to at least one image URL. Output is
// identical for the same record and generation instant.
func BuildSingleCarReport(record CarRecord, opts Options) *Report {
	block := buildBlock(record, 1, opts.Resolver, SwatchDefault)
	return &Report{
		Title:       "Car Details Report",
		GeneratedAt: generatedAt(opts),
		Pages: []Page{
			{Number: 1, Blocks: []Block{block}},
		},
	}
}

// Blocks-per-page heuristics for content-driven pagination. A block's rows
// are never split across pages.
const (
	pageCapacity     = 44
	blockBaseHeight  = 10
	imageRowHeight   = 4
	imagesPerGridRow = 4
)

// BuildFleetReport produces one card block per record, in caller order, with
// sequence indexes. Blocks flow onto new pages when the current one is full;
// an empty record list yields a single placeholder block. A nil list is the
// caller's error.
func BuildFleetReport(records []CarRecord, opts Options) (*Report, error) {
	if records == nil {
		return nil, ErrNilRecords
	}

	r := &Report{
		Title:       "Cars List",
		GeneratedAt: generatedAt(opts),
	}

	if len(records) == 0 {
		r.Pages = []Page{{Number: 1, Blocks: []Block{{
			Index:       1,
			Placeholder: "No cars are available for this report.",
		}}}}
		return r, nil
	}

	page := Page{Number: 1}
	used := 0
	for i, record := range records {
		block := buildBlock(record, i+1, opts.Resolver, "")
		h := blockHeight(block)
		if used > 0 && used+h > pageCapacity {
			r.Pages = append(r.Pages, page)
			page = Page{Number: page.Number + 1}
			used = 0
		}
		page.Blocks = append(page.Blocks, block)
		used += h
	}
	r.Pages = append(r.Pages, page)
	return r, nil
}

func generatedAt(opts Options) time.Time {
	if opts.GeneratedAt.IsZero() {
		return time.Now()
	}
	return opts.GeneratedAt
}

// buildBlock assembles the card for one record. A malformed field never
// aborts the block; missing values render as "-".
func buildBlock(record CarRecord, index int, resolver ImageResolver, swatchFallback string) Block {
	price := "-"
	if !record.RentPrice.IsZero() {
		price = "AED " + record.RentPrice.String()
	}

	return Block{
		Index: index,
		Title: orDash(record.Name),
		Rows: []Row{
			{Label: "Name", Value: orDash(record.Name)},
			{Label: "Source", Value: orDash(record.Source)},
			{Label: "Model", Value: orDash(record.Model)},
			{Label: "Chassis No", Value: orDash(record.ChasisNumber)},
			{Label: "Rent Type", Value: orDash(strings.ReplaceAll(record.RentPeriod, "_", " "))},
			{Label: "Rent Price", Value: price},
		},
		Status: StatusBadge{
			Label:    orDash(record.Status),
			ColorHex: StatusBadgeColor(record.Status),
		},
		SwatchHex: NormalizeColorOr(record.Colour, swatchFallback),
		ImageURLs: resolver.Resolve(record),
	}
}

func blockHeight(b Block) int {
	h := blockBaseHeight
	if n := len(b.ImageURLs); n > 0 {
		rows := (n + imagesPerGridRow - 1) / imagesPerGridRow
		h += rows * imageRowHeight
	}
	return h
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

package report

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ImageRef is one image entry as the API emits it: either a bare URL string
// or an object carrying a url field. Decodes both to a plain string.
type ImageRef string

// UnmarshalJSON accepts "a.jpg" and {"url": "a.jpg"} alike; anything else
// decodes to the empty string and is dropped during resolution.
func (r *ImageRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = ImageRef(s)
		return nil
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*r = ImageRef(obj.URL)
		return nil
	}
	*r = ""
	return nil
}

// ImageGroup is the nested image shape: images[0].image_urls.
type ImageGroup struct {
	ImageURLs []ImageRef `json:"image_urls"`
}

// CarRecord is the report-facing snapshot of a car, mirroring the API wire
// shape including both places image URLs may appear.
type CarRecord struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Source           string          `json:"source"`
	Model            string          `json:"model"`
	Colour           string          `json:"colour"`
	ChasisNumber     string          `json:"chasis_number"`
	Status           string          `json:"status"`
	RentPeriod       string          `json:"rent_period"`
	RentPrice        decimal.Decimal `json:"rent_price"`
	AvailableForSale bool            `json:"available_for_sale"`
	ImageURLs        []ImageRef      `json:"image_urls,omitempty"`
	Images           []ImageGroup    `json:"images,omitempty"`
}

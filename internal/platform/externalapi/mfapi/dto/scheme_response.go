// Package dto defines data transfer objects for the mfapi.in responses.
package dto

import "encoding/json"

// SchemeResponse represents the JSON response of /mf/{code} and /mf/{code}/latest.
type SchemeResponse struct {
	Meta struct {
		FundHouse      string      `json:"fund_house"`
		SchemeType     string      `json:"scheme_type"`
		SchemeCategory string      `json:"scheme_category"`
		SchemeCode     json.Number `json:"scheme_code"`
		SchemeName     string      `json:"scheme_name"`
	} `json:"meta"`
	Data []struct {
		Date string `json:"date"` // DD-MM-YYYY
		NAV  string `json:"nav"`
	} `json:"data"`
	Status string `json:"status"`
}

// SchemeListItem is one element of the /mf response.
type SchemeListItem struct {
	SchemeCode json.Number `json:"schemeCode"`
	SchemeName string      `json:"schemeName"`
}

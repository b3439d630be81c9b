package models

import (
	"database/sql"
	"time"
)

// PrinterSettings holds per-restaurant bill and KOT print customization.
// One row per restaurant, upserted.
type PrinterSettings struct {
	RestaurantID   string         `json:"restaurant_id"`
	PaperWidthMM   int            `json:"paper_width_mm"`
	HeaderText     sql.NullString `json:"-"`
	FooterText     sql.NullString `json:"-"`
	ShowLogo       bool           `json:"show_logo"`
	ShowGSTIN      bool           `json:"show_gstin"`
	GSTIN          sql.NullString `json:"-"`
	KOTCopies      int            `json:"kot_copies"`
	KOTShowPrices  bool           `json:"kot_show_prices"`
	AutoPrintKOT   bool           `json:"auto_print_kot"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type PrinterSettingsResponse struct {
	RestaurantID  string    `json:"restaurant_id"`
	PaperWidthMM  int       `json:"paper_width_mm"`
	HeaderText    *string   `json:"header_text,omitempty"`
	FooterText    *string   `json:"footer_text,omitempty"`
	ShowLogo      bool      `json:"show_logo"`
	ShowGSTIN     bool      `json:"show_gstin"`
	GSTIN         *string   `json:"gstin,omitempty"`
	KOTCopies     int       `json:"kot_copies"`
	KOTShowPrices bool      `json:"kot_show_prices"`
	AutoPrintKOT  bool      `json:"auto_print_kot"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p *PrinterSettings) PublicView() PrinterSettingsResponse {
	return PrinterSettingsResponse{
		RestaurantID:  p.RestaurantID,
		PaperWidthMM:  p.PaperWidthMM,
		HeaderText:    StrOrNil(p.HeaderText),
		FooterText:    StrOrNil(p.FooterText),
		ShowLogo:      p.ShowLogo,
		ShowGSTIN:     p.ShowGSTIN,
		GSTIN:         StrOrNil(p.GSTIN),
		KOTCopies:     p.KOTCopies,
		KOTShowPrices: p.KOTShowPrices,
		AutoPrintKOT:  p.AutoPrintKOT,
		UpdatedAt:     p.UpdatedAt,
	}
}

// DefaultPrinterSettings returns the settings used before a restaurant
// customizes anything.
func DefaultPrinterSettings(restaurantID string) PrinterSettings {
	return PrinterSettings{
		RestaurantID:  restaurantID,
		PaperWidthMM:  80,
		ShowLogo:      true,
		KOTCopies:     1,
		KOTShowPrices: false,
	}
}

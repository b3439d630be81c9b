package services

import (
	"database/sql"
	"fmt"

	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/repositories"
)

// UpdatePrinterSettingsRequest patches the bill/KOT customization row.
type UpdatePrinterSettingsRequest struct {
	PaperWidthMM  *int    `json:"paper_width_mm"`
	HeaderText    *string `json:"header_text"`
	FooterText    *string `json:"footer_text"`
	ShowLogo      *bool   `json:"show_logo"`
	ShowGSTIN     *bool   `json:"show_gstin"`
	GSTIN         *string `json:"gstin"`
	KOTCopies     *int    `json:"kot_copies"`
	KOTShowPrices *bool   `json:"kot_show_prices"`
	AutoPrintKOT  *bool   `json:"auto_print_kot"`
}

// --- PrinterService Interface ---
type PrinterService interface {
	Get(restaurantID string) (*models.PrinterSettings, error)
	Update(restaurantID string, req UpdatePrinterSettingsRequest) (*models.PrinterSettings, error)
}

type printerService struct {
	printerRepo repositories.PrinterRepository
	db          *sql.DB
}

// NewPrinterService creates a new instance of PrinterService.
func NewPrinterService(pr repositories.PrinterRepository, db *sql.DB) PrinterService {
	return &printerService{printerRepo: pr, db: db}
}

func (s *printerService) Get(restaurantID string) (*models.PrinterSettings, error) {
	return s.printerRepo.Get(restaurantID)
}

func (s *printerService) Update(restaurantID string, req UpdatePrinterSettingsRequest) (*models.PrinterSettings, error) {
	settings, err := s.printerRepo.Get(restaurantID)
	if err != nil {
		return nil, err
	}
	if req.PaperWidthMM != nil {
		if *req.PaperWidthMM != 58 && *req.PaperWidthMM != 80 {
			return nil, fmt.Errorf("%w: paper width must be 58 or 80 mm", ErrValidation)
		}
		settings.PaperWidthMM = *req.PaperWidthMM
	}
	if req.HeaderText != nil {
		settings.HeaderText = models.NewNullString(*req.HeaderText)
	}
	if req.FooterText != nil {
		settings.FooterText = models.NewNullString(*req.FooterText)
	}
	if req.ShowLogo != nil {
		settings.ShowLogo = *req.ShowLogo
	}
	if req.ShowGSTIN != nil {
		settings.ShowGSTIN = *req.ShowGSTIN
	}
	if req.GSTIN != nil {
		settings.GSTIN = models.NewNullString(*req.GSTIN)
	}
	if req.KOTCopies != nil {
		if *req.KOTCopies < 1 || *req.KOTCopies > 5 {
			return nil, fmt.Errorf("%w: kot copies must be between 1 and 5", ErrValidation)
		}
		settings.KOTCopies = *req.KOTCopies
	}
	if req.KOTShowPrices != nil {
		settings.KOTShowPrices = *req.KOTShowPrices
	}
	if req.AutoPrintKOT != nil {
		settings.AutoPrintKOT = *req.AutoPrintKOT
	}
	if err := s.printerRepo.Upsert(s.db, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

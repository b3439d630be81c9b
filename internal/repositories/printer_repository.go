package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"qr_dine_backend/internal/models"
)

// PrinterRepository stores the per-restaurant printer/bill customization row.
type PrinterRepository interface {
	Get(restaurantID string) (*models.PrinterSettings, error)
	Upsert(executor SQLExecutor, s *models.PrinterSettings) error
}

type printerRepository struct {
	db *sql.DB
}

// NewPrinterRepository creates a new instance of PrinterRepository.
func NewPrinterRepository(db *sql.DB) PrinterRepository {
	return &printerRepository{db: db}
}

// Get returns defaults when the restaurant never saved settings.
func (r *printerRepository) Get(restaurantID string) (*models.PrinterSettings, error) {
	s := &models.PrinterSettings{}
	err := r.db.QueryRow(
		`SELECT restaurant_id, paper_width_mm, header_text, footer_text, show_logo,
		        show_gstin, gstin, kot_copies, kot_show_prices, auto_print_kot, updated_at
		 FROM printer_settings WHERE restaurant_id = $1`,
		restaurantID,
	).Scan(
		&s.RestaurantID, &s.PaperWidthMM, &s.HeaderText, &s.FooterText, &s.ShowLogo,
		&s.ShowGSTIN, &s.GSTIN, &s.KOTCopies, &s.KOTShowPrices, &s.AutoPrintKOT, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			defaults := models.DefaultPrinterSettings(restaurantID)
			return &defaults, nil
		}
		return nil, classifyError(err, fmt.Sprintf("getting printer settings for %s", restaurantID))
	}
	return s, nil
}

func (r *printerRepository) Upsert(executor SQLExecutor, s *models.PrinterSettings) error {
	s.UpdatedAt = time.Now()
	query := `INSERT INTO printer_settings
	            (restaurant_id, paper_width_mm, header_text, footer_text, show_logo,
	             show_gstin, gstin, kot_copies, kot_show_prices, auto_print_kot, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          ON CONFLICT (restaurant_id) DO UPDATE SET
	            paper_width_mm = EXCLUDED.paper_width_mm,
	            header_text = EXCLUDED.header_text,
	            footer_text = EXCLUDED.footer_text,
	            show_logo = EXCLUDED.show_logo,
	            show_gstin = EXCLUDED.show_gstin,
	            gstin = EXCLUDED.gstin,
	            kot_copies = EXCLUDED.kot_copies,
	            kot_show_prices = EXCLUDED.kot_show_prices,
	            auto_print_kot = EXCLUDED.auto_print_kot,
	            updated_at = EXCLUDED.updated_at`
	_, err := executor.Exec(query,
		s.RestaurantID, s.PaperWidthMM, s.HeaderText, s.FooterText, s.ShowLogo,
		s.ShowGSTIN, s.GSTIN, s.KOTCopies, s.KOTShowPrices, s.AutoPrintKOT, s.UpdatedAt,
	)
	if err != nil {
		return classifyError(err, fmt.Sprintf("upserting printer settings for %s", s.RestaurantID))
	}
	return nil
}

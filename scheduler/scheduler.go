package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"bnb-search/db"
	"bnb-search/fetcher"
	"bnb-search/filter"
	"bnb-search/format"
	"bnb-search/sheets"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Scheduler processes search requests from the database
type Scheduler struct {
	db             *db.DB
	bot            *tgbotapi.BotAPI
	writer         *sheets.Writer
	fetcher        fetcher.Fetcher
	spreadsheetURL string
	refreshEvery   time.Duration
	lastRefresh    time.Time
	ctx            context.Context
	cancel         context.CancelFunc
}

// NewScheduler creates a new scheduler (the catalogue is fetched on-demand)
func NewScheduler(database *db.DB, bot *tgbotapi.BotAPI, writer *sheets.Writer, f fetcher.Fetcher, spreadsheetURL string, refreshMinutes int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		db:             database,
		bot:            bot,
		writer:         writer,
		fetcher:        f,
		spreadsheetURL: spreadsheetURL,
		refreshEvery:   time.Duration(refreshMinutes) * time.Minute,
		ctx:            ctx,
		cancel:         cancel,
	}
}

// Start starts the scheduler in a goroutine
func (s *Scheduler) Start() {
	go s.run()
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cancel()
	log.Println("Scheduler stopped")
}

// run is the main scheduler loop
func (s *Scheduler) run() {
	ticker := time.NewTicker(5 * time.Second) // Check every 5 seconds
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			log.Println("Scheduler stopped")
			return
		case <-ticker.C:
			s.processNextRequest()
		}
	}
}

// processNextRequest processes the next request with status 'created'
func (s *Scheduler) processNextRequest() {
	req, err := s.db.GetNextCreatedRequest()
	if err != nil {
		log.Printf("Error getting next request: %v\n", err)
		return
	}

	if req == nil {
		// No requests to process
		return
	}

	log.Printf("Processing request ID %d for user %d\n", req.ID, req.UserID)

	// Update status to 'in_progress'
	if err := s.db.UpdateRequestStatus(req.ID, "in_progress"); err != nil {
		log.Printf("Error updating request status to in_progress: %v\n", err)
		return
	}

	// Send status update to Telegram
	s.sendStatusUpdate(req.TelegramMessageID, req.UserID, "🔄 Processing request... Searching listings...")

	// Get user config
	userConfig, err := s.db.GetUserConfig(req.UserID)
	if err != nil {
		log.Printf("Error getting user config: %v\n", err)
		s.handleRequestError(req, err)
		return
	}

	state := userConfig.FilterState()
	search := req.SearchFilters()

	// Refresh the catalogue if it is stale
	if err := s.refreshCatalogue(); err != nil {
		log.Printf("Error refreshing catalogue: %v\n", err)
		s.handleRequestError(req, err)
		return
	}

	listings, err := s.db.GetListings()
	if err != nil {
		log.Printf("Error loading listings: %v\n", err)
		s.handleRequestError(req, err)
		return
	}

	if len(listings) == 0 {
		err := fmt.Errorf("the listing catalogue is empty")
		log.Printf("Error: %v\n", err)
		s.handleRequestError(req, err)
		return
	}

	// Apply filters
	matcher := filter.NewMatcher()
	matched := matcher.Match(listings, state, search)

	// Update request results
	if err := s.db.UpdateRequestResults(req.ID, len(matched)); err != nil {
		log.Printf("Error updating request results: %v\n", err)
	}

	// Create sheet name from request ID and timestamp
	sheetName := fmt.Sprintf("Search_%d_%s", req.ID, time.Now().Format("20060102_150405"))

	// Write to Google Sheets (sheet will be inserted at the beginning)
	createdSheetName, sheetID, err := s.writer.CreateSheetAndWriteListings(sheetName, matched, format.Summarize(search))
	if err != nil {
		log.Printf("Error writing to Google Sheets: %v\n", err)
		s.handleRequestError(req, err)
		return
	}

	// Update request with sheet name
	if err := s.db.UpdateRequestSheetName(req.ID, createdSheetName); err != nil {
		log.Printf("Warning: Failed to update sheet name: %v\n", err)
	}

	// Update status to 'done'
	if err := s.db.UpdateRequestStatus(req.ID, "done"); err != nil {
		log.Printf("Error updating request status to done: %v\n", err)
		return
	}

	// Create URL that opens the specific sheet
	sheetURL := s.createSheetURL(sheetID)

	// Send success message
	successMsg := fmt.Sprintf(
		"✅ %s\n\n"+
			"%s\n"+
			"Catalogue size: %d listings\n\n"+
			"View spreadsheet: %s",
		format.FormatCount(len(matched)), format.Summarize(search), len(listings), sheetURL)
	s.sendStatusUpdate(req.TelegramMessageID, req.UserID, successMsg)
}

// refreshCatalogue re-fetches the catalogue when the stored copy is older
// than the configured refresh interval
func (s *Scheduler) refreshCatalogue() error {
	if s.fetcher == nil {
		return nil
	}
	if !s.lastRefresh.IsZero() && time.Since(s.lastRefresh) < s.refreshEvery {
		return nil
	}

	ctx, cancel := context.WithTimeout(s.ctx, 2*time.Minute)
	defer cancel()

	listings, err := s.fetcher.Fetch(ctx)
	if err != nil {
		// Keep serving the stored catalogue if we already have one
		count, countErr := s.db.CountListings()
		if countErr == nil && count > 0 {
			log.Printf("Warning: Catalogue refresh failed, using stored copy: %v\n", err)
			s.lastRefresh = time.Now()
			return nil
		}
		return fmt.Errorf("failed to fetch catalogue: %w", err)
	}

	if err := s.db.ReplaceCatalogue(listings); err != nil {
		return fmt.Errorf("failed to store catalogue: %w", err)
	}

	s.lastRefresh = time.Now()
	log.Printf("Catalogue refreshed: %d listings\n", len(listings))
	return nil
}

// handleRequestError handles errors during request processing
func (s *Scheduler) handleRequestError(req *db.Request, err error) {
	if updateErr := s.db.UpdateRequestStatus(req.ID, "failed"); updateErr != nil {
		log.Printf("Error updating request status to failed: %v\n", updateErr)
	}

	errorMsg := fmt.Sprintf("❌ Error processing request: %v", err)
	s.sendStatusUpdate(req.TelegramMessageID, req.UserID, errorMsg)
}

// createSheetURL creates a URL that opens a specific sheet in the spreadsheet
func (s *Scheduler) createSheetURL(sheetID int64) string {
	// Extract spreadsheet ID from the base URL
	spreadsheetID := sheets.ExtractSpreadsheetID(s.spreadsheetURL)
	if spreadsheetID == "" {
		// Fallback to original URL if we can't extract ID
		return s.spreadsheetURL
	}

	// Create URL with gid parameter to open specific sheet
	// Format: https://docs.google.com/spreadsheets/d/SPREADSHEET_ID/edit#gid=SHEET_ID
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit#gid=%d", spreadsheetID, sheetID)
}

// sendStatusUpdate sends a status update message to Telegram
func (s *Scheduler) sendStatusUpdate(messageID int, userID int64, text string) {
	msg := tgbotapi.NewMessage(userID, text)
	msg.ReplyToMessageID = messageID
	msg.ParseMode = "HTML"
	_, err := s.bot.Send(msg)
	if err != nil {
		log.Printf("Error sending status update: %v\n", err)
	}
}

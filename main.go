package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"bnb-search/booking"
	"bnb-search/config"
	"bnb-search/db"
	"bnb-search/fetcher"
	"bnb-search/filter"
	"bnb-search/format"
	"bnb-search/models"
	"bnb-search/parser"
	"bnb-search/pricerange"
	"bnb-search/scheduler"
	"bnb-search/sheets"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

const dateLayout = "2006-01-02"

func main() {
	// Load .env if present (environment variables take precedence)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Parse command line arguments
	location := flag.String("location", "", "Search location (optional, if not provided, runs as Telegram bot)")
	checkIn := flag.String("checkin", "", "Check-in date (YYYY-MM-DD)")
	checkOut := flag.String("checkout", "", "Check-out date (YYYY-MM-DD)")
	adults := flag.Int("adults", 0, "Number of adults")
	children := flag.Int("children", 0, "Number of children")
	infants := flag.Int("infants", 0, "Number of infants")
	pets := flag.Int("pets", 0, "Number of pets")
	bookListing := flag.String("book", "", "Listing ID to book (runs booking validation instead of search)")
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	cataloguePath := flag.String("catalogue", "", "Path to a local catalogue JSON file (overrides config)")
	spreadsheetURL := flag.String("spreadsheet", "", "Google Sheets URL (optional in CLI mode)")
	credentialsPath := flag.String("credentials", "", "Path to Google service account credentials JSON file (or use GOOGLE_SHEETS_CREDENTIALS env var)")
	flag.Parse()

	cfg := loadConfig(*configPath)

	// If a listing ID is provided, run a one-shot booking
	if *bookListing != "" {
		runBookingMode(*bookListing, *checkIn, *checkOut, *adults, *children, *infants, *pets)
		return
	}

	// If a location is provided, run a one-shot search
	if *location != "" {
		runCLIMode(cfg, *location, *checkIn, *checkOut, *adults, *children, *infants, *pets, *cataloguePath, *spreadsheetURL, *credentialsPath)
		return
	}

	// Otherwise, run as Telegram bot
	runTelegramBot(cfg, *cataloguePath, *spreadsheetURL, *credentialsPath)
}

// runCLIMode runs a single search against the catalogue and prints results
func runCLIMode(cfg *config.Config, location, checkIn, checkOut string, adults, children, infants, pets int, cataloguePath, spreadsheetURL, credentialsPath string) {
	search, err := buildSearchFilters(location, checkIn, checkOut, adults, children, infants, pets)
	if err != nil {
		log.Fatalf("Invalid search parameters: %v\n", err)
	}

	f, err := buildFetcher(cfg, cataloguePath)
	if err != nil {
		log.Fatalf("Error: %v\n", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	listings, err := f.Fetch(ctx)
	if err != nil {
		log.Fatalf("Failed to load catalogue: %v\n", err)
	}

	state := cfg.FilterState()
	matcher := filter.NewMatcher()
	matched := matcher.Match(listings, state, search)

	// Display results to console
	fmt.Println(format.Summarize(search))
	fmt.Printf("Catalogue size: %d listings\n", len(listings))
	fmt.Println(format.FormatCount(len(matched)))
	fmt.Println("---")

	if len(matched) == 0 {
		return
	}

	formatListingsConsole(matched)

	// Price distribution over the matched set
	buckets := pricerange.Distribution(matched, pricerange.DefaultStep)
	if len(buckets) > 0 {
		fmt.Println("\nPrice distribution:")
		for _, b := range buckets {
			fmt.Printf("   %s: %d\n", b.Label, b.Count)
		}
	}

	// Write to Google Sheets when a spreadsheet is configured
	if spreadsheetURL == "" {
		return
	}

	spreadsheetID := sheets.ExtractSpreadsheetID(spreadsheetURL)
	if spreadsheetID == "" {
		log.Printf("Warning: Could not extract spreadsheet ID from URL: %s\n", spreadsheetURL)
		return
	}

	writer, err := sheets.NewWriter(spreadsheetID, credentialsPath)
	if err != nil {
		log.Printf("Warning: Failed to initialize Google Sheets writer: %v\n", err)
		return
	}

	sheetName := fmt.Sprintf("CLI_%s", time.Now().Format("20060102_150405"))
	_, _, err = writer.CreateSheetAndWriteListings(sheetName, matched, format.Summarize(search))
	if err != nil {
		log.Printf("Warning: Failed to write to Google Sheets: %v\n", err)
	} else {
		fmt.Printf("\nSuccessfully wrote %d listings to Google Sheets\n", len(matched))
	}
}

// runBookingMode validates and creates a single booking from the command line
func runBookingMode(listingID, checkIn, checkOut string, adults, children, infants, pets int) {
	if checkIn == "" || checkOut == "" {
		log.Fatalf("Error: -checkin and -checkout are required for booking")
	}

	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		log.Fatalf("Invalid check-in date %q: %v\n", checkIn, err)
	}
	out, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		log.Fatalf("Invalid check-out date %q: %v\n", checkOut, err)
	}

	if adults == 0 {
		adults = 1
	}

	database, err := db.NewDB()
	if err != nil {
		log.Fatalf("Error: Failed to initialize database: %v\n", err)
	}
	defer database.Close()

	service := booking.NewService(database, database.NewOracle())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	b, result, err := service.Create(ctx, booking.CreateRequest{
		ListingID: listingID,
		CheckIn:   in,
		CheckOut:  out,
		Adults:    adults,
		Children:  children,
		Infants:   infants,
		Pets:      pets,
	})
	if err != nil {
		log.Fatalf("Booking failed: %v\n", err)
	}

	for _, w := range result.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}

	if !result.Valid {
		fmt.Println("Booking rejected:")
		for _, e := range result.Errors {
			fmt.Printf("   - %s\n", e)
		}
		os.Exit(1)
	}

	fmt.Printf("Booking confirmed pending payment\n")
	fmt.Printf("   Confirmation code: %s\n", b.ID)
	fmt.Printf("   Stay: %s to %s (%d nights)\n", b.CheckIn.Format(dateLayout), b.CheckOut.Format(dateLayout), b.Nights())
	fmt.Printf("   Total price: $%.2f\n", b.TotalPrice)
}

// Allowed user IDs
var allowedUserIDs = map[int64]bool{
	420478432: true,
	425120436: true,
}

// handleCallbackQuery handles callback queries from inline keyboard buttons
func handleCallbackQuery(bot *tgbotapi.BotAPI, database *db.DB, callback *tgbotapi.CallbackQuery) {
	userID := callback.From.ID
	chatID := callback.Message.Chat.ID
	data := callback.Data

	// Acknowledge callback
	bot.Send(tgbotapi.NewCallback(callback.ID, ""))

	// Handle different callback types
	if strings.HasPrefix(data, "config_") {
		configType := strings.TrimPrefix(data, "config_")
		handleConfigCallback(bot, database, chatID, userID, configType, callback.Message.MessageID)
	} else if strings.HasPrefix(data, "set_") {
		// Format: set_configType_value
		parts := strings.SplitN(data, "_", 3)
		if len(parts) == 3 {
			configType := parts[1]
			valueStr := parts[2]
			handleSetConfigValue(bot, database, chatID, userID, configType, valueStr, callback.Message.MessageID)
		}
	}
}

// configText formats the current configuration for display
func configText(userConfig *db.UserConfig) string {
	amenities := "none"
	if len(userConfig.Amenities) > 0 {
		amenities = strings.Join(userConfig.Amenities, ", ")
	}
	return fmt.Sprintf(
		"⚙️ Current Configuration:\n\n"+
			"💰 Min Price: %.2f\n"+
			"💰 Max Price: %.2f\n"+
			"🏠 Place Type: %s\n"+
			"🛏 Bedrooms: %s\n"+
			"🛏 Beds: %s\n"+
			"🛁 Bathrooms: %s\n"+
			"✨ Amenities: %s\n\n"+
			"Click buttons below to change values:",
		userConfig.MinPrice, userConfig.MaxPrice, placeTypeLabel(userConfig.PlaceType),
		countLabel(userConfig.Bedrooms), countLabel(userConfig.Beds), countLabel(userConfig.Bathrooms),
		amenities)
}

// configKeyboard builds the main configuration menu keyboard
func configKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Min Price", "config_min_price"),
			tgbotapi.NewInlineKeyboardButtonData("💰 Max Price", "config_max_price"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Place Type", "config_place_type"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛏 Bedrooms", "config_bedrooms"),
			tgbotapi.NewInlineKeyboardButtonData("🛏 Beds", "config_beds"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛁 Bathrooms", "config_bathrooms"),
		),
	)
}

func placeTypeLabel(placeType string) string {
	switch models.PlaceType(placeType) {
	case models.PlaceRoom:
		return "Room"
	case models.PlaceEntireHome:
		return "Entire home"
	default:
		return "Any type"
	}
}

func countLabel(n int) string {
	if n == models.CountAny {
		return "Any"
	}
	return fmt.Sprintf("%d+", n)
}

// countKeyboard builds an "Any, 1+..4+" row pair for a room-count setting
func countKeyboard(configType string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Any", fmt.Sprintf("set_%s_any", configType)),
			tgbotapi.NewInlineKeyboardButtonData("1+", fmt.Sprintf("set_%s_1", configType)),
			tgbotapi.NewInlineKeyboardButtonData("2+", fmt.Sprintf("set_%s_2", configType)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("3+", fmt.Sprintf("set_%s_3", configType)),
			tgbotapi.NewInlineKeyboardButtonData("4+", fmt.Sprintf("set_%s_4", configType)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", "config_back"),
		),
	)
}

// handleConfigCallback shows options for changing a specific config value
func handleConfigCallback(bot *tgbotapi.BotAPI, database *db.DB, chatID int64, userID int64, configType string, messageID int) {
	userConfig, err := database.GetUserConfig(userID)
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Error loading config: %v", err)))
		return
	}

	var text string
	var keyboard tgbotapi.InlineKeyboardMarkup

	switch configType {
	case "min_price":
		text = fmt.Sprintf("💰 Min Price\n\nCurrent: %.2f\n\nSelect new value:", userConfig.MinPrice)
		keyboard = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("0", "set_min-price_0"),
				tgbotapi.NewInlineKeyboardButtonData("50", "set_min-price_50"),
				tgbotapi.NewInlineKeyboardButtonData("100", "set_min-price_100"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("200", "set_min-price_200"),
				tgbotapi.NewInlineKeyboardButtonData("500", "set_min-price_500"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔙 Back", "config_back"),
			),
		)
	case "max_price":
		text = fmt.Sprintf("💰 Max Price\n\nCurrent: %.2f\n\nSelect new value:", userConfig.MaxPrice)
		keyboard = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("100", "set_max-price_100"),
				tgbotapi.NewInlineKeyboardButtonData("250", "set_max-price_250"),
				tgbotapi.NewInlineKeyboardButtonData("500", "set_max-price_500"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("1000", "set_max-price_1000"),
				tgbotapi.NewInlineKeyboardButtonData("No limit", "set_max-price_0"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔙 Back", "config_back"),
			),
		)
	case "place_type":
		text = fmt.Sprintf("🏠 Place Type\n\nCurrent: %s\n\nSelect new value:", placeTypeLabel(userConfig.PlaceType))
		keyboard = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Any type", "set_place-type_any"),
				tgbotapi.NewInlineKeyboardButtonData("Room", "set_place-type_room"),
				tgbotapi.NewInlineKeyboardButtonData("Entire home", "set_place-type_entire-home"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔙 Back", "config_back"),
			),
		)
	case "bedrooms":
		text = fmt.Sprintf("🛏 Bedrooms\n\nCurrent: %s\n\nSelect new value:", countLabel(userConfig.Bedrooms))
		keyboard = countKeyboard("bedrooms")
	case "beds":
		text = fmt.Sprintf("🛏 Beds\n\nCurrent: %s\n\nSelect new value:", countLabel(userConfig.Beds))
		keyboard = countKeyboard("beds")
	case "bathrooms":
		text = fmt.Sprintf("🛁 Bathrooms\n\nCurrent: %s\n\nSelect new value:", countLabel(userConfig.Bathrooms))
		keyboard = countKeyboard("bathrooms")
	case "back":
		text = configText(userConfig)
		keyboard = configKeyboard()
	default:
		return
	}

	// Edit the message with new keyboard
	editMsg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	editMsg.ReplyMarkup = &keyboard
	bot.Send(editMsg)
}

// handleSetConfigValue updates a config value and shows confirmation
func handleSetConfigValue(bot *tgbotapi.BotAPI, database *db.DB, chatID int64, userID int64, configType string, valueStr string, messageID int) {
	var err error
	var updateText string

	parseCount := func() (int, bool) {
		if valueStr == "any" {
			return models.CountAny, true
		}
		value, parseErr := strconv.Atoi(valueStr)
		if parseErr != nil {
			bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Invalid value: %s", valueStr)))
			return 0, false
		}
		return value, true
	}

	switch configType {
	case "min-price":
		value, parseErr := strconv.ParseFloat(valueStr, 64)
		if parseErr != nil {
			bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Invalid value: %s", valueStr)))
			return
		}
		err = database.UpdateUserConfig(userID, &value, nil, nil, nil, nil, nil)
		updateText = fmt.Sprintf("✅ Min Price updated to %.2f", value)
	case "max-price":
		value, parseErr := strconv.ParseFloat(valueStr, 64)
		if parseErr != nil {
			bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Invalid value: %s", valueStr)))
			return
		}
		err = database.UpdateUserConfig(userID, nil, &value, nil, nil, nil, nil)
		if value == 0 {
			updateText = "✅ Max Price limit removed"
		} else {
			updateText = fmt.Sprintf("✅ Max Price updated to %.2f", value)
		}
	case "place-type":
		value := valueStr
		err = database.UpdateUserConfig(userID, nil, nil, &value, nil, nil, nil)
		updateText = fmt.Sprintf("✅ Place Type updated to %s", placeTypeLabel(value))
	case "bedrooms":
		value, ok := parseCount()
		if !ok {
			return
		}
		err = database.UpdateUserConfig(userID, nil, nil, nil, &value, nil, nil)
		updateText = fmt.Sprintf("✅ Bedrooms updated to %s", countLabel(value))
	case "beds":
		value, ok := parseCount()
		if !ok {
			return
		}
		err = database.UpdateUserConfig(userID, nil, nil, nil, nil, &value, nil)
		updateText = fmt.Sprintf("✅ Beds updated to %s", countLabel(value))
	case "bathrooms":
		value, ok := parseCount()
		if !ok {
			return
		}
		err = database.UpdateUserConfig(userID, nil, nil, nil, nil, nil, &value)
		updateText = fmt.Sprintf("✅ Bathrooms updated to %s", countLabel(value))
	default:
		bot.Send(tgbotapi.NewMessage(chatID, "Unknown config type"))
		return
	}

	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Error updating config: %v", err)))
		return
	}

	// Show updated config
	userConfig, err := database.GetUserConfig(userID)
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, updateText))
		return
	}

	keyboard := configKeyboard()
	editMsg := tgbotapi.NewEditMessageText(chatID, messageID, updateText+"\n\n"+configText(userConfig))
	editMsg.ReplyMarkup = &keyboard
	bot.Send(editMsg)
}

// runTelegramBot runs the search engine as a Telegram bot
func runTelegramBot(cfg *config.Config, cataloguePath, spreadsheetURL, credentialsPath string) {
	// Get bot token from environment
	botToken := os.Getenv("BNB_KEY_TG")
	if botToken == "" {
		log.Fatalf("Error: BNB_KEY_TG environment variable is not set")
	}

	// Initialize bot
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Fatalf("Failed to initialize bot: %v\n", err)
	}

	log.Printf("Authorized on account %s\n", bot.Self.UserName)

	// Initialize database
	database, err := db.NewDB()
	if err != nil {
		log.Fatalf("Error: Failed to initialize database: %v\n", err)
	}
	defer database.Close()
	log.Println("Database initialized successfully")

	// Initialize Google Sheets writer
	if spreadsheetURL == "" {
		spreadsheetURL = os.Getenv("BNB_SPREADSHEET_URL")
	}
	spreadsheetID := sheets.ExtractSpreadsheetID(spreadsheetURL)
	if spreadsheetID == "" {
		log.Fatalf("Error: Could not extract spreadsheet ID from URL: %s\n", spreadsheetURL)
	}

	// Check if credentials are available
	credsEnv := os.Getenv("GOOGLE_SHEETS_CREDENTIALS")
	if credentialsPath == "" && credsEnv == "" {
		log.Fatalf("Error: GOOGLE_SHEETS_CREDENTIALS environment variable is not set and no credentials file path provided")
	}

	writer, err := sheets.NewWriter(spreadsheetID, credentialsPath)
	if err != nil {
		log.Fatalf("Error: Failed to initialize Google Sheets writer: %v\n", err)
	}

	log.Printf("Google Sheets writer initialized for spreadsheet: %s\n", spreadsheetID)

	// Initialize the catalogue fetcher
	catalogueFetcher, err := buildFetcher(cfg, cataloguePath)
	if err != nil {
		log.Fatalf("Error: %v\n", err)
	}

	// Initialize and start scheduler (catalogue is fetched on-demand)
	sched := scheduler.NewScheduler(database, bot, writer, catalogueFetcher, spreadsheetURL, cfg.Catalogue.RefreshMinutes)
	sched.Start()
	log.Println("Scheduler started")
	defer sched.Stop()

	// Set up update configuration - start from latest update to skip old ones
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updateConfig.Offset = -1 // This will get only new updates

	updates := bot.GetUpdatesChan(updateConfig)

	// Handle updates
	for update := range updates {
		// Handle callback queries (button presses)
		if update.CallbackQuery != nil {
			userID := update.CallbackQuery.From.ID
			if !allowedUserIDs[userID] {
				log.Printf("Unauthorized user attempted to use callback: %d\n", userID)
				bot.Send(tgbotapi.NewCallback(update.CallbackQuery.ID, "Sorry, you are not authorized."))
				continue
			}

			if update.CallbackQuery.Message != nil {
				handleCallbackQuery(bot, database, update.CallbackQuery)
			}
			continue
		}

		if update.Message == nil {
			continue
		}

		userID := update.Message.From.ID

		// Handle commands first
		if update.Message.IsCommand() {
			command := update.Message.Command()
			if command != "start" && !allowedUserIDs[userID] {
				log.Printf("Unauthorized user attempted to use command: %d\n", userID)
				msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Sorry, you are not authorized to use this bot.")
				bot.Send(msg)
				continue
			}

			switch command {
			case "start":
				// Check if user is allowed
				if !allowedUserIDs[userID] {
					log.Printf("Unauthorized user attempted to use bot: %d\n", userID)
					msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Sorry, you are not authorized to use this bot.")
					bot.Send(msg)
					continue
				}

				// Initialize user config
				_, err := database.GetUserConfig(userID)
				if err != nil {
					log.Printf("Warning: Failed to initialize user config for user %d: %v\n", userID, err)
				} else {
					log.Printf("User config initialized for user %d\n", userID)
				}

				// Send welcome message
				welcomeMsg := tgbotapi.NewMessage(update.Message.Chat.ID, "Welcome! Send me a search like:\n\nAustin, TX | 2026-09-10 | 2026-09-15 | 2 adults\n\nResults will be added to Google Sheets.")
				bot.Send(welcomeMsg)

				// Send spreadsheet link as separate message and pin it
				spreadsheetMsg := tgbotapi.NewMessage(update.Message.Chat.ID, fmt.Sprintf("📊 Spreadsheet: %s", spreadsheetURL))
				sentSpreadsheetMsg, err := bot.Send(spreadsheetMsg)
				if err == nil {
					pinMsg := tgbotapi.PinChatMessageConfig{
						ChatID:              update.Message.Chat.ID,
						MessageID:           sentSpreadsheetMsg.MessageID,
						DisableNotification: false,
					}
					bot.Send(pinMsg)
				}
			case "help":
				helpText := "Commands:\n/start - Start the bot\n/help - Show this help\n/config - Configure filter settings\n/amenities wifi, kitchen - Require amenities (no arguments clears)\n/bookings - List your bookings, optionally by status\n\nSend a search as pipe-separated parts:\n\nlocation | check-in | check-out | guests\n\nExamples:\nParis\nDenver, CO | 2026-10-01 | 2026-10-05\nMiami | 2026-12-20 | 2026-12-27 | 2 adults, 1 child, 1 pet"
				msg := tgbotapi.NewMessage(update.Message.Chat.ID, helpText)
				bot.Send(msg)
			case "config":
				// Show config with buttons
				userConfig, err := database.GetUserConfig(userID)
				if err != nil {
					msg := tgbotapi.NewMessage(update.Message.Chat.ID, fmt.Sprintf("Error loading config: %v", err))
					bot.Send(msg)
					continue
				}

				msg := tgbotapi.NewMessage(update.Message.Chat.ID, configText(userConfig))
				msg.ReplyMarkup = configKeyboard()
				bot.Send(msg)
			case "amenities":
				// /amenities wifi, kitchen, pool  (no arguments clears the list)
				var amenities []string
				for _, a := range strings.Split(update.Message.CommandArguments(), ",") {
					if a = strings.TrimSpace(a); a != "" {
						amenities = append(amenities, a)
					}
				}
				if err := database.UpdateUserAmenities(userID, amenities); err != nil {
					msg := tgbotapi.NewMessage(update.Message.Chat.ID, fmt.Sprintf("❌ Error updating amenities: %v", err))
					bot.Send(msg)
					continue
				}
				reply := "✅ Amenity filter cleared"
				if len(amenities) > 0 {
					reply = fmt.Sprintf("✅ Amenity filter set to: %s", strings.Join(amenities, ", "))
				}
				bot.Send(tgbotapi.NewMessage(update.Message.Chat.ID, reply))
			case "bookings":
				// /bookings [status]  e.g. /bookings confirmed
				status := strings.TrimSpace(update.Message.CommandArguments())
				bookings, err := database.GetUserBookings(userID, status)
				if err != nil {
					msg := tgbotapi.NewMessage(update.Message.Chat.ID, fmt.Sprintf("❌ Error loading bookings: %v", err))
					bot.Send(msg)
					continue
				}
				if len(bookings) == 0 {
					bot.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "No bookings found."))
					continue
				}
				var sb strings.Builder
				sb.WriteString("Your bookings:\n")
				for _, b := range bookings {
					fmt.Fprintf(&sb, "\n%s\n   %s to %s (%d nights)\n   $%.2f • %s\n",
						b.ID, b.CheckIn.Format(dateLayout), b.CheckOut.Format(dateLayout), b.Nights(), b.TotalPrice, b.Status)
				}
				bot.Send(tgbotapi.NewMessage(update.Message.Chat.ID, sb.String()))
			case "clear":
				// Clear the spreadsheet (write empty data)
				if err := writer.WriteListings([]models.Listing{}, true); err != nil {
					msg := tgbotapi.NewMessage(update.Message.Chat.ID, fmt.Sprintf("Failed to clear spreadsheet: %v", err))
					bot.Send(msg)
				} else {
					msg := tgbotapi.NewMessage(update.Message.Chat.ID, "✅ Spreadsheet cleared successfully!")
					bot.Send(msg)
				}
			default:
				msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Unknown command. Use /help for available commands.")
				bot.Send(msg)
			}
			continue
		}

		// Check if user is allowed (for non-command messages)
		if !allowedUserIDs[userID] {
			log.Printf("Unauthorized user attempted to use bot: %d\n", userID)
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Sorry, you are not authorized to use this bot.")
			bot.Send(msg)
			continue
		}

		// Handle search messages
		text := strings.TrimSpace(update.Message.Text)
		if text == "" {
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Please send me a search. Try /help for the format.")
			bot.Send(msg)
			continue
		}

		filters, err := parseSearchMessage(text)
		if err != nil {
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, fmt.Sprintf("Could not understand that search: %v\n\nTry /help for the format.", err))
			bot.Send(msg)
			continue
		}

		// Send processing message
		processingMsg := tgbotapi.NewMessage(update.Message.Chat.ID, "📝 Request received! Your search has been queued and will be processed shortly.")
		sentMsg, err := bot.Send(processingMsg)
		if err != nil {
			log.Printf("Error sending processing message: %v\n", err)
			continue
		}

		// Save request to database
		req, err := database.CreateRequest(userID, sentMsg.MessageID, filters)
		if err != nil {
			log.Printf("Error creating request: %v\n", err)
			errorMsg := tgbotapi.NewEditMessageText(update.Message.Chat.ID, sentMsg.MessageID, fmt.Sprintf("❌ Error: Failed to create request: %v", err))
			bot.Send(errorMsg)
			continue
		}

		log.Printf("Created request ID %d for user %d\n", req.ID, userID)
	}
}

// loadConfig loads configuration from file or returns defaults
func loadConfig(configPath string) *config.Config {
	var cfg *config.Config
	if _, err := os.Stat(configPath); err == nil {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			log.Printf("Warning: Failed to load config file: %v. Using defaults.\n", err)
			cfg = config.GetDefaultConfig()
		}
	} else {
		log.Println("Config file not found. Using default configuration.")
		cfg = config.GetDefaultConfig()
	}
	return cfg
}

// buildFetcher picks the catalogue source: explicit file flag, configured
// file, then configured URL
func buildFetcher(cfg *config.Config, cataloguePath string) (fetcher.Fetcher, error) {
	if cataloguePath != "" {
		return fetcher.NewFileFetcher(cataloguePath), nil
	}
	if cfg.Catalogue.File != "" {
		return fetcher.NewFileFetcher(cfg.Catalogue.File), nil
	}
	if cfg.Catalogue.URL != "" {
		return fetcher.NewHTTPFetcher(cfg.Catalogue.URL), nil
	}
	return nil, fmt.Errorf("no catalogue source configured: set catalogue.file or catalogue.url in the config, or pass -catalogue")
}

// buildSearchFilters assembles search filters from CLI flags
func buildSearchFilters(location, checkIn, checkOut string, adults, children, infants, pets int) (models.SearchFilters, error) {
	raw := parser.RawSearchState{}
	if location != "" {
		raw.Location = &location
	}
	if checkIn != "" {
		t, err := time.Parse(dateLayout, checkIn)
		if err != nil {
			return models.SearchFilters{}, fmt.Errorf("invalid check-in date %q: %w", checkIn, err)
		}
		raw.StartDate = &t
	}
	if checkOut != "" {
		t, err := time.Parse(dateLayout, checkOut)
		if err != nil {
			return models.SearchFilters{}, fmt.Errorf("invalid check-out date %q: %w", checkOut, err)
		}
		raw.EndDate = &t
	}
	if adults > 0 {
		raw.Adults = &adults
	}
	if children > 0 {
		raw.Children = &children
	}
	if infants > 0 {
		raw.Infants = &infants
	}
	if pets > 0 {
		raw.Pets = &pets
	}
	return parser.ExtractSearchFilters(&raw), nil
}

// parseSearchMessage parses a pipe-separated search message:
//
//	location | check-in | check-out | guests
//
// where guests looks like "2 adults, 1 child, 1 infant, 1 pet". Everything
// after the location is optional.
func parseSearchMessage(text string) (models.SearchFilters, error) {
	parts := strings.Split(text, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if parts[0] == "" {
		return models.SearchFilters{}, fmt.Errorf("missing location")
	}

	raw := parser.RawSearchState{Location: &parts[0]}

	if len(parts) > 1 && parts[1] != "" {
		t, err := time.Parse(dateLayout, parts[1])
		if err != nil {
			return models.SearchFilters{}, fmt.Errorf("invalid check-in date %q (expected YYYY-MM-DD)", parts[1])
		}
		raw.StartDate = &t
	}
	if len(parts) > 2 && parts[2] != "" {
		t, err := time.Parse(dateLayout, parts[2])
		if err != nil {
			return models.SearchFilters{}, fmt.Errorf("invalid check-out date %q (expected YYYY-MM-DD)", parts[2])
		}
		raw.EndDate = &t
	}
	if len(parts) > 3 && parts[3] != "" {
		adults, children, infants, pets, err := parseGuestPhrase(parts[3])
		if err != nil {
			return models.SearchFilters{}, err
		}
		if adults > 0 {
			raw.Adults = &adults
		}
		if children > 0 {
			raw.Children = &children
		}
		if infants > 0 {
			raw.Infants = &infants
		}
		if pets > 0 {
			raw.Pets = &pets
		}
	}

	return parser.ExtractSearchFilters(&raw), nil
}

// parseGuestPhrase parses "2 adults, 1 child, 1 infant, 1 pet"
func parseGuestPhrase(phrase string) (adults, children, infants, pets int, err error) {
	for _, part := range strings.Split(phrase, ",") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) != 2 {
			return 0, 0, 0, 0, fmt.Errorf("invalid guest phrase %q (expected like \"2 adults\")", part)
		}

		count, convErr := strconv.Atoi(fields[0])
		if convErr != nil || count < 0 {
			return 0, 0, 0, 0, fmt.Errorf("invalid guest count %q", fields[0])
		}

		switch strings.ToLower(strings.TrimSuffix(fields[1], "s")) {
		case "adult":
			adults = count
		case "child", "children", "kid":
			children = count
		case "infant", "baby", "babie":
			infants = count
		case "pet", "dog", "cat":
			pets = count
		default:
			return 0, 0, 0, 0, fmt.Errorf("unknown guest type %q", fields[1])
		}
	}
	return adults, children, infants, pets, nil
}

// formatListingsConsole formats listings for console output
func formatListingsConsole(listings []models.Listing) {
	for i, listing := range listings {
		fmt.Printf("\n%d. %s\n", i+1, listing.Title)

		if listing.City != "" {
			place := listing.City
			if listing.State != "" {
				place += ", " + listing.State
			}
			fmt.Printf("   Location: %s\n", place)
		}

		if listing.PropertyType != "" {
			fmt.Printf("   Type: %s\n", listing.PropertyType)
		}

		if listing.Price > 0 {
			fmt.Printf("   Price: $%.2f / night\n", listing.Price)
		} else {
			fmt.Printf("   Price: Not available\n")
		}

		if listing.Rating > 0 {
			fmt.Printf("   Rating: %g\n", listing.Rating)
		}

		if listing.IsGuestFavorite {
			fmt.Printf("   ⭐ Guest favorite\n")
		}

		if len(listing.Amenities) > 0 {
			shown := listing.Amenities
			if len(shown) > 5 {
				shown = shown[:5]
			}
			fmt.Printf("   Amenities: %s\n", strings.Join(shown, ", "))
		}
	}
}

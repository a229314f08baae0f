package main

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/JoseExp44/StockWebApp/adapters/csvstore"
	"github.com/JoseExp44/StockWebApp/adapters/postgres"
	"github.com/JoseExp44/StockWebApp/adapters/provider"
	"github.com/JoseExp44/StockWebApp/adapters/yahoo"
	"github.com/JoseExp44/StockWebApp/app"
	"github.com/JoseExp44/StockWebApp/domain/market"
	"github.com/JoseExp44/StockWebApp/internal"
	"github.com/JoseExp44/StockWebApp/internal/config"
	"github.com/JoseExp44/StockWebApp/ports"
	"github.com/JoseExp44/StockWebApp/ui"
)

// sessionTTL is how long an idle browser session keeps its chart state
const sessionTTL = 30 * time.Minute

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	quotes, err := buildQuoteRepository(appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to initialize quote store: %v", err)
	}

	tickers := make([]market.Ticker, 0, len(appConfig.Data.Tickers))
	for _, t := range appConfig.Data.Tickers {
		tickers = append(tickers, market.Ticker(t))
	}

	if appConfig.Data.SkipDownload {
		logger.Info("skipping startup download (SKIP_DOWNLOAD set)")
	} else {
		logger.Info("downloading stock data for all tickers...")
		fetcher := yahoo.NewClient(appConfig.Data.FetchTimeout)
		downloader := app.NewDownloader(fetcher, quotes, appConfig.Data.DownloadPeriod, logger)
		cached, err := downloader.RefreshAll(context.Background(), tickers)
		if err != nil {
			log.Fatalf("Download aborted: %v", err)
		}
		logger.Info("download complete: %d/%d tickers cached", cached, len(tickers))
	}

	localProvider := provider.NewLocal(quotes, logger)
	sessions := app.NewSessionManager(localProvider, sessionTTL, logger)
	defer sessions.Close()
	catalog := app.NewCatalog(quotes)

	webApp, err := ui.NewApp(sessions, catalog, logger)
	if err != nil {
		log.Fatalf("Failed to create web app: %v", err)
	}

	logger.Info("starting web server on port %s...", appConfig.Server.Port)
	log.Fatal(webApp.Start(":" + appConfig.Server.Port))
}

// buildQuoteRepository picks PostgreSQL when DATABASE_URL is set and
// falls back to the CSV cache otherwise
func buildQuoteRepository(appConfig *config.Config, logger *internal.Logger) (ports.QuoteRepository, error) {
	tickers := make([]market.Ticker, 0, len(appConfig.Data.Tickers))
	for _, t := range appConfig.Data.Tickers {
		tickers = append(tickers, market.Ticker(t))
	}

	if appConfig.Database.URL == "" {
		logger.Info("using CSV quote cache in %s", appConfig.Data.DataDir)
		return csvstore.NewRepository(appConfig.Data.DataDir, tickers)
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	logger.Info("using PostgreSQL quote store")
	return postgres.NewQuoteRepository(db)
}

// Command fetch refreshes the quote cache without starting the web
// server, for cron-style scheduled downloads.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/JoseExp44/StockWebApp/adapters/csvstore"
	"github.com/JoseExp44/StockWebApp/adapters/yahoo"
	"github.com/JoseExp44/StockWebApp/app"
	"github.com/JoseExp44/StockWebApp/domain/market"
	"github.com/JoseExp44/StockWebApp/internal"
	"github.com/JoseExp44/StockWebApp/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewDefaultLogger()

	tickers := make([]market.Ticker, 0, len(appConfig.Data.Tickers))
	for _, t := range appConfig.Data.Tickers {
		tickers = append(tickers, market.Ticker(t))
	}

	quotes, err := csvstore.NewRepository(appConfig.Data.DataDir, tickers)
	if err != nil {
		log.Fatalf("Failed to open quote cache: %v", err)
	}

	fetcher := yahoo.NewClient(appConfig.Data.FetchTimeout)
	downloader := app.NewDownloader(fetcher, quotes, appConfig.Data.DownloadPeriod, logger)

	cached, err := downloader.RefreshAll(context.Background(), tickers)
	if err != nil {
		log.Fatalf("Download aborted: %v", err)
	}
	logger.Info("cached %d/%d tickers", cached, len(tickers))
}

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository/postgres"
	"github.com/jafarshop/storefront/internal/shopify"
)

// Installs a shop without going through the browser callback, e.g. for a
// development store whose tunnel URL is not reachable from Shopify.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/oauth-token/main.go <shop-domain> [code]")
		fmt.Println("Example: go run cmd/oauth-token/main.go example.myshopify.com")
		fmt.Println("\nSteps:")
		fmt.Println("1. Run this script - it will give you an authorization URL")
		fmt.Println("2. Visit the URL in your browser and authorize")
		fmt.Println("3. Copy the 'code' from the redirect URL")
		fmt.Println("4. Run the script again with the code; the token is stored for the shop")
		os.Exit(1)
	}

	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateShopify(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	shop := os.Args[1]
	shop = strings.TrimPrefix(shop, "https://")
	shop = strings.TrimPrefix(shop, "http://")
	shop = strings.TrimSuffix(shop, "/")

	if len(os.Args) < 3 {
		fmt.Printf("Step 1: Authorize the app\n\n")
		fmt.Printf("Visit this URL in your browser:\n")
		fmt.Printf("%s\n\n", shopify.AuthorizeURL(shop, cfg.Shopify.APIKey, cfg.Shopify.Scopes, cfg.RedirectURI()))
		fmt.Printf("Then run:\n")
		fmt.Printf("go run cmd/oauth-token/main.go %s <code>\n", shop)
		return
	}

	if cfg.Shopify.APISecret == "" {
		fmt.Fprintln(os.Stderr, "SHOPIFY_API_SECRET is required to exchange the code")
		os.Exit(1)
	}

	ctx := context.Background()
	logger := zap.NewNop()

	accessToken, err := shopify.NewOAuthClient(cfg.Shopify, nil, logger).ExchangeCode(ctx, shop, os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get access token: %v\n", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	if err := repos.Token.Upsert(ctx, &domain.Token{Shop: shop, Token: accessToken}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to store access token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Access token stored for %s\n", shop)
}

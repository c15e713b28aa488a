// Command seed wipes the users and products collections and repopulates them
// with a demo dataset: one admin, three sellers, and a catalogue spread across
// categories with varied prices and stock levels so the dashboard views have
// something to show.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/markethub/marketplace-api/internal/core/domain"
	"github.com/markethub/marketplace-api/internal/core/ports"
	mongodb "github.com/markethub/marketplace-api/internal/infrastructure/db/mongo"
	"github.com/markethub/marketplace-api/internal/infrastructure/storage"
	"github.com/markethub/marketplace-api/internal/pkg/config"
	"github.com/markethub/marketplace-api/pkg/logger"
)

type seedUser struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

var seedUsers = []seedUser{
	{Username: "admin", Email: "admin@markethub.com", Password: "Admin123!", Role: domain.RoleAdmin},
	{Username: "alice_seller", Email: "alice@example.com", Password: "User123!", Role: domain.RoleUser},
	{Username: "bob_shop", Email: "bob@example.com", Password: "User123!", Role: domain.RoleUser},
	{Username: "carol_tech", Email: "carol@example.com", Password: "User123!", Role: domain.RoleUser},
}

type seedProduct struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	ImageSeed   string
	Owner       string // username of the owner
}

var seedProducts = []seedProduct{
	{"MacBook Pro 15\"", "Apple laptop with M-series chip, 16GB RAM and 512GB SSD.", 2499, 8, "Electronics", "macbook", "admin"},
	{"Dell UltraSharp 27\" 4K", "27-inch 4K IPS monitor with USB-C delivery.", 649.99, 15, "Electronics", "monitor", "admin"},
	{"Logitech MX Master 3S", "Ergonomic wireless mouse with quiet clicks.", 99.99, 120, "Electronics", "mouse", "alice_seller"},
	{"Keychron K8 Pro", "Wireless mechanical keyboard with hot-swappable switches.", 109, 45, "Electronics", "keyboard", "alice_seller"},
	{"Anker 65W GaN Charger", "Compact USB-C fast charger for laptops and phones.", 39.99, 200, "Electronics", "charger", "carol_tech"},
	{"Sony WH-1000XM5", "Industry-leading noise cancelling over-ear headphones.", 399.99, 30, "Audio", "headphones", "carol_tech"},
	{"Blue Yeti X", "Professional USB microphone for streaming and podcasts.", 169.99, 18, "Audio", "microphone", "carol_tech"},
	{"JBL Charge 5", "Portable waterproof Bluetooth speaker with powerbank.", 179.95, 60, "Audio", "speaker", "bob_shop"},
	{"Herman Miller Aeron Chair", "Ergonomic office chair, size B, fully adjustable.", 1395, 5, "Furniture", "chair", "bob_shop"},
	{"FlexiSpot E7 Standing Desk", "Electric height-adjustable desk frame with memory presets.", 499.99, 12, "Furniture", "desk", "bob_shop"},
	{"Peak Design Everyday Backpack", "20L camera and laptop backpack with weatherproof shell.", 279.95, 25, "Accessories", "backpack", "alice_seller"},
	{"Laptop Sleeve 15\"", "Padded neoprene sleeve with accessory pocket.", 24.99, 150, "Accessories", "sleeve", "alice_seller"},
	{"Moleskine Classic Notebook", "Hardcover dotted notebook, large, 240 pages.", 22.95, 300, "Office Supplies", "notebook", "bob_shop"},
	{"Stabilo Highlighter Set", "Pack of six pastel highlighters.", 8.49, 500, "Office Supplies", "highlighter", "bob_shop"},
	{"Fujifilm Instax Mini 12", "Instant camera with automatic exposure.", 79.95, 14, "Photography", "instax", "carol_tech"},
	{"Manfrotto Compact Tripod", "Lightweight aluminium tripod with ball head.", 89.99, 9, "Photography", "tripod", "carol_tech"},
	{"Desk Plant Trio", "Three low-maintenance succulents in ceramic pots.", 34.5, 40, "Office Decor", "plants", "alice_seller"},
	{"LED Desk Lamp", "Dimmable lamp with wireless charging base.", 54.99, 17, "Office Decor", "lamp", "admin"},
}

func main() {
	fetchImages := flag.Bool("images", false, "download placeholder images and store them through the configured image store")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer client.Disconnect(context.Background())

	for _, name := range []string{"users", "products"} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("failed to drop collection")
		}
	}

	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create product indexes")
	}

	var images ports.ImageStore
	if *fetchImages {
		if cfg.Uploads.Storage == "disk" {
			images, err = storage.NewDiskStore(cfg.Uploads.Dir, "/uploads")
			if err != nil {
				log.Fatal().Err(err).Msg("failed to initialise disk image store")
			}
		} else {
			images = storage.NewInlineStore()
		}
	}

	idByUsername := make(map[string]string, len(seedUsers))
	for _, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to hash password")
		}
		created, err := userRepo.Create(ctx, &domain.User{
			Username:     su.Username,
			Email:        su.Email,
			PasswordHash: string(hash),
			Role:         su.Role,
		})
		if err != nil {
			log.Fatal().Err(err).Str("username", su.Username).Msg("failed to create user")
		}
		idByUsername[su.Username] = created.ID
		log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("created user")
	}

	for _, sp := range seedProducts {
		ownerID, ok := idByUsername[sp.Owner]
		if !ok {
			log.Fatal().Str("owner", sp.Owner).Msg("seed product references unknown owner")
		}

		product := &domain.Product{
			Name:        sp.Name,
			Description: sp.Description,
			Price:       sp.Price,
			Quantity:    sp.Quantity,
			Category:    sp.Category,
			OwnerID:     ownerID,
		}

		url := fmt.Sprintf("https://picsum.photos/seed/%s/600/400", sp.ImageSeed)
		if images != nil {
			ref, err := fetchImage(ctx, images, url)
			if err != nil {
				log.Warn().Err(err).Str("product", sp.Name).Msg("image download failed, keeping remote url")
				product.Image.SetURL(url)
			} else {
				product.Image = ref
			}
		} else {
			product.Image.SetURL(url)
		}

		if _, err := productRepo.Create(ctx, product); err != nil {
			log.Fatal().Err(err).Str("product", sp.Name).Msg("failed to create product")
		}
		log.Info().Str("product", sp.Name).Str("category", sp.Category).Msg("created product")
	}

	log.Info().Int("users", len(seedUsers)).Int("products", len(seedProducts)).Msg("seed complete")
}

// fetchImage downloads a placeholder image and re-stores it through the
// configured image store so seeded data matches what uploads produce.
func fetchImage(ctx context.Context, images ports.ImageStore, url string) (domain.ImageRef, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.ImageRef{}, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return domain.ImageRef{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ImageRef{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return domain.ImageRef{}, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return images.Store(ctx, data, contentType)
}

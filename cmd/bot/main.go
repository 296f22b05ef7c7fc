package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/clients/sheets"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/config"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/handlers/discord"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/repositories/characters"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/repositories/timezones"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/repositories/wizardsessions"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/services"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/services/sheetsync"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Application ID: %s", cfg.Discord.AppID)
	if cfg.Discord.GuildID != "" {
		log.Printf("Guild ID: %s", cfg.Discord.GuildID)
	}
	if len(cfg.Guilds.Names) > 0 {
		log.Printf("Guilds: %v", cfg.Guilds.Names)
	} else {
		log.Println("No guilds configured, wizard will skip the guild step")
	}

	// Create Discord session
	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	providerConfig := &services.ProviderConfig{
		GuildNames: cfg.Guilds.Names,
		Sync: &sheetsync.SchedulerConfig{
			MinInterval: cfg.Sync.MinInterval,
			MaxInterval: cfg.Sync.MaxInterval,
			PushTimeout: cfg.Sync.PushTimeout,
		},
	}

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	// Connect to Redis if configured
	if cfg.Redis.Addr != "" {
		log.Printf("Connecting to Redis at: %s", cfg.Redis.Addr)

		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
			cancel()
			log.Printf("Failed to connect to Redis: %v", pingErr)
			log.Println("Falling back to in-memory repositories")
			redisClient = nil
		} else {
			cancel()
			log.Println("Successfully connected to Redis")

			providerConfig.SessionRepository = wizardsessions.NewRedis(&wizardsessions.RedisConfig{
				Client: redisClient,
				TTL:    cfg.Wizard.SessionTTL,
			})
			providerConfig.CharacterRepository = characters.NewRedis(&characters.RedisRepoConfig{
				Client: redisClient,
			})
			providerConfig.TimezoneRepository = timezones.NewRedis(redisClient)

			log.Println("Using Redis for persistence")
		}
	} else {
		log.Println("No REDIS_ADDR found, using in-memory repositories")
	}

	// Connect the spreadsheet mirror if configured
	if cfg.Sheets.SpreadsheetID != "" {
		sheetsClient, sheetsErr := sheets.NewClient(context.Background(), &sheets.Config{
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			SheetName:       cfg.Sheets.SheetName,
			CredentialsFile: cfg.Sheets.CredentialsFile,
		})
		if sheetsErr != nil {
			log.Fatalf("Failed to create sheets client: %v", sheetsErr)
		}
		providerConfig.Recordkeeper = sheetsClient
		log.Printf("Mirroring roster to spreadsheet %s (%s)", cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName)
	} else {
		log.Println("No SHEETS_SPREADSHEET_ID found, roster pushes will be logged only")
	}

	// Create service provider
	serviceProvider := services.NewProvider(providerConfig)
	defer serviceProvider.Scheduler.Stop()

	// Periodically sweep expired wizard sessions
	sweepDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.Wizard.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				removed, sweepErr := serviceProvider.WizardService.Sweep(context.Background())
				if sweepErr != nil {
					log.Printf("Session sweep failed: %v", sweepErr)
				} else if removed > 0 {
					log.Printf("Swept %d expired wizard sessions", removed)
				}
			case <-sweepDone:
				return
			}
		}
	}()
	defer close(sweepDone)

	// Create Discord handler
	handler := discord.NewHandler(&discord.HandlerConfig{
		ServiceProvider: serviceProvider,
	})

	// Register interaction handler
	dg.AddHandler(handler.HandleInteraction)

	// Open connection to Discord
	err = dg.Open()
	if err != nil {
		log.Printf("Failed to open Discord connection: %v", err)
		return
	}
	defer func() {
		clientErr := dg.Close()
		if clientErr != nil {
			log.Printf("Failed to close Discord connection: %v", clientErr)
		}
	}()

	// Register commands
	// Use empty string for global commands, or set a specific guild ID for testing
	if err := handler.RegisterCommands(dg, cfg.Discord.GuildID); err != nil {
		log.Printf("Failed to register commands: %v", err)
		return
	}

	if cfg.Discord.GuildID != "" {
		log.Printf("Registered commands for guild: %s", cfg.Discord.GuildID)
	} else {
		log.Println("Registered global commands (may take up to 1 hour to propagate)")
	}

	fmt.Println("Bot is now running. Press CTRL-C to exit.")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	fmt.Println("Shutting down...")

	// Clean up Redis connection if we have one
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		} else {
			log.Println("Closed Redis connection")
		}
	}
}

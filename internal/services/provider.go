package services

import (
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/repositories/characters"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/repositories/timezones"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/repositories/wizardsessions"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/services/commit"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/services/sheetsync"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/services/wizard"
)

// Provider holds all service instances
type Provider struct {
	WizardService wizard.Service
	CommitService commit.Service
	Scheduler     *sheetsync.Scheduler
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	SessionRepository   wizardsessions.Repository
	CharacterRepository characters.Repository
	TimezoneRepository  timezones.Repository
	GuildNames          []string
	Recordkeeper        sheetsync.Recordkeeper
	Sync                *sheetsync.SchedulerConfig // timing overrides; Source and Keeper are wired here
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repositories if none provided
	sessionRepo := cfg.SessionRepository
	if sessionRepo == nil {
		sessionRepo = wizardsessions.NewInMemory(nil)
	}
	charRepo := cfg.CharacterRepository
	if charRepo == nil {
		charRepo = characters.NewInMemoryRepository()
	}
	tzRepo := cfg.TimezoneRepository
	if tzRepo == nil {
		tzRepo = timezones.NewInMemoryRepository()
	}

	keeper := cfg.Recordkeeper
	if keeper == nil {
		keeper = sheetsync.LogKeeper{}
	}

	syncCfg := &sheetsync.SchedulerConfig{
		Source: commit.NewRosterSource(charRepo, tzRepo),
		Keeper: keeper,
	}
	if cfg.Sync != nil {
		syncCfg.MinInterval = cfg.Sync.MinInterval
		syncCfg.MaxInterval = cfg.Sync.MaxInterval
		syncCfg.PushTimeout = cfg.Sync.PushTimeout
	}
	scheduler := sheetsync.NewScheduler(syncCfg)

	commitService := commit.NewService(&commit.ServiceConfig{
		Characters: charRepo,
		Timezones:  tzRepo,
		Sessions:   sessionRepo,
		Notifier:   scheduler,
	})

	wizardService := wizard.NewService(&wizard.ServiceConfig{
		Sessions:   sessionRepo,
		Characters: charRepo,
		Committer:  commitService,
		Guilds:     wizard.NewStaticGuildCatalog(cfg.GuildNames),
	})

	return &Provider{
		WizardService: wizardService,
		CommitService: commitService,
		Scheduler:     scheduler,
	}
}

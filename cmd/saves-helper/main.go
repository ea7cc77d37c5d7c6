package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/saves-helper/internal/chat"
	"github.com/KirkDiggler/saves-helper/internal/clients/dnd5e"
	"github.com/KirkDiggler/saves-helper/internal/config"
	"github.com/KirkDiggler/saves-helper/internal/handlers/discord"
	"github.com/KirkDiggler/saves-helper/internal/helper"
	"github.com/KirkDiggler/saves-helper/internal/logging"
	"github.com/KirkDiggler/saves-helper/internal/relay"
	"github.com/KirkDiggler/saves-helper/internal/relay/wsrelay"
	"github.com/KirkDiggler/saves-helper/internal/render"
	"github.com/KirkDiggler/saves-helper/internal/scene"
	"github.com/KirkDiggler/saves-helper/internal/services/damage"
	"github.com/KirkDiggler/saves-helper/internal/spells"
	"github.com/KirkDiggler/saves-helper/internal/uuid"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("saves helper stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	table := helper.NewWorld()
	if cfg.World.File != "" {
		loaded, err := helper.LoadWorldFile(cfg.World.File)
		if err != nil {
			return err
		}
		table = loaded
		logger.Info("loaded world", zap.String("file", cfg.World.File))
	}
	if _, err := table.Scenes.Scene(cfg.World.SceneID); err != nil {
		table.Scenes.Add(scene.New(&scene.Config{ID: cfg.World.SceneID}))
	}

	dndClient, err := dnd5e.New(&dnd5e.Config{
		HttpClient: &http.Client{Timeout: 30 * time.Second},
	})
	if err != nil {
		return err
	}
	catalog := spells.ChainCatalog{table.Spells, dndClient}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return err
		}
		redisClient = redis.NewClient(opts)
		defer func() { _ = redisClient.Close() }()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return err
		}
		logger.Info("connected to redis")
	}

	var store chat.Store
	if redisClient != nil {
		store = chat.NewRedisStore(&chat.RedisStoreConfig{
			Client:        redisClient,
			UUIDGenerator: uuid.NewGoogleUUIDGenerator(),
		})
	} else {
		logger.Info("no REDIS_URL, chat messages are kept in memory")
		store = chat.NewMemoryStore(&chat.MemoryStoreConfig{
			UUIDGenerator: uuid.NewGoogleUUIDGenerator(),
		})
	}

	newTransport, err := transportFactory(cfg, redisClient, logger)
	if err != nil {
		return err
	}

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return err
	}

	renderer, err := render.New(&render.Config{
		Directory:          table.Directory,
		IgnoreHealingSaves: cfg.Settings.IgnoreHealingSaves,
		Logger:             logger,
	})
	if err != nil {
		return err
	}

	var pool *helper.Pool
	mirror := discord.NewMirror(&discord.MirrorConfig{
		Session:   dg,
		Store:     store,
		ChannelID: cfg.Discord.ChannelID,
		Renderer:  renderer,
		Buttons: func(ctx context.Context, id string) ([]*damage.RollButtons, error) {
			if len(cfg.Discord.GMUserIDs) == 0 {
				return nil, nil
			}
			gm, err := pool.Client(ctx, cfg.Discord.GMUserIDs[0], "Gamemaster")
			if err != nil {
				return nil, err
			}
			return gm.Damage.Buttons(ctx, id)
		},
		Logger: logger.Named("mirror"),
	})

	pool = helper.NewPool(&helper.PoolConfig{
		Base: helper.Config{
			GMUserIDs: cfg.Discord.GMUserIDs,
			Store:     chat.NewObservedStore(store, mirror.Observe),
			Directory: table.Directory,
			Scenes:    table.Scenes,
			Catalog:   catalog,
			Settings:  cfg.Settings,
			Notifier:  discord.NewChannelNotifier(dg, cfg.Discord.ChannelID),
			Logger:    logger,
		},
		NewTransport: newTransport,
	})
	defer pool.Close()

	handler := discord.NewHandler(&discord.HandlerConfig{
		Pool:    pool,
		Session: dg,
		Scenes:  table.Scenes,
		SceneID: cfg.World.SceneID,
		Logger:  logger.Named("discord"),
	})
	dg.AddHandler(discord.RecoverMiddleware("saves", dg, logger, handler.HandleInteraction))

	if err := dg.Open(); err != nil {
		return err
	}
	defer func() {
		if err := dg.Close(); err != nil {
			logger.Warn("failed to close discord connection", zap.Error(err))
		}
	}()

	if err := discord.RegisterCommands(dg, cfg.Discord.AppID, cfg.Discord.GuildID); err != nil {
		return err
	}

	logger.Info("saves helper running",
		zap.String("channel", cfg.Discord.ChannelID),
		zap.String("relay", string(cfg.Relay.Transport)))
	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

func transportFactory(cfg *config.Config, redisClient *redis.Client, logger *zap.Logger) (helper.TransportFactory, error) {
	switch cfg.Relay.Transport {
	case config.RelayTransportRedis:
		return func(_ context.Context, userID string) (relay.Transport, error) {
			return relay.NewRedisTransport(&relay.RedisTransportConfig{
				Client:   redisClient,
				SenderID: userID,
				Logger:   logger.Named("relay"),
			}), nil
		}, nil
	case config.RelayTransportWebsocket:
		return func(ctx context.Context, _ string) (relay.Transport, error) {
			return wsrelay.Dial(ctx, cfg.Relay.HubURL, logger.Named("relay"))
		}, nil
	default:
		bus := relay.NewMemoryBus()
		return func(context.Context, string) (relay.Transport, error) {
			return bus.Transport(), nil
		}, nil
	}
}

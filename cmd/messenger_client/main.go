package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"elevator_pitch_messaging/internal/messaging/app"
	"elevator_pitch_messaging/internal/messaging/repository"
	"elevator_pitch_messaging/pkg/config"
	"elevator_pitch_messaging/pkg/logger"
	"elevator_pitch_messaging/pkg/token"

	"go.uber.org/zap"
)

// Dev harness: loads the session token from the environment, connects the
// live channel and streams room-list updates until interrupted.
func main() {
	logger.Log = logger.Initialize(config.EnvConfig.MessengerClient, config.EnvConfig.MessengerClientLogPath)
	cfg := config.LoadConfig[config.Messenger](config.EnvConfig.MessengerClient, config.EnvConfig.MessengerClientYAMLPath)

	sessionToken := config.EnvConfig.SessionToken
	claims, err := token.ParseSession(sessionToken)
	if err != nil {
		logger.Log.Fatal("invalid session token", zap.Error(err))
	}
	if ok, err := token.CheckNotExpired(sessionToken); err != nil || !ok {
		logger.Log.Fatal("session token expired", zap.Error(err))
	}

	api := repository.NewAPIClient(cfg.API.BaseURL, sessionToken, cfg.API.Timeout)
	store := app.NewRoomStore(api)

	live := repository.NewLiveChannel(cfg.Live, sessionToken)
	live.Subscribe(app.SubscriptionRooms, store.ApplyIncomingMessage)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go live.Run(ctx)

	rooms, err := store.LoadRooms(ctx, claims.MemberID, claims.Role)
	if err != nil {
		logger.Log.Fatal("load rooms failed", zap.Error(err))
	}

	for _, room := range rooms {
		other := room.OtherParticipant(claims.MemberID)
		logger.Log.Info("room",
			zap.String("room_id", room.ID),
			zap.String("with", other.Name),
			zap.String("preview", room.LastMessagePreview),
			zap.Time("last_activity", room.LastActivityAt),
		)
	}

	// open the most recent conversation and stream it live
	if len(rooms) > 0 {
		feed := app.NewMessageFeed(api, rooms[0].ID)
		live.Subscribe(app.SubscriptionOpenFeed, feed.HandleEvent)

		messages, meta, err := feed.LoadPage(ctx, 1, cfg.Feed.PageSize)
		if err != nil {
			logger.Log.Fatal("load page failed", zap.Error(err))
		}
		logger.Log.Info("feed opened",
			zap.String("room_id", rooms[0].ID),
			zap.Int("messages", len(messages)),
			zap.Int("total_pages", meta.TotalPages),
		)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Log.Info("messenger client shutting down")
	logger.Log.Sync()
}

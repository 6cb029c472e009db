package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"juntos_server/internal/config"
	dao "juntos_server/internal/dao/mysql"
	myredis "juntos_server/internal/dao/redis"
	"juntos_server/internal/gateway/ws"
	"juntos_server/internal/handler"
	"juntos_server/internal/https_server"
	"juntos_server/internal/infrastructure/email"
	"juntos_server/internal/infrastructure/logger"
	"juntos_server/internal/service"
	"juntos_server/internal/service/stream"
	"juntos_server/pkg/util/jwt"
	"juntos_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. Configuration.
	conf := config.GetConfig()

	// 2. Logging.
	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("logger initialized")

	// 3. Validation message translation.
	if err := handler.InitTrans("pt_BR"); err != nil {
		zap.L().Fatal("init validator translations", zap.Error(err))
	}

	// 4. Data layer.
	repos := dao.Init()
	zap.L().Info("database initialized")

	cache := myredis.Init()

	// 5. Token signing and message id generation.
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init(conf.SnowflakeConfig.MachineID)

	// 6. Outbound mail.
	mailer := email.NewMailer(conf.SmtpConfig)

	// 7. Realtime fan-out. Channel mode keeps delivery in process;
	// kafka mode routes events through the topic so several instances
	// stay in sync.
	var broker stream.Broker
	if conf.BrokerConfig.MessageMode == "kafka" {
		broker = stream.NewKafkaBroker()
	} else {
		broker = stream.NewChannelBroker()
	}
	go broker.Start()
	zap.L().Info("message broker started", zap.String("mode", conf.BrokerConfig.MessageMode))

	// 8. Business and HTTP layers.
	service.InitServices(repos, cache, mailer, broker)
	gateway := ws.NewGateway(broker, service.Svc.Message)
	handlers := handler.NewHandlers(service.Svc, gateway)
	engine := https_server.Init(handlers, service.Svc.Role, conf.MainConfig.Mode)

	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("http server stopped", zap.Error(err))
		}
	}()
	zap.L().Info("server listening",
		zap.String("host", conf.MainConfig.Host), zap.Int("port", conf.MainConfig.Port))

	// 9. Shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down")
	broker.Close()
	if err := cache.Close(); err != nil {
		zap.L().Error("close cache", zap.Error(err))
	}
	zap.L().Info("server stopped")
}

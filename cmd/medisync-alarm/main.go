package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/arjunishere-e/medisync/common/logger"
	"github.com/arjunishere-e/medisync/common/mqtt"
	"github.com/arjunishere-e/medisync/internal/config"
	"github.com/arjunishere-e/medisync/internal/consumer"
	"github.com/arjunishere-e/medisync/internal/service"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. 初始化日志
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "medisync-alarm")
	if err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer log.Sync()

	// 3. 创建上下文（支持优雅关闭）
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. 创建服务
	app, err := service.NewApp(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to create clinical service",
			zap.Error(err),
		)
	}
	defer app.Close()

	// 5. 连接 MQTT
	mqttClient, err := mqtt.NewClient(&cfg.MQTT, log)
	if err != nil {
		log.Fatal("Failed to connect MQTT broker",
			zap.Error(err),
		)
	}
	defer mqttClient.Disconnect()

	vitalsConsumer := consumer.NewVitalsConsumer(cfg, mqttClient, app.Clinical, log)

	// 6. 启动消费者（在 goroutine 中）
	consumerDone := make(chan error, 1)
	go func() {
		consumerDone <- vitalsConsumer.Start(ctx)
	}()

	// 7. 等待信号（优雅关闭）
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down",
			zap.String("signal", sig.String()),
		)
		cancel()
		<-consumerDone
	case err := <-consumerDone:
		if err != nil {
			log.Error("Consumer error",
				zap.Error(err),
			)
		}
	}

	log.Info("Medisync alarm service stopped")
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sup := NewSupervisor()

	// OTel exporters (optional)
	var metrics *Metrics
	var otelSub *OTelEventSubscriber
	if cfg.OTel.Enabled {
		metricExporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithInsecure())
		if err != nil {
			log.Fatalf("metric exporter: %v", err)
		}
		meterProvider := sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(cfg.OTel.MetricInterval))),
		)
		defer meterProvider.Shutdown(ctx)
		metrics, err = NewMetrics(meterProvider)
		if err != nil {
			log.Fatalf("metrics: %v", err)
		}

		logExporter, err := otlploggrpc.New(ctx, otlploggrpc.WithInsecure())
		if err != nil {
			log.Fatalf("log exporter: %v", err)
		}
		loggerProvider := sdklog.NewLoggerProvider(
			sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		)
		defer loggerProvider.Shutdown(ctx)
		otelSub = &OTelEventSubscriber{logger: loggerProvider.Logger(cfg.OTel.ServiceName)}
	}

	// RCON fallback command path (optional)
	var rconClient *RCONClient
	if cfg.RCON.Enabled {
		rconClient = NewRCONClient(cfg.RCON.Host, cfg.RCON.Port, cfg.RCON.Password)
		defer rconClient.Close()
	}

	// Discord channel (optional)
	var channels []Channel
	if cfg.Discord.Enabled {
		dc, err := NewDiscordChannel(cfg.Discord.BotToken, cfg.Discord.ChannelID, &cfg)
		if err != nil {
			log.Fatalf("discord: %v", err)
		}
		channels = append(channels, dc)
	}

	bridge := NewBridge(sup.Commands(), rconClient, channels)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		sup.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		eventLoop(ctx, cancel, &cfg, sup, bridge, metrics, otelSub)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		bridge.FanOutEvents(ctx)
	}()

	for _, ch := range channels {
		wg.Add(1)
		go func(c Channel) {
			defer wg.Done()
			if err := c.Start(ctx); err != nil {
				log.Printf("channel %s: %v", c.Name(), err)
			}
		}(ch)

		wg.Add(1)
		go func(c Channel) {
			defer wg.Done()
			bridge.HandleInbound(ctx, c)
		}(ch)
	}

	// Terminal front-end. Not joined: a blocked stdin read only ends with
	// the process. Skipped entirely when the child owns our stdin.
	if !cfg.Server.InheritStdin {
		go consoleInput(ctx, sup.Commands())
	}

	log.Printf("mc-server-wrapper started (jar=%s, discord=%v, rcon=%v, otel=%v)",
		cfg.Server.JarPath, cfg.Discord.Enabled, cfg.RCON.Enabled, cfg.OTel.Enabled)

	sup.Commands() <- StartServer{Config: &cfg.Server}

	wg.Wait()
	log.Println("shutting down")
}

// eventLoop is the single consumer of the supervisor's event stream. It
// renders the console, feeds the observability subscribers, forwards
// recognized events to the chat bridge, and drives the EULA recovery flow.
func eventLoop(ctx context.Context, cancel context.CancelFunc, cfg *Config, sup *Supervisor, bridge *Bridge, metrics *Metrics, otelSub *OTelEventSubscriber) {
	eulaRetried := false
	for {
		var ev Event
		select {
		case <-ctx.Done():
			return
		case ev = <-sup.Events():
		}

		if metrics != nil {
			metrics.Observe(ev)
		}
		if otelSub != nil {
			otelSub.OnEvent(ev)
		}

		switch e := ev.(type) {
		case ConsoleEvent:
			fmt.Println(e.Message)
			if e.Specific != nil {
				select {
				case bridge.Events() <- e.Specific:
				case <-ctx.Done():
					return
				}
			}
		case RawStdout:
			fmt.Println(e.Line)
		case RawStderr:
			fmt.Fprintln(os.Stderr, e.Line)
		case StartResult:
			if e.Err != nil {
				log.Printf("start failed: %v", e.Err)
				cancel()
				return
			}
		case EulaAgreementResult:
			if e.Err != nil {
				log.Printf("eula agreement failed: %v", e.Err)
				cancel()
				return
			}
			log.Println("eula accepted, restarting server")
			sup.Commands() <- StartServer{}
		case Stopped:
			log.Printf("server stopped: code %d, reason: %s", e.Exit.Code, e.Reason)
			if e.Exit.Err != nil {
				log.Printf("run ended with error: %v", e.Exit.Err)
			}
			if e.Reason == ReasonEulaNotAccepted && cfg.Eula.AutoAgree && !eulaRetried {
				eulaRetried = true
				sup.Commands() <- AgreeToEula{}
				continue
			}
			cancel()
			return
		}
	}
}

// consoleInput forwards operator-typed lines to the server. "stop" goes
// through the supervisor's stop path so the exit is attributed to the
// operator; everything else is written as a console command.
func consoleInput(ctx context.Context, commands chan<- Command) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var cmd Command
		if line == "stop" {
			cmd = StopServer{}
		} else {
			cmd = WriteCommand{Text: line}
		}
		select {
		case commands <- cmd:
		case <-ctx.Done():
			return
		}
	}
}

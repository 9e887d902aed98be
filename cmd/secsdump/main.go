// Command secsdump is a minimal HSMS listener: for each accepted connection it runs a
// StreamDecoder and logs every decoded message. It does not select, reply, or retry — it only
// demonstrates wiring the decoder, registry, config, and logger together end to end.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/sumika-fab/secscore/gem"
	"github.com/sumika-fab/secscore/hsms"
	"github.com/sumika-fab/secscore/internal/config"
	"github.com/sumika-fab/secscore/internal/registry"
	"github.com/sumika-fab/secscore/logger"
	"github.com/sumika-fab/secscore/secs2"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (optional)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if cfg.LogDevelopment {
		os.Setenv("ENV", "development")
	}
	log := logger.NewSlog(cfg.LogLevel, cfg.LogDevelopment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	peers := registry.New()

	listener, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		log.Error("failed to listen", "address", cfg.ListenAddress, "error", err)
		os.Exit(1)
	}
	log.Info("listening", "address", cfg.ListenAddress)

	go acceptLoop(ctx, listener, peers, cfg, log)

	exitSig := make(chan os.Signal, 1)
	signal.Notify(exitSig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	<-exitSig

	log.Info("exit signal received")
	cancel()
	_ = listener.Close()
	log.Info("shutdown finished")
}

func acceptLoop(ctx context.Context, listener net.Listener, peers *registry.Registry, cfg config.Config, log logger.Logger) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				log.Error("accept failed", "error", err)
				return
			}
		}

		go handleConn(ctx, conn, peers, cfg, log)
	}
}

func handleConn(ctx context.Context, conn net.Conn, peers *registry.Registry, cfg config.Config, log logger.Logger) {
	peerID := conn.RemoteAddr().String()
	connLog := log.With("peer", peerID)
	connLog.Info("peer connected")

	defer func() {
		_ = conn.Close()
		peers.Remove(peerID)
		connLog.Info("peer disconnected")
	}()

	onControl := func(header []byte) {
		msg := hsms.NewControlMessage(header, false)
		connLog.Info("control message", hsms.MsgInfo(msg)...)
	}

	onData := func(msg *hsms.DataMessage) {
		connLog.Info("data message", hsms.MsgInfoSML(msg)...)
	}

	decoder := peers.GetOrCreate(peerID, func() *hsms.StreamDecoder {
		return hsms.NewStreamDecoder(cfg.InitialBufferBytes, onControl, onData)
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := conn.Read(decoder.BufferWriteSlice())
		if err != nil {
			if !errors.Is(err, io.EOF) {
				connLog.Error("read failed", "error", err)
			}
			return
		}

		if _, err := decoder.Decode(n); err != nil {
			reply := protocolErrorReply(err)
			connLog.Error("decode failed, tearing down session",
				"error", err, "replyS", reply.StreamCode(), "replyF", reply.FunctionCode())
			return
		}
	}
}

// protocolErrorReply selects the SEMI E30 S9Fx report matching why the decoder rejected the
// frame: an unrecognized format byte is illegal data, anything else is too long or malformed
// to parse at all.
func protocolErrorReply(err error) secs2.SECS2Message {
	if errors.Is(err, hsms.ErrBadFormatCode) {
		return gem.S9F7()
	}

	return gem.S9F11()
}

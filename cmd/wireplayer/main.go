// Command wireplayer is the composition root: it loads configuration,
// brings up logging and metrics, owns a UDP socket driving the network
// serializer, serves the admin line protocol, and supervises an
// optional companion process. The wire protocol itself lives entirely
// in internal/wire; this binary only wires it to the outside world.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/rtspwire/wireclient/internal/config"
	"github.com/rtspwire/wireclient/internal/control"
	"github.com/rtspwire/wireclient/internal/logging"
	"github.com/rtspwire/wireclient/internal/observability"
	"github.com/rtspwire/wireclient/internal/supervisor"
	"github.com/rtspwire/wireclient/internal/wire/netframe"
	"github.com/rtspwire/wireclient/internal/wire/netstream"
)

func main() {
	configPath := flag.String("config", "cmd/wireplayer/config.toml", "path to the wireplayer config file")
	flag.Parse()

	logging.ConfigureRuntime()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("wireplayer: failed to load config")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "wireplayer: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	addr, err := net.ResolveUDPAddr("udp", cfg.Wire.ListenAddr)
	if err != nil {
		return fmt.Errorf("resolve listen addr: %w", err)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("listen udp: %w", err)
	}
	defer conn.Close()

	serializer := netstream.NewSerializer(cfg.Endianness())
	serializer.SetRecorder(observability.NewRecorder())

	companion := supervisor.New(cfg.Wire.CompanionServerPath)
	if err := companion.Start(ctx); err != nil {
		log.Error().Err(err).Msg("wireplayer: companion server failed to start")
	}
	defer companion.Stop()

	state := newWireState()

	var adminServer *control.Server
	if cfg.Wire.AdminListenAddr != "" {
		adminServer, err = control.NewServer(cfg.Wire.AdminListenAddr, state)
		if err != nil {
			return fmt.Errorf("start admin server: %w", err)
		}
		go func() {
			if err := adminServer.Serve(ctx); err != nil {
				log.Error().Err(err).Msg("wireplayer: admin server stopped")
			}
		}()
	}

	log.Info().
		Str("listen_addr", conn.LocalAddr().String()).
		Str("admin_listen_addr", cfg.Wire.AdminListenAddr).
		Str("endianness", cfg.Wire.Endianness).
		Msg("wireplayer: ready")

	runWireLoop(ctx, conn, serializer, state)
	return nil
}

// wireState publishes a snapshot of serializer bookkeeping for the
// admin channel to read, and funnels clear requests back to the
// goroutine that owns the serializer instead of letting a second
// goroutine touch it directly.
type wireState struct {
	snapshot atomic.Pointer[map[string]string]
	clearCh  chan struct{}
}

func newWireState() *wireState {
	w := &wireState{clearCh: make(chan struct{}, 1)}
	empty := map[string]string{}
	w.snapshot.Store(&empty)
	return w
}

func (w *wireState) Stats() map[string]string {
	return *w.snapshot.Load()
}

func (w *wireState) Clear() {
	select {
	case w.clearCh <- struct{}{}:
	default:
	}
}

func (w *wireState) publish(builders, completed int) {
	snap := map[string]string{
		"builders_in_progress":   strconv.Itoa(builders),
		"frames_completed_total": strconv.Itoa(completed),
	}
	w.snapshot.Store(&snap)
}

func runWireLoop(ctx context.Context, conn *net.UDPConn, serializer *netstream.Serializer, state *wireState) {
	datagrams := make(chan []byte, 64)
	go func() {
		defer close(datagrams)
		buf := make([]byte, netframe.DatagramMaxSize)
		for {
			n, _, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			cp := make([]byte, n)
			copy(cp, buf[:n])
			select {
			case datagrams <- cp:
			case <-ctx.Done():
				return
			}
		}
	}()

	var completedTotal int

	for {
		select {
		case <-ctx.Done():
			return
		case <-state.clearCh:
			serializer.Clear()
			state.publish(0, completedTotal)
		case datagram, ok := <-datagrams:
			if !ok {
				return
			}
			serializer.Feed(datagram)
			completed := serializer.TakeCompleted()
			completedTotal += len(completed)
			for _, frame := range completed {
				log.Info().
					Uint32("frame_id", frame.ID).
					Int("bytes", len(frame.Data)).
					Str("task", frame.Task).
					Str("flow", frame.Flow).
					Msg("wireplayer: frame completed")
			}
			state.publish(serializer.InProgress(), completedTotal)
		}
	}
}

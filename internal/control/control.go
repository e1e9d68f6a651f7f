// Package control implements the admin line protocol: a small
// newline-delimited request/response channel, distinct from the wire
// datagram protocol, that lets an operator inspect and reset a running
// serializer from another process.
package control

import (
	"bufio"
	"context"
	"errors"
	"net"

	"github.com/rs/zerolog/log"

	"github.com/rtspwire/wireclient/internal/wire/ipcline"
)

const maxLineLength = 4096

var ErrLineTooLong = errors.New("control: line too long")

// Source is what the admin channel reports on and resets. A
// netstream.Serializer satisfies this once wrapped with a small
// adapter at the call site, same as Recorder keeps netstream free of
// an import on this package.
type Source interface {
	Stats() map[string]string
	Clear()
}

// Server accepts admin connections on a single listener and serves
// each on its own goroutine until its context is cancelled.
type Server struct {
	ln     net.Listener
	source Source
}

// NewServer binds addr and returns a Server ready to Serve.
func NewServer(addr string, source Source) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{ln: ln, source: source}, nil
}

// Addr returns the server's bound address, useful when addr was ":0".
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Serve accepts connections until ctx is cancelled, at which point the
// listener is closed and Serve returns.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.ln.Close()
	}()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	for {
		line, err := readLine(reader)
		if err != nil {
			return
		}

		request := ipcline.Decode(line)
		response := s.dispatch(request)

		if _, err := conn.Write(ipcline.Encode(response)); err != nil {
			return
		}
	}
}

func (s *Server) dispatch(request ipcline.Frame) ipcline.Frame {
	response := ipcline.NewFrame()

	cmd, _ := request.Get("cmd")
	switch cmd {
	case "stats":
		response.Set("status", "ok")
		for k, v := range s.source.Stats() {
			response.Set(k, v)
		}
	case "clear":
		s.source.Clear()
		response.Set("status", "ok")
	default:
		response.Set("status", "error")
		response.Set("reason", "unknown_command")
	}

	return response
}

func readLine(r *bufio.Reader) ([]byte, error) {
	line, err := r.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	if len(line) > maxLineLength {
		log.Warn().Int("length", len(line)).Msg("control: rejected oversized line")
		return nil, ErrLineTooLong
	}
	return line, nil
}

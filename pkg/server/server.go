package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/bastiangx/menuclean/internal/logger"
	"github.com/bastiangx/menuclean/pkg/clean"
	"github.com/bastiangx/menuclean/pkg/config"
	"github.com/bastiangx/menuclean/pkg/rules"
	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles msgpack IPC for ingredient cleaning
type Server struct {
	mu        sync.RWMutex
	cleaner   *clean.Cleaner
	opts      clean.Options
	rulesPath string
	maxBatch  int

	dec    *msgpack.Decoder
	out    *bufio.Writer
	enc    *msgpack.Encoder
	logger *log.Logger
}

// NewServer creates a server on stdin/stdout. rulesPath is the extension
// file re-read on reload; empty means builtin rules only.
func NewServer(cleaner *clean.Cleaner, cfg *config.Config, rulesPath string) *Server {
	return NewServerWithIO(cleaner, cfg, rulesPath, os.Stdin, os.Stdout)
}

// NewServerWithIO is NewServer with explicit streams.
func NewServerWithIO(cleaner *clean.Cleaner, cfg *config.Config, rulesPath string, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	out := bufio.NewWriter(w)
	return &Server{
		cleaner:   cleaner,
		opts:      cfg.Clean.Options(),
		rulesPath: rulesPath,
		maxBatch:  cfg.Server.MaxBatch,
		dec:       msgpack.NewDecoder(bufio.NewReader(r)),
		out:       out,
		enc:       msgpack.NewEncoder(out),
		logger:    logger.New("server"),
	}
}

// Start serves requests until the input stream ends.
func (s *Server) Start() error {
	s.logger.Debug("Starting server")
	for {
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed, stopping server")
				return nil
			}
			s.logger.Errorf("Reading request: %v", err)
			return err
		}
		if err := s.handleRequest(raw); err != nil {
			return err
		}
	}
}

// Cleaner returns the cleaner currently serving requests.
func (s *Server) Cleaner() *clean.Cleaner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cleaner
}

// Reload rebuilds the cleaner from the builtin rules and the rules file.
func (s *Server) Reload() error {
	r, err := rules.Load(s.rulesPath)
	if err != nil {
		return err
	}
	c, err := clean.New(r, s.opts)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cleaner = c
	s.mu.Unlock()
	s.logger.Info("Rules reloaded", "path", s.rulesPath)
	return nil
}

// handleRequest answers one raw message; only write failures are returned.
func (s *Server) handleRequest(raw msgpack.RawMessage) error {
	var req CleanRequest
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.logger.Debugf("Malformed request: %v", err)
		return s.sendError("", "malformed request", 400)
	}
	if req.ID == "" {
		req.ID = ulid.Make().String()
	}

	switch req.Action {
	case "", ActionClean:
		return s.handleClean(req)
	case ActionHealth:
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	case ActionReload:
		if err := s.Reload(); err != nil {
			s.logger.Errorf("Reload failed: %v", err)
			return s.sendError(req.ID, fmt.Sprintf("reload failed: %v", err), 500)
		}
		return s.send(StatusResponse{ID: req.ID, Status: "reloaded"})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleClean(req CleanRequest) error {
	if s.maxBatch > 0 && len(req.Ingredients) > s.maxBatch {
		return s.sendError(req.ID,
			fmt.Sprintf("batch of %d ingredients exceeds max of %d", len(req.Ingredients), s.maxBatch), 413)
	}

	start := time.Now()
	cleaned := s.Cleaner().Clean(req.Ingredients)
	elapsed := time.Since(start)

	s.logger.Debug("Cleaned batch", "id", req.ID, "in", len(req.Ingredients), "out", len(cleaned))
	return s.send(CleanResponse{
		ID:          req.ID,
		Ingredients: cleaned,
		Count:       len(cleaned),
		Removed:     len(req.Ingredients) - len(cleaned),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) send(response any) error {
	if err := s.enc.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return err
	}
	return s.out.Flush()
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-blokus/internal/config"
	"github.com/vovakirdan/tui-blokus/internal/games/blokus"
	"github.com/vovakirdan/tui-blokus/internal/multiplayer"
	"github.com/vovakirdan/tui-blokus/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.blokus/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Blokus configures the served matches; its storage section names the
	// results database.
	Blokus config.BlokusConfig

	// Logger receives server and match logs. Defaults to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Blokus:      config.DefaultBlokusConfig(),
	}
}

// SSHServer wraps a Wish SSH server that lets every session watch its own
// matches.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "blokus-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.Blokus.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		store = nil // Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".blokus", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := NewSessionModel(s.store, s.config.Blokus, s.logger.With("user", sshSession.User()),
		pty.Window.Width, pty.Window.Height)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionMode int

const (
	modeMenu sessionMode = iota
	modeViewer
	modeScoreboard
)

// SessionModel manages the full session flow: menu -> viewer or
// scoreboard -> menu. This is the top-level model used for SSH sessions.
type SessionModel struct {
	store      *storage.Store // Optional, can be nil
	cfg        config.BlokusConfig
	logger     *log.Logger
	width      int
	height     int
	mode       sessionMode
	menu       MenuModel
	viewer     ViewerModel
	scoreboard ScoreboardModel
	status     string
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg config.BlokusConfig, logger *log.Logger, width, height int) SessionModel {
	return SessionModel{
		store:  store,
		cfg:    cfg,
		logger: logger,
		width:  width,
		height: height,
		menu:   NewMenuModel(width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.mode {
	case modeViewer:
		return m.updateViewer(msg)
	case modeScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.menu = NewMenuModel(m.width, m.height)
		m.scoreboard = NewScoreboardModel(m.store, m.width, m.height)
		m.mode = modeScoreboard
		return m, m.scoreboard.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		m.menu = NewMenuModel(m.width, m.height)
		viewer, err := NewViewerModel(m.matchFactory(selected.Preset), uint64(time.Now().UnixNano()),
			m.cfg.Viewer.Tick, true)
		if err != nil {
			m.logger.Error("cannot start match", "variant", selected.Preset, "error", err)
			m.status = "cannot start match: " + err.Error()
			return m, nil
		}
		m.status = ""
		updated, _ := viewer.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.viewer = updated.(ViewerModel)
		m.mode = modeViewer
		return m, m.viewer.Init()
	}

	return m, cmd
}

// matchFactory builds matches of the given variant that log through the
// session logger and store their results.
func (m SessionModel) matchFactory(preset config.Preset) MatchFactory {
	cfg := m.cfg
	config.ApplyPreset(&cfg, preset)
	opts := []multiplayer.Option{multiplayer.WithLogger(m.logger)}
	if m.store != nil {
		opts = append(opts, multiplayer.WithResultSaver(m.store))
	}
	return func(seed uint64) (*multiplayer.Match, error) {
		return blokus.NewMatch(cfg, string(preset), seed, opts...)
	}
}

// updateViewer handles updates when watching a match.
func (m SessionModel) updateViewer(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.viewer.Update(msg)
	if viewer, ok := newModel.(ViewerModel); ok {
		m.viewer = viewer
	}

	if m.viewer.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.viewer.BackToMenu() {
		m.mode = modeMenu
		return m, nil
	}
	return m, cmd
}

// updateScoreboard handles updates when browsing results.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	// The scoreboard quits its own program on back; here it returns to the menu.
	if m.scoreboard.IsGoingBack() {
		m.mode = modeMenu
		return m, nil
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeViewer:
		return m.viewer.View()
	case modeScoreboard:
		return m.scoreboard.View()
	}
	if m.status != "" {
		return m.menu.View() + "\n" + centerText(m.status, m.width)
	}
	return m.menu.View()
}

// RunSession runs the session flow in the local terminal.
func RunSession(store *storage.Store, cfg config.BlokusConfig, logger *log.Logger, width, height int) error {
	p := tea.NewProgram(
		NewSessionModel(store, cfg, logger, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

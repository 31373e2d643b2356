package cli

import (
	"context"
	"io"

	"todos-cli/internal/bus"
	"todos-cli/internal/config"
	"todos-cli/internal/logging"
	"todos-cli/internal/organizer"
	"todos-cli/internal/store"

	"github.com/charmbracelet/log"
)

// session is one loaded workspace: config, logger, organizer and the store
// it was read from. Commands mutate through bus requests, like the TUI does.
type session struct {
	store  store.Store
	cfg    *config.Config
	logger *log.Logger
	org    *organizer.Organizer

	logCloser io.Closer
}

func openSession(ctx context.Context, app *App) (*session, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	s := &session{store: store.Store{Dir: dir}, cfg: cfg}
	logger, closer, err := logging.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		// Logging is best effort; a read-only config dir must not block commands.
		logger, closer = logging.Discard(), nil
	}
	s.logger, s.logCloser = logger, closer

	st, err := s.store.Load(ctx)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.org = organizer.New(bus.New(logger), organizer.Options{
		DefaultSort:   cfg.Defaults.Sort,
		DefaultFilter: cfg.Defaults.Filter,
		Logger:        logger,
	})
	s.org.Import(st)
	s.org.Attach()
	logger.Debug("workspace loaded", "dir", dir, "categories", len(st.Categories), "todos", len(st.Todos))
	return s, nil
}

// request publishes a request and returns the change the organizer announced for it.
func (s *session) request(topic bus.Topic, payload any) (bus.Change, error) {
	var last bus.Change
	sub := s.org.Bus().Subscribe(bus.StateChanged, func(_ bus.Topic, p any) error {
		if c, ok := p.(bus.Change); ok {
			last = c
		}
		return nil
	})
	defer sub.Unsubscribe()
	err := s.org.Bus().Publish(topic, payload)
	return last, err
}

func (s *session) save(ctx context.Context) error {
	return s.store.Save(ctx, s.org.Export())
}

func (s *session) Close() {
	if s.org != nil {
		s.org.Detach()
	}
	if s.logCloser != nil {
		_ = s.logCloser.Close()
	}
}

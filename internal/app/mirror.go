package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/todo-client/internal/config"
	"github.com/samvad-hq/todo-client/internal/logger"
	"github.com/samvad-hq/todo-client/internal/mirror"
	"github.com/samvad-hq/todo-client/internal/storage"
	"github.com/samvad-hq/todo-client/pkg/httpclient"
	"github.com/samvad-hq/todo-client/pkg/publishers"
	"github.com/samvad-hq/todo-client/pkg/todo"
)

// Mirror is the todo mirror runtime. It owns the todo client, the publisher
// fanout and the dedupe store, and drives mirror passes on an interval.
type Mirror struct {
	cfg      *config.Config
	fanout   *publishers.Fanout
	service  *mirror.Service
	interval time.Duration
	log      logger.Logger
	store    storage.Store
}

// NewMirror builds a mirror runtime from config files.
func NewMirror(ctx context.Context, cfg *config.Config, log logger.Logger) (*Mirror, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	storeOpts := storage.Options{
		TodoTTL:         cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"todo_ttl_seconds":         int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	client := todo.NewClient(cfg.BaseURL, httpclient.NewRestyClient(cfg.HTTPTimeout),
		todo.WithHeaders(map[string]string{"User-Agent": cfg.UserAgent}))

	return &Mirror{
		cfg:      cfg,
		fanout:   fanout,
		service:  mirror.NewService(client.BaseURL(), client, fanout, log, store),
		interval: cfg.MirrorInterval,
		log:      log,
		store:    store,
	}, nil
}

// Run mirrors immediately and then on every interval tick until the context is cancelled.
func (m *Mirror) Run(ctx context.Context) error {
	if m == nil || m.service == nil {
		return fmt.Errorf("mirror is not initialized")
	}
	defer m.Close()
	if m.interval <= 0 {
		return fmt.Errorf("invalid mirror interval %s", m.interval)
	}

	m.log.InfoObj("mirror loop starting", "mirror_state", map[string]any{
		"base_url":         m.cfg.BaseURL,
		"publishers_count": m.fanout.Size(),
		"mirror_interval":  m.interval.String(),
	})

	if _, err := m.RunOnce(ctx); err != nil {
		m.log.ErrorObj("initial mirror pass failed", "error", err)
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.InfoObj("mirror loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if _, err := m.RunOnce(ctx); err != nil {
				m.log.ErrorObj("scheduled mirror pass failed", "error", err)
			}
		}
	}
}

// RunOnce performs a single mirror pass.
func (m *Mirror) RunOnce(ctx context.Context) (mirror.Result, error) {
	if m == nil || m.service == nil {
		return mirror.Result{}, fmt.Errorf("mirror is not initialized")
	}
	m.log.DebugObj("mirror pass started", "mirror_meta", map[string]any{
		"started_at": time.Now().UTC(),
	})
	return m.service.Run(ctx)
}

// Close releases publishers and the storage backend, logging any errors encountered.
// It is safe to call more than once.
func (m *Mirror) Close() {
	if m == nil {
		return
	}
	if m.fanout != nil {
		if err := m.fanout.Close(); err != nil {
			m.log.ErrorObj("publishers close failed", "error", err)
		}
		m.fanout = nil
	}
	if m.store != nil {
		if err := m.store.Close(); err != nil {
			m.log.ErrorObj("storage close failed", "error", err)
		}
		m.store = nil
	}
}

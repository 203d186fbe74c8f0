package common

import (
	"context"
	"errors"
	"fmt"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/fightcrawl/internal/config"
	"github.com/jonesrussell/fightcrawl/internal/config/output"
	"github.com/jonesrussell/fightcrawl/internal/database"
	"github.com/jonesrussell/fightcrawl/internal/logger"
	"github.com/jonesrussell/fightcrawl/internal/sink"
)

// CreateSink opens every sink selected in cfg.Output and returns them as one.
// Postgres tables and Elasticsearch indices are created when missing.
func CreateSink(ctx context.Context, cfg *config.Config, log logger.Interface) (sink.Sink, error) {
	var sinks []sink.Sink
	closeAll := func() {
		for _, s := range sinks {
			_ = s.Close()
		}
	}

	for _, name := range cfg.Output.Sinks {
		s, err := createSink(ctx, name, cfg)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("create %s sink: %w", name, err)
		}
		log.Info("Sink ready", "sink", name)
		sinks = append(sinks, s)
	}
	if len(sinks) == 0 {
		return nil, errors.New("no sinks configured")
	}
	return sink.NewMulti(sinks...), nil
}

func createSink(ctx context.Context, name string, cfg *config.Config) (sink.Sink, error) {
	switch name {
	case output.SinkJSONL:
		s, err := sink.NewJSONLines(cfg.Output.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil

	case output.SinkMemory:
		return sink.NewMemory(), nil

	case output.SinkPostgres:
		db, err := database.NewPostgresConnection(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		pg := sink.NewPostgres(db)
		if schemaErr := pg.EnsureSchema(ctx); schemaErr != nil {
			_ = pg.Close()
			return nil, schemaErr
		}
		return pg, nil

	case output.SinkElasticsearch:
		client, err := es.NewClient(es.Config{
			Addresses: cfg.Elasticsearch.Addresses,
			APIKey:    cfg.Elasticsearch.APIKey,
			Username:  cfg.Elasticsearch.Username,
			Password:  cfg.Elasticsearch.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("create elasticsearch client: %w", err)
		}
		s := sink.NewElasticsearch(client, cfg.Elasticsearch.RankingsIndex, cfg.Elasticsearch.FightersIndex)
		if indexErr := s.EnsureIndices(ctx); indexErr != nil {
			return nil, indexErr
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown sink %q", name)
	}
}

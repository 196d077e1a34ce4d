package session

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Pruner periodically drops abandoned session records on a cron schedule.
type Pruner struct {
	store *Store
	cron  *cron.Cron
}

// NewPruner creates a pruner for the store. spec is a cron expression or
// an @every interval.
func NewPruner(store *Store, spec string) (*Pruner, error) {
	p := &Pruner{store: store, cron: cron.New()}
	if _, err := p.cron.AddFunc(spec, p.prune); err != nil {
		return nil, err
	}
	return p, nil
}

// Run starts the schedule.
func (p *Pruner) Run() {
	log.Info().Msg("Starting session pruner...")
	p.cron.Start()
}

// Stop halts the schedule, waiting for a running prune to finish.
func (p *Pruner) Stop() {
	log.Info().Msg("Stopping session pruner.")
	<-p.cron.Stop().Done()
}

func (p *Pruner) prune() {
	if dropped := p.store.Prune(); dropped > 0 {
		log.Debug().Int("dropped", dropped).Msg("Pruned idle session records")
	}
}

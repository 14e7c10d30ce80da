package stats

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sink receives each freshly collected snapshot
type Sink interface {
	Broadcast(snap Snapshot)
}

// Poller collects a snapshot on a cron schedule and pushes it to the sink.
// The latest good snapshot is retained so reads never wait for a poll.
type Poller struct {
	collector Collector
	sink      Sink
	log       *zap.Logger
	spec      string

	scheduler *cron.Cron

	mu     sync.Mutex
	latest Snapshot
	ready  bool
}

func NewPoller(collector Collector, sink Sink, spec string, log *zap.Logger) *Poller {
	return &Poller{
		collector: collector,
		sink:      sink,
		log:       log,
		spec:      spec,
	}
}

// Start validates the schedule, takes one immediate snapshot, and begins
// polling
func (p *Poller) Start(ctx context.Context) error {
	if _, err := cron.ParseStandard(p.spec); err != nil {
		return err
	}

	p.poll(ctx)

	p.scheduler = cron.New()
	_, err := p.scheduler.AddFunc(p.spec, func() {
		pollCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		p.poll(pollCtx)
	})
	if err != nil {
		return err
	}
	p.scheduler.Start()
	p.log.Info("stats poller started", zap.String("schedule", p.spec))
	return nil
}

// Stop halts the schedule and waits for a running poll to finish
func (p *Poller) Stop() {
	if p.scheduler != nil {
		<-p.scheduler.Stop().Done()
	}
}

// poll collects once and broadcasts. A collection failure keeps the
// previous snapshot and broadcasts nothing.
func (p *Poller) poll(ctx context.Context) {
	snap, err := p.collector.Collect(ctx)
	if err != nil {
		p.log.Error("stats collection failed", zap.Error(err))
		return
	}

	p.mu.Lock()
	p.latest = snap
	p.ready = true
	p.mu.Unlock()

	p.sink.Broadcast(snap)
}

// Latest returns the most recent snapshot; ok is false before the first
// successful poll
func (p *Poller) Latest() (Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest, p.ready
}

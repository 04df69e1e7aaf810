package queue

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/renova/storefront/internal/core/domain"
	"github.com/renova/storefront/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher runs cart sync commands on a fixed set of workers using
// consistent hashing on the product id, so commands for one product reach the
// backend in the order they were issued.
type Dispatcher struct {
	workers []chan domain.SyncCommand
	api     ports.CartAPI
	sink    ports.OutcomeSink
	log     zerolog.Logger

	mu     sync.RWMutex
	done   <-chan struct{}
	closed bool
	wg     sync.WaitGroup
}

var _ ports.SyncDispatcher = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, api ports.CartAPI, sink ports.OutcomeSink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.SyncCommand, numWorkers),
		api:     api,
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.SyncCommand, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled or
// after Shutdown has drained their channel.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	d.done = ctx.Done()
	d.mu.Unlock()

	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// ErrQueueFull is recorded for commands dropped because their worker's buffer
// was full.
var ErrQueueFull = errors.New("sync queue full")

// Enqueue hands cmd to the worker responsible for its product and never
// blocks. When that worker's buffer is full the command is dropped and a
// failed outcome is recorded; the next cart refresh reconciles. Commands
// issued after Shutdown or cancellation are dropped.
func (d *Dispatcher) Enqueue(cmd domain.SyncCommand) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn().Str("command_id", cmd.ID).Str("product_id", cmd.ProductID).Msg("dispatcher closed, sync command dropped")
		return
	}

	select {
	case d.workers[d.shardIndex(cmd.ProductID)] <- cmd:
	case <-d.done:
		d.log.Warn().Str("command_id", cmd.ID).Str("product_id", cmd.ProductID).Msg("dispatcher stopped, sync command dropped")
	default:
		d.sink.Record(domain.SyncOutcome{Command: cmd, Err: ErrQueueFull, WorkerID: -1})
	}
}

// Shutdown stops accepting commands and waits for queued ones to finish or for
// ctx to expire.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("dispatcher shutdown: %w", ctx.Err())
	}
}

// Depth is the number of commands waiting across all workers.
func (d *Dispatcher) Depth() int {
	n := 0
	for _, ch := range d.workers {
		n += len(ch)
	}
	return n
}

// shardIndex maps a product id deterministically to a worker index.
func (d *Dispatcher) shardIndex(productID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(productID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.SyncCommand) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-ch:
			if !ok {
				return
			}
			start := time.Now()
			err := d.execute(ctx, cmd)
			d.sink.Record(domain.SyncOutcome{
				Command:  cmd,
				Err:      err,
				Duration: time.Since(start),
				WorkerID: id,
			})
		}
	}
}

func (d *Dispatcher) execute(ctx context.Context, cmd domain.SyncCommand) error {
	switch cmd.Kind {
	case domain.SyncAdd:
		return d.api.AddCartItem(ctx, cmd.Credential, cmd.ProductID, cmd.Quantity)
	case domain.SyncDelete:
		return d.api.DeleteCartItem(ctx, cmd.Credential, cmd.ProductID)
	case domain.SyncReplace:
		if err := d.api.DeleteCartItem(ctx, cmd.Credential, cmd.ProductID); err != nil {
			return fmt.Errorf("replace: delete: %w", err)
		}
		if err := d.api.AddCartItem(ctx, cmd.Credential, cmd.ProductID, cmd.Quantity); err != nil {
			return fmt.Errorf("replace: add: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown sync kind %q", cmd.Kind)
	}
}

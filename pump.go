package cantx

import (
	"context"
	"sync"

	"github.com/joeycumines/logiface"
)

type (
	// Bus physically transmits frames, e.g. a SocketCAN or device driver
	// binding. Implementations are provided by the caller, and should
	// honor ctx cancellation.
	Bus interface {
		Transmit(ctx context.Context, frame Frame) error
	}

	// TxQueue is the scheduler surface drained by [Pump]. Both [Queue] and
	// [GroupQueue] implement it.
	TxQueue[M any] interface {
		Insert(frame Frame, marker M) (int, error)
		Remove() (Frame, M, bool)
		Len() int
	}

	// PumpConfig models optional configuration, for NewPump. All fields
	// may be zero.
	PumpConfig[M any] struct {
		// Logger optionally receives structured diagnostics (evictions,
		// transmit failures). May be nil.
		Logger *logiface.Logger[logiface.Event]

		// OnTransmit, if non-nil, receives the marker of every frame
		// handed to the bus, verbatim, with the transmit result. It is
		// called from the pump's goroutine.
		OnTransmit func(marker M, err error)
	}

	// Pump drains a transmit queue onto a [Bus], in priority order. It
	// owns the mutual exclusion the queue itself deliberately omits: all
	// queue access, including [Pump.Insert], is serialized on an internal
	// mutex. Instances must be initialized using the NewPump factory.
	//
	// The Pump.Close method and/or Pump.Shutdown method should be called
	// when the Pump is no longer needed.
	Pump[M any] struct {
		bus        Bus
		queue      TxQueue[M]
		logger     *logiface.Logger[logiface.Event]
		onTransmit func(marker M, err error)
		ctx        context.Context
		cancel     context.CancelFunc
		done       chan struct{}
		stopped    chan struct{}
		stopOnce   sync.Once
		wake       chan struct{}
		mu         sync.Mutex
	}
)

// NewPump initializes a new Pump draining queue onto bus. The provided
// config may be nil. A panic will occur if bus or queue is nil.
func NewPump[M any](config *PumpConfig[M], bus Bus, queue TxQueue[M]) *Pump[M] {
	if bus == nil {
		panic(`cantx: nil bus`)
	}
	if queue == nil {
		panic(`cantx: nil queue`)
	}

	pump := Pump[M]{
		bus:     bus,
		queue:   queue,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		wake:    make(chan struct{}, 1),
	}

	if config != nil {
		pump.logger = config.Logger
		pump.onTransmit = config.OnTransmit
	}

	pump.ctx, pump.cancel = context.WithCancel(context.Background())

	go pump.run()

	return &pump
}

// Insert schedules a frame via the pump's queue, waking the transmit loop.
// The rejection semantics are the queue's, see [Queue.Insert]: on
// [ErrRejected] the caller retains the frame, and may retry after the next
// successful transmit. An error is returned if the pump is stopped.
func (x *Pump[M]) Insert(frame Frame, marker M) (int, error) {
	if err := x.ctx.Err(); err != nil {
		return 0, err
	}
	select {
	case <-x.stopped:
		return 0, context.Canceled
	default:
	}

	x.mu.Lock()
	evicted, err := x.queue.Insert(frame, marker)
	x.mu.Unlock()
	if err != nil {
		return 0, err
	}

	if evicted != 0 {
		x.logger.Info().
			Stringer(`frame`, &frame).
			Int(`evicted`, evicted).
			Log(`admitted frame by evicting lower priority frames`)
	}

	x.wakeup()
	return evicted, nil
}

// Shutdown will immediately prevent further frames via Insert, then drain
// the queue and wait for in-flight transmission to complete. An error will
// be returned if ctx is canceled prior to this, causing a forced Close.
func (x *Pump[M]) Shutdown(ctx context.Context) (err error) {
	x.stop()

	select {
	case <-ctx.Done():
		if x.ctx.Err() == nil {
			err = ctx.Err() // indicating we forcibly closed
		}
		x.cancel()
		<-x.done
	case <-x.done:
	}

	return err
}

// Close immediately stops transmission, discarding pending frames, and
// prevents further frames via Insert, blocking until the Pump has finished
// closing.
func (x *Pump[M]) Close() error {
	x.cancel()
	<-x.done
	return nil
}

func (x *Pump[M]) stop() {
	x.stopOnce.Do(func() {
		close(x.stopped)
	})
}

// wakeup nudges the transmit loop, coalescing with any pending nudge.
func (x *Pump[M]) wakeup() {
	select {
	case x.wake <- struct{}{}:
	default:
	}
}

func (x *Pump[M]) run() {
	defer close(x.done)
	defer x.cancel()

	for {
		select {
		case <-x.ctx.Done():
			return

		case <-x.stopped:
			// note: there won't be any more frames coming
			x.drain()
			return

		case <-x.wake:
			x.drain()
		}
	}
}

// drain transmits until the queue is empty or the pump is closed.
func (x *Pump[M]) drain() {
	for x.ctx.Err() == nil {
		x.mu.Lock()
		frame, marker, ok := x.queue.Remove()
		x.mu.Unlock()
		if !ok {
			return
		}

		err := x.bus.Transmit(x.ctx, frame)
		if err != nil {
			x.logger.Err().
				Err(err).
				Stringer(`frame`, &frame).
				Log(`transmit failed`)
		}
		if x.onTransmit != nil {
			x.onTransmit(marker, err)
		}
	}
}
